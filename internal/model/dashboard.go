package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a single budget allocation shown on the dashboard.
type Budget struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}

// Customer is a bank customer counted by the dashboard metrics.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Task tracks work items feeding the task-progress metric.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Status    string    `json:"status" gorm:"size:50;not null;index"` // pending | completed
	CreatedAt time.Time `json:"created_at"`
}

// Sale is a completed or pending sale aggregated into the sales chart.
type Sale struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status   string          `json:"status" gorm:"size:50;not null;index"` // pending | completed
	SaleDate time.Time       `json:"sale_date" gorm:"not null;index"`
}

// TrafficEntry records site visits per source for the traffic chart.
type TrafficEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Source     string    `json:"source" gorm:"size:100;not null;index"` // desktop | tablet | phone
	Visits     int64     `json:"visits" gorm:"not null"`
	RecordedAt time.Time `json:"recorded_at" gorm:"not null;index"`
}

func (Budget) TableName() string       { return "budgets" }
func (Customer) TableName() string     { return "customers" }
func (Task) TableName() string         { return "tasks" }
func (Sale) TableName() string         { return "sales" }
func (TrafficEntry) TableName() string { return "traffic" }
