package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nicbank/internal/model"
)

// MonthlySales is one point on the sales chart.
type MonthlySales struct {
	Month string          `json:"month"`
	Sales decimal.Decimal `json:"sales"`
}

// TrafficBySource is one slice of the traffic chart.
type TrafficBySource struct {
	Source string `json:"source"`
	Visits int64  `json:"visits"`
}

// DashboardRepository runs the aggregate queries behind the dashboard API.
type DashboardRepository interface {
	BudgetTotal(ctx context.Context) (decimal.Decimal, error)
	CustomerCount(ctx context.Context) (int64, error)
	TaskCounts(ctx context.Context) (total, completed int64, err error)
	CompletedSalesTotal(ctx context.Context) (decimal.Decimal, error)
	SalesByMonth(ctx context.Context) ([]MonthlySales, error)
	VisitsBySource(ctx context.Context) ([]TrafficBySource, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository builds a GORM-backed dashboard repository.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) BudgetTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Budget{}).
		Select("SUM(amount)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *dashboardRepository) CustomerCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) TaskCounts(ctx context.Context) (int64, int64, error) {
	var total, completed int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status = ?", "completed").Count(&completed).Error
	return total, completed, err
}

func (r *dashboardRepository) CompletedSalesTotal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("status = ?", "completed").
		Select("SUM(amount)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *dashboardRepository) SalesByMonth(ctx context.Context) ([]MonthlySales, error) {
	var rows []MonthlySales
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("DATE_FORMAT(sale_date, '%b') AS month, SUM(amount) AS sales").
		Where("status = ?", "completed").
		Group("DATE_FORMAT(sale_date, '%b'), MONTH(sale_date)").
		Order("MONTH(sale_date)").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepository) VisitsBySource(ctx context.Context) ([]TrafficBySource, error) {
	var rows []TrafficBySource
	err := r.db.WithContext(ctx).Model(&model.TrafficEntry{}).
		Select("source, SUM(visits) AS visits").
		Group("source").
		Order("visits DESC").
		Scan(&rows).Error
	return rows, err
}
