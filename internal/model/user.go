package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"` // stored lower-cased
	PasswordHash string     `json:"-" gorm:"size:255;not null"`                 // Never expose in JSON
	Role         Role       `json:"role" gorm:"size:50;not null;default:'USER'"`
	Department   string     `json:"department" gorm:"size:100;not null;default:'Operations'"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName keeps the table name stable across GORM naming strategies.
func (User) TableName() string { return "users" }
