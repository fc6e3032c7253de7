package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents application user. Users sharing the same Family label
// are grouped together on the family views.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	Email        string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:200;not null"`
	Family       string `gorm:"size:100;index"`
	Avatar       string `gorm:"size:255"`

	// notification preferences
	NotifyEnabled    bool            `gorm:"default:true"`
	ExpenseThreshold decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
