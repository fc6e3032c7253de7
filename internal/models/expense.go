package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single expense record.
type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Date        time.Time       `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Category    string          `gorm:"size:100;not null"`
	Description string          `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// OwnerID reports the owning user id for the ownership check.
func (e *Expense) OwnerID() uint { return e.UserID }
