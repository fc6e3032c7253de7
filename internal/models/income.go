package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income represents a single income record.
type Income struct {
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

func (i *Income) OwnerID() uint { return i.UserID }
