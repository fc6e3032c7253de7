package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction belongs to a Card. ExternalID is the provider-issued id;
// its unique index is what makes repeated syncs idempotent. Manually
// entered transactions leave it NULL.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	CardID      uint            `gorm:"index;not null"`
	ExternalID  *string         `gorm:"size:100;uniqueIndex"`
	Date        time.Time       `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Direction   string          `gorm:"size:8;not null"` // in / out
	Description string          `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Card Card `gorm:"constraint:OnDelete:CASCADE"`
}
