package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringPayment represents a repeating payment with its next due date.
type RecurringPayment struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Name        string          `gorm:"size:100"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate     time.Time       `gorm:"index;not null"`
	Recurrence  string          `gorm:"size:50"` // e.g. Giornaliero, Settimanale, Mensile, Annuale
	Description string          `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (p *RecurringPayment) OwnerID() uint { return p.UserID }
