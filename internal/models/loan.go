package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan represents borrowed or lent money with a due date.
type Loan struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	Type        string          `gorm:"size:10"` // borrowed / lent
	Name        string          `gorm:"size:100"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate     time.Time       `gorm:"index;not null"`
	Description string          `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (l *Loan) OwnerID() uint { return l.UserID }
