package database

import (
	"fmt"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Income{},
		&models.Loan{},
		&models.RecurringPayment{},
		&models.Card{},
		&models.Transaction{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
