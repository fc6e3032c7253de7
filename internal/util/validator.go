package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromInt(10000000)

// ParseAmount parses a submitted amount and checks it is positive and
// below the sanity cap.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", amount)
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount too large, got %s", amount)
	}
	return amount, nil
}

// ParseDate parses a YYYY-MM-DD form date. An empty string defaults to
// the current day.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateCategory checks the category is present and of sane length.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 100 {
		return fmt.Errorf("category too long, max 100 characters")
	}
	return nil
}
