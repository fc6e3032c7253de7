package models

import "time"

// Card is a user-owned payment/account record. When the card has been
// linked to the bank provider, PlaidAccessToken holds the access token
// returned by the token exchange and is stored verbatim.
type Card struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"index;not null"`
	Name             string `gorm:"size:100;not null"`
	Network          string `gorm:"size:50"`
	LastFour         string `gorm:"size:4"`
	PlaidAccessToken string `gorm:"size:500"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Card) OwnerID() uint { return c.UserID }
