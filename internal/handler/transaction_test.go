package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func createCard(t *testing.T, db *gorm.DB, userID uint, name string) *models.Card {
	t.Helper()
	card := &models.Card{UserID: userID, Name: name}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("create card %s: %v", name, err)
	}
	return card
}

func TestUpdateTransactionStaysOnItsCard(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "mario", "")
	card1 := createCard(t, db, user.ID, "Conto")
	card2 := createCard(t, db, user.ID, "Carta")

	tx := models.Transaction{
		CardID:    card1.ID,
		Date:      time.Now(),
		Amount:    decimal.NewFromInt(10),
		Direction: "out",
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatal(err)
	}

	h := NewTransactionHandler(db)
	r := newTestRouter(user, func(g *gin.RouterGroup) {
		g.PUT("/transactions/:id", h.Update)
	})

	// no card_id needed in the update payload
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", tx.ID), map[string]interface{}{
		"amount":    "15.00",
		"direction": "out",
	})
	wantStatus(t, w, http.StatusOK)
	decodeData(t, w, nil)

	// a stray card_id in the payload cannot move the transaction
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/transactions/%d", tx.ID), map[string]interface{}{
		"card_id":   card2.ID,
		"amount":    "20.00",
		"direction": "in",
	})
	wantStatus(t, w, http.StatusOK)
	decodeData(t, w, nil)

	var got models.Transaction
	if err := db.First(&got, tx.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.CardID != card1.ID {
		t.Errorf("CardID = %d, want %d (transaction moved card)", got.CardID, card1.ID)
	}
	if !got.Amount.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("Amount = %s, want 20.00", got.Amount)
	}
	if got.Direction != "in" {
		t.Errorf("Direction = %s, want in", got.Direction)
	}
}
