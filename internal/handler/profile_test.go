package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "anna", "rossi")
	survivor := createUser(t, db, "bruno", "rossi")

	db.Create(&models.Expense{UserID: user.ID, Date: time.Now(), Amount: decimal.NewFromInt(10), Category: "Cibo"})
	db.Create(&models.Income{UserID: user.ID, Date: time.Now(), Amount: decimal.NewFromInt(20), Category: "Stipendio"})
	db.Create(&models.Loan{UserID: user.ID, Type: "lent", Name: "Prestito", Amount: decimal.NewFromInt(30), DueDate: time.Now()})
	db.Create(&models.RecurringPayment{UserID: user.ID, Name: "Affitto", Amount: decimal.NewFromInt(700), DueDate: time.Now()})
	card := models.Card{UserID: user.ID, Name: "Conto", PlaidAccessToken: "tok"}
	db.Create(&card)
	ext := "tx1"
	db.Create(&models.Transaction{CardID: card.ID, ExternalID: &ext, Date: time.Now(),
		Amount: decimal.NewFromInt(5), Direction: "out"})

	// a record of another user that must survive
	db.Create(&models.Expense{UserID: survivor.ID, Date: time.Now(), Amount: decimal.NewFromInt(99), Category: "Altro"})

	r := newTestRouter(user, func(g *gin.RouterGroup) { g.POST("/delete_account", DeleteAccount(db)) })
	w := doJSON(t, r, "POST", "/api/delete_account", nil)
	wantStatus(t, w, http.StatusOK)

	counts := map[string]int64{}
	var c int64
	db.Model(&models.Expense{}).Where("user_id = ?", user.ID).Count(&c)
	counts["expenses"] = c
	db.Model(&models.Income{}).Where("user_id = ?", user.ID).Count(&c)
	counts["incomes"] = c
	db.Model(&models.Loan{}).Where("user_id = ?", user.ID).Count(&c)
	counts["loans"] = c
	db.Model(&models.RecurringPayment{}).Where("user_id = ?", user.ID).Count(&c)
	counts["recurring"] = c
	db.Model(&models.Card{}).Where("user_id = ?", user.ID).Count(&c)
	counts["cards"] = c
	db.Model(&models.Transaction{}).Where("card_id = ?", card.ID).Count(&c)
	counts["transactions"] = c

	for name, n := range counts {
		if n != 0 {
			t.Errorf("%s remaining after account deletion = %d, want 0", name, n)
		}
	}

	var users int64
	db.Model(&models.User{}).Count(&users)
	if users != 1 {
		t.Errorf("users remaining = %d, want 1", users)
	}
	var survivorExpenses int64
	db.Model(&models.Expense{}).Where("user_id = ?", survivor.ID).Count(&survivorExpenses)
	if survivorExpenses != 1 {
		t.Errorf("survivor expenses = %d, want 1", survivorExpenses)
	}
}

func TestUpdateNotifications(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "anna", "")

	r := newTestRouter(user, func(g *gin.RouterGroup) { g.POST("/update_notifications", UpdateNotifications(db)) })

	w := doJSON(t, r, "POST", "/api/update_notifications", map[string]interface{}{
		"notify_enabled":    false,
		"expense_threshold": "75.50",
	})
	wantStatus(t, w, http.StatusOK)

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.NotifyEnabled {
		t.Errorf("notify_enabled still true after update")
	}
	if !reloaded.ExpenseThreshold.Equal(decimal.RequireFromString("75.50")) {
		t.Errorf("expense_threshold = %s, want 75.50", reloaded.ExpenseThreshold)
	}

	// negative threshold rejected
	w = doJSON(t, r, "POST", "/api/update_notifications", map[string]interface{}{
		"notify_enabled":    true,
		"expense_threshold": "-1",
	})
	wantStatus(t, w, http.StatusBadRequest)
}
