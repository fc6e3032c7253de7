package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/bank"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/config"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// newProviderStub serves a canned /transactions/get response and records
// how often it was called.
func newProviderStub(t *testing.T, transactions []bank.ProviderTransaction, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/get" {
			http.NotFound(w, r)
			return
		}
		*calls++
		var req struct {
			AccessToken string `json:"access_token"`
			StartDate   string `json:"start_date"`
			EndDate     string `json:"end_date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode provider request: %v", err)
		}
		if req.AccessToken == "" || req.StartDate == "" || req.EndDate == "" {
			t.Errorf("provider request missing fields: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"transactions": transactions,
		})
	}))
}

func TestSyncSkipsAlreadyImported(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "anna", "")

	card := models.Card{UserID: user.ID, Name: "Conto", PlaidAccessToken: "access-token-1"}
	if err := db.Create(&card).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}

	existing := "tx1"
	db.Create(&models.Transaction{
		CardID:     card.ID,
		ExternalID: &existing,
		Date:       time.Now(),
		Amount:     decimal.NewFromInt(10),
		Direction:  "out",
	})

	calls := 0
	ts := newProviderStub(t, []bank.ProviderTransaction{
		{TransactionID: "tx1", Date: "2024-03-01", Amount: 10.0, Name: "Supermercato"},
		{TransactionID: "tx2", Date: "2024-03-02", Amount: -25.5, Name: "Rimborso"},
	}, &calls)
	defer ts.Close()

	client := bank.NewClient(config.BankConfig{BaseURL: ts.URL})
	h := NewSyncHandler(db, client, 30)
	r := newTestRouter(user, func(g *gin.RouterGroup) { g.GET("/sync_transactions", h.SyncTransactions) })

	w := doJSON(t, r, "GET", "/api/sync_transactions", nil)
	wantStatus(t, w, http.StatusOK)

	var data struct {
		Imported int `json:"imported"`
	}
	decodeData(t, w, &data)
	if data.Imported != 1 {
		t.Errorf("imported = %d, want 1", data.Imported)
	}

	var count int64
	db.Model(&models.Transaction{}).Where("card_id = ?", card.ID).Count(&count)
	if count != 2 {
		t.Fatalf("transactions after sync = %d, want 2", count)
	}

	// the new record maps the provider sign convention to a direction
	var imported models.Transaction
	if err := db.Where("external_id = ?", "tx2").First(&imported).Error; err != nil {
		t.Fatalf("load imported transaction: %v", err)
	}
	if imported.Direction != "in" {
		t.Errorf("direction = %q, want in (negative provider amount)", imported.Direction)
	}
	if !imported.Amount.Equal(decimal.RequireFromString("25.5")) {
		t.Errorf("amount = %s, want 25.5", imported.Amount)
	}

	// syncing again must not create duplicates
	w = doJSON(t, r, "GET", "/api/sync_transactions", nil)
	wantStatus(t, w, http.StatusOK)
	decodeData(t, w, &data)
	if data.Imported != 0 {
		t.Errorf("second sync imported = %d, want 0", data.Imported)
	}
	db.Model(&models.Transaction{}).Where("card_id = ?", card.ID).Count(&count)
	if count != 2 {
		t.Errorf("transactions after second sync = %d, want 2", count)
	}
	if calls != 2 {
		t.Errorf("provider calls = %d, want 2", calls)
	}
}

func TestSyncIgnoresUnlinkedCards(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "anna", "")

	// card without an access token must not reach the provider
	db.Create(&models.Card{UserID: user.ID, Name: "Contanti"})

	calls := 0
	ts := newProviderStub(t, nil, &calls)
	defer ts.Close()

	client := bank.NewClient(config.BankConfig{BaseURL: ts.URL})
	h := NewSyncHandler(db, client, 30)
	r := newTestRouter(user, func(g *gin.RouterGroup) { g.GET("/sync_transactions", h.SyncTransactions) })

	w := doJSON(t, r, "GET", "/api/sync_transactions", nil)
	wantStatus(t, w, http.StatusOK)
	if calls != 0 {
		t.Errorf("provider calls = %d, want 0", calls)
	}
}

func TestSyncProviderErrorAborts(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "anna", "")
	db.Create(&models.Card{UserID: user.ID, Name: "Conto", PlaidAccessToken: "tok"})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := bank.NewClient(config.BankConfig{BaseURL: ts.URL})
	h := NewSyncHandler(db, client, 30)
	r := newTestRouter(user, func(g *gin.RouterGroup) { g.GET("/sync_transactions", h.SyncTransactions) })

	w := doJSON(t, r, "GET", "/api/sync_transactions", nil)
	wantStatus(t, w, http.StatusInternalServerError)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 0 {
		t.Errorf("transactions after failed sync = %d, want 0", count)
	}
}

func TestExchangePublicTokenStoresAccessToken(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "anna", "")
	card := models.Card{UserID: user.ID, Name: "Conto"}
	db.Create(&card)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item/public_token/exchange" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "access-123"})
	}))
	defer ts.Close()

	client := bank.NewClient(config.BankConfig{BaseURL: ts.URL})
	h := NewSyncHandler(db, client, 30)
	r := newTestRouter(user, func(g *gin.RouterGroup) { g.POST("/exchange_public_token", h.ExchangePublicToken) })

	w := doJSON(t, r, "POST", "/api/exchange_public_token", map[string]interface{}{
		"public_token": "public-xyz",
		"card_id":      card.ID,
	})
	wantStatus(t, w, http.StatusOK)

	var reloaded models.Card
	db.First(&reloaded, card.ID)
	if reloaded.PlaidAccessToken != "access-123" {
		t.Errorf("access token = %q, want access-123", reloaded.PlaidAccessToken)
	}
}
