package bank

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.BankConfig{
		BaseURL:  baseURL,
		ClientID: "test-client",
		Secret:   "test-secret",
	})
}

func TestTransactionsSendsCredentialsAndRange(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions/get" {
			t.Errorf("path = %s, want /transactions/get", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"transactions":[{"transaction_id":"tx1","date":"2024-03-05","amount":12.5,"name":"Bar Roma"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	txs, err := c.Transactions("access-token-1", start, end)
	if err != nil {
		t.Fatalf("Transactions() error = %v", err)
	}

	if got["client_id"] != "test-client" || got["secret"] != "test-secret" {
		t.Errorf("credentials not sent, body = %v", got)
	}
	if got["access_token"] != "access-token-1" {
		t.Errorf("access_token = %v", got["access_token"])
	}
	if got["start_date"] != "2024-03-01" || got["end_date"] != "2024-03-31" {
		t.Errorf("range = %v .. %v", got["start_date"], got["end_date"])
	}

	if len(txs) != 1 {
		t.Fatalf("len(txs) = %d, want 1", len(txs))
	}
	if txs[0].TransactionID != "tx1" || txs[0].Amount != 12.5 || txs[0].Name != "Bar Roma" {
		t.Errorf("unexpected transaction: %+v", txs[0])
	}
}

func TestExchangePublicToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item/public_token/exchange" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["public_token"] != "public-1" {
			t.Errorf("public_token = %v", body["public_token"])
		}
		w.Write([]byte(`{"access_token":"access-1","item_id":"item-1"}`))
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).ExchangePublicToken("public-1")
	if err != nil {
		t.Fatalf("ExchangePublicToken() error = %v", err)
	}
	if token != "access-1" {
		t.Errorf("token = %s, want access-1", token)
	}
}

func TestCreateLinkToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			User map[string]string `json:"user"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.User["client_user_id"] != "7" {
			t.Errorf("client_user_id = %v", body.User["client_user_id"])
		}
		w.Write([]byte(`{"link_token":"link-1"}`))
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).CreateLinkToken(7)
	if err != nil {
		t.Fatalf("CreateLinkToken() error = %v", err)
	}
	if token != "link-1" {
		t.Errorf("token = %s, want link-1", token)
	}
}

func TestProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_code":"INVALID_ACCESS_TOKEN"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Transactions("bad", time.Now(), time.Now()); err == nil {
		t.Error("Transactions() error = nil, want error on 400")
	}
}
