// Package bank is a thin client for the bank-data provider used to
// import card transactions (link token -> public token -> access token,
// then date-ranged transaction pulls).
package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/config"

	"github.com/google/uuid"
)

// ProviderTransaction is one record of the provider's transaction list.
// Amount follows the provider's sign convention: positive means money
// leaving the account.
type ProviderTransaction struct {
	TransactionID string  `json:"transaction_id"`
	Date          string  `json:"date"` // YYYY-MM-DD
	Amount        float64 `json:"amount"`
	Name          string  `json:"name"`
}

type Client struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client
}

func NewClient(cfg config.BankConfig) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// post sends a JSON request to the provider and decodes the reply into out.
func (c *Client) post(path string, body map[string]interface{}, out interface{}) error {
	body["client_id"] = c.clientID
	body["secret"] = c.secret

	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// CreateLinkToken starts the linking flow for the given user.
func (c *Client) CreateLinkToken(userID uint) (string, error) {
	var out struct {
		LinkToken string `json:"link_token"`
	}
	err := c.post("/link/token/create", map[string]interface{}{
		"user": map[string]string{
			"client_user_id": fmt.Sprintf("%d", userID),
		},
		"client_name":   "Gestore Spese",
		"language":      "it",
		"country_codes": []string{"IT"},
		"products":      []string{"transactions"},
	}, &out)
	if err != nil {
		return "", err
	}
	return out.LinkToken, nil
}

// ExchangePublicToken swaps the public token from the linking UI for the
// long-lived access token.
func (c *Client) ExchangePublicToken(publicToken string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := c.post("/item/public_token/exchange", map[string]interface{}{
		"public_token": publicToken,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Transactions fetches the transaction list for an access token within
// [start, end].
func (c *Client) Transactions(accessToken string, start, end time.Time) ([]ProviderTransaction, error) {
	var out struct {
		Transactions []ProviderTransaction `json:"transactions"`
	}
	err := c.post("/transactions/get", map[string]interface{}{
		"access_token": accessToken,
		"start_date":   start.Format("2006-01-02"),
		"end_date":     end.Format("2006-01-02"),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Transactions, nil
}
