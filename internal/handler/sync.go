package handler

import (
	"net/http"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/bank"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SyncHandler drives the bank-provider flow: link token creation, token
// exchange and the transaction sync.
type SyncHandler struct {
	DB         *gorm.DB
	Bank       *bank.Client
	SyncWindow int // trailing days pulled on each sync
}

func NewSyncHandler(db *gorm.DB, client *bank.Client, syncWindowDays int) *SyncHandler {
	if syncWindowDays <= 0 {
		syncWindowDays = 30
	}
	return &SyncHandler{DB: db, Bank: client, SyncWindow: syncWindowDays}
}

func (h *SyncHandler) CreateLinkToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	linkToken, err := h.Bank.CreateLinkToken(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la creazione del link token.")
		return
	}

	util.Success(c, util.Response{
		"link_token": linkToken,
	})
}

type exchangeReq struct {
	PublicToken string `json:"public_token" binding:"required"`
	CardID      uint   `json:"card_id" binding:"required"`
}

// ExchangePublicToken swaps the public token for an access token and
// stores it verbatim on the card.
func (h *SyncHandler) ExchangePublicToken(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req exchangeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	var card models.Card
	if !fetchOwned(c, h.DB, &card, int(req.CardID), user.ID) {
		return
	}

	accessToken, err := h.Bank.ExchangePublicToken(req.PublicToken)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante lo scambio del token.")
		return
	}

	card.PlaidAccessToken = accessToken
	if err := h.DB.Save(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Carta collegata con successo!",
		"card":    toCardResp(&card),
	})
}

// SyncTransactions pulls the trailing window of provider transactions
// for every linked card of the requester. Records whose external id is
// already stored are skipped, so repeating the call is idempotent.
// Each card commits on its own: a provider error aborts the remaining
// cards but keeps what earlier cards already imported.
func (h *SyncHandler) SyncTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var cards []models.Card
	if err := h.DB.Where("user_id = ? AND plaid_access_token <> ''", user.ID).
		Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle carte.")
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -h.SyncWindow)

	imported := 0
	for i := range cards {
		card := &cards[i]

		records, err := h.Bank.Transactions(card.PlaidAccessToken, start, end)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la sincronizzazione con la banca.")
			return
		}

		err = h.DB.Transaction(func(tx *gorm.DB) error {
			for _, rec := range records {
				var count int64
				if err := tx.Model(&models.Transaction{}).
					Where("external_id = ?", rec.TransactionID).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					continue
				}

				date, err := time.Parse("2006-01-02", rec.Date)
				if err != nil {
					date = end
				}

				// provider convention: positive amount = money out
				amount := decimal.NewFromFloat(rec.Amount)
				direction := "out"
				if amount.IsNegative() {
					direction = "in"
					amount = amount.Neg()
				}

				externalID := rec.TransactionID
				record := models.Transaction{
					CardID:      card.ID,
					ExternalID:  &externalID,
					Date:        date,
					Amount:      amount,
					Direction:   direction,
					Description: rec.Name,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
				imported++
			}
			return nil
		})
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio delle transazioni.")
			return
		}
	}

	util.Success(c, util.Response{
		"message":  "Sincronizzazione completata.",
		"imported": imported,
		"cards":    len(cards),
	})
}
