package handler

import (
	"net/http"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionHandler serves card transactions. Ownership is indirect:
// the transaction belongs to a card, the card to a user.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

type transactionReq struct {
	CardID      uint   `json:"card_id" binding:"required"`
	Date        string `json:"date"`
	Amount      string `json:"amount" binding:"required"`
	Direction   string `json:"direction" binding:"required,oneof=in out"`
	Description string `json:"description" binding:"max=200"`
}

// updates cannot move a transaction to another card, so card_id is not
// part of the update payload
type transactionUpdateReq struct {
	Date        string `json:"date"`
	Amount      string `json:"amount" binding:"required"`
	Direction   string `json:"direction" binding:"required,oneof=in out"`
	Description string `json:"description" binding:"max=200"`
}

type transactionResp struct {
	ID          uint            `json:"id"`
	CardID      uint            `json:"card_id"`
	ExternalID  *string         `json:"external_id,omitempty"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Description string          `json:"description"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		CardID:      t.CardID,
		ExternalID:  t.ExternalID,
		Date:        t.Date.Format("2006-01-02"),
		Amount:      t.Amount,
		Direction:   t.Direction,
		Description: t.Description,
	}
}

// loadOwnedTransaction resolves a transaction and checks the owning
// card belongs to the requester.
func (h *TransactionHandler) loadOwnedTransaction(c *gin.Context, id int, userID uint) (*models.Transaction, bool) {
	var tx models.Transaction
	if err := h.DB.First(&tx, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Record non trovato.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca.")
		}
		return nil, false
	}

	var card models.Card
	if err := h.DB.First(&card, tx.CardID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca.")
		return nil, false
	}
	if card.UserID != userID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Non sei autorizzato.")
		return nil, false
	}
	return &tx, true
}

// List returns the transactions of all the requester's cards, newest
// first. An optional ?card_id= narrows to one card.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	q := h.DB.Model(&models.Transaction{}).
		Joins("JOIN cards ON cards.id = transactions.card_id").
		Where("cards.user_id = ?", user.ID)
	if cardID := c.Query("card_id"); cardID != "" {
		q = q.Where("transactions.card_id = ?", cardID)
	}

	var transactions []models.Transaction
	if err := q.Order("transactions.date DESC, transactions.id DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle transazioni.")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}

	util.Success(c, util.Response{
		"transactions": items,
	})
}

// Create records a manual transaction on one of the requester's cards.
// ExternalID stays NULL, only synced records carry one.
func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	var card models.Card
	if !fetchOwned(c, h.DB, &card, int(req.CardID), user.ID) {
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Inserisci un importo valido.")
		return
	}

	date, err := util.ParseDate(req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
		return
	}

	tx := models.Transaction{
		CardID:      card.ID,
		Date:        date,
		Amount:      amount,
		Direction:   req.Direction,
		Description: req.Description,
	}
	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message":     "Transazione aggiunta con successo!",
		"transaction": toTransactionResp(&tx),
	})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req transactionUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Inserisci un importo valido.")
		return
	}

	tx, ok := h.loadOwnedTransaction(c, id, user.ID)
	if !ok {
		return
	}

	date := tx.Date
	if req.Date != "" {
		if date, err = util.ParseDate(req.Date); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
			return
		}
	}

	tx.Date = date
	tx.Amount = amount
	tx.Direction = req.Direction
	tx.Description = req.Description

	if err := h.DB.Save(tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message":     "Transazione aggiornata con successo!",
		"transaction": toTransactionResp(tx),
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	tx, ok := h.loadOwnedTransaction(c, id, user.ID)
	if !ok {
		return
	}

	if err := h.DB.Delete(tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione.")
		return
	}

	util.Success(c, util.Response{
		"message": "Transazione eliminata.",
	})
}
