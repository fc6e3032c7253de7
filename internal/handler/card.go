package handler

import (
	"net/http"
	"strings"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CardHandler serves the card CRUD routes. Deleting a card also removes
// its transactions through the foreign key cascade.
type CardHandler struct {
	DB *gorm.DB
}

func NewCardHandler(db *gorm.DB) *CardHandler {
	return &CardHandler{DB: db}
}

type cardReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Network  string `json:"network" binding:"max=50"`
	LastFour string `json:"last_four" binding:"max=4"`
}

type cardResp struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Network  string `json:"network"`
	LastFour string `json:"last_four"`
	Linked   bool   `json:"linked"` // provider access token present
}

func toCardResp(card *models.Card) cardResp {
	return cardResp{
		ID:       card.ID,
		Name:     card.Name,
		Network:  card.Network,
		LastFour: card.LastFour,
		Linked:   card.PlaidAccessToken != "",
	}
}

func (h *CardHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var cards []models.Card
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id DESC").
		Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle carte.")
		return
	}

	items := make([]cardResp, 0, len(cards))
	for i := range cards {
		items = append(items, toCardResp(&cards[i]))
	}

	util.Success(c, util.Response{
		"cards": items,
	})
}

func (h *CardHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	card := models.Card{
		UserID:   user.ID,
		Name:     strings.TrimSpace(req.Name),
		Network:  req.Network,
		LastFour: req.LastFour,
	}
	if err := h.DB.Create(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Carta aggiunta con successo!",
		"card":    toCardResp(&card),
	})
}

func (h *CardHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	var card models.Card
	if !fetchOwned(c, h.DB, &card, id, user.ID) {
		return
	}

	card.Name = strings.TrimSpace(req.Name)
	card.Network = req.Network
	card.LastFour = req.LastFour

	if err := h.DB.Save(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Carta aggiornata con successo!",
		"card":    toCardResp(&card),
	})
}

func (h *CardHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var card models.Card
	if !fetchOwned(c, h.DB, &card, id, user.ID) {
		return
	}

	if err := h.DB.Delete(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione.")
		return
	}

	util.Success(c, util.Response{
		"message": "Carta eliminata.",
	})
}
