package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeHandler serves the income CRUD routes.
type IncomeHandler struct {
	DB *gorm.DB
}

func NewIncomeHandler(db *gorm.DB) *IncomeHandler {
	return &IncomeHandler{DB: db}
}

type incomeReq struct {
	Date        string `json:"date"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,max=100"`
	Description string `json:"description" binding:"max=200"`
}

type incomeResp struct {
	ID          uint            `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func toIncomeResp(i *models.Income) incomeResp {
	return incomeResp{
		ID:          i.ID,
		Date:        i.Date.Format("2006-01-02"),
		Amount:      i.Amount,
		Category:    i.Category,
		Description: i.Description,
	}
}

func (h *IncomeHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var incomes []models.Income
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle entrate.")
		return
	}

	items := make([]incomeResp, 0, len(incomes))
	for i := range incomes {
		items = append(items, toIncomeResp(&incomes[i]))
	}

	util.Success(c, util.Response{
		"incomes": items,
	})
}

func (h *IncomeHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Seleziona una categoria.")
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

	income := models.Income{
		UserID:      user.ID,
		Date:        date,
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.DB.Create(&income).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Entrata aggiunta con successo!",
		"income":  toIncomeResp(&income),
	})
}

func (h *IncomeHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req incomeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	req.Category = strings.TrimSpace(req.Category)
	if err := util.ValidateCategory(req.Category); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Seleziona una categoria.")
		return
	}
	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Inserisci un importo valido.")
		return
	}

	var income models.Income
	if !fetchOwned(c, h.DB, &income, id, user.ID) {
		return
	}

	date := income.Date
	if req.Date != "" {
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
			return
		}
	}

	income.Date = date
	income.Amount = amount
	income.Category = req.Category
	income.Description = req.Description

	if err := h.DB.Save(&income).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Entrata aggiornata con successo!",
		"income":  toIncomeResp(&income),
	})
}

func (h *IncomeHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var income models.Income
	if !fetchOwned(c, h.DB, &income, id, user.ID) {
		return
	}

	if err := h.DB.Delete(&income).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione.")
		return
	}

	util.Success(c, util.Response{
		"message": "Entrata eliminata.",
	})
}
