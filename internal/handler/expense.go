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

// ExpenseHandler serves the expense CRUD routes.
type ExpenseHandler struct {
	DB *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{DB: db}
}

type expenseReq struct {
	Date        string `json:"date"` // YYYY-MM-DD, empty = today
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,max=100"`
	Description string `json:"description" binding:"max=200"`
}

type expenseResp struct {
	ID          uint            `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:          e.ID,
		Date:        e.Date.Format("2006-01-02"),
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
	}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle spese.")
		return
	}

	items := make([]expenseResp, 0, len(expenses))
	for i := range expenses {
		items = append(items, toExpenseResp(&expenses[i]))
	}

	util.Success(c, util.Response{
		"expenses": items,
	})
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req expenseReq
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

	expense := models.Expense{
		UserID:      user.ID,
		Date:        date,
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Spesa aggiunta con successo!",
		"expense": toExpenseResp(&expense),
	})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req expenseReq
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

	var expense models.Expense
	if !fetchOwned(c, h.DB, &expense, id, user.ID) {
		return
	}

	date := expense.Date
	if req.Date != "" {
		if date, err = time.Parse("2006-01-02", req.Date); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
			return
		}
	}

	expense.Date = date
	expense.Amount = amount
	expense.Category = req.Category
	expense.Description = req.Description

	if err := h.DB.Save(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Spesa aggiornata con successo!",
		"expense": toExpenseResp(&expense),
	})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var expense models.Expense
	if !fetchOwned(c, h.DB, &expense, id, user.ID) {
		return
	}

	if err := h.DB.Delete(&expense).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione.")
		return
	}

	util.Success(c, util.Response{
		"message": "Spesa eliminata.",
	})
}
