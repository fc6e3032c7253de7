package handler

import (
	"net/http"
	"strings"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringHandler serves the recurring payment CRUD routes.
type RecurringHandler struct {
	DB *gorm.DB
}

func NewRecurringHandler(db *gorm.DB) *RecurringHandler {
	return &RecurringHandler{DB: db}
}

type recurringReq struct {
	Name        string `json:"name" binding:"required,max=100"`
	Amount      string `json:"amount" binding:"required"`
	DueDate     string `json:"due_date"`
	Recurrence  string `json:"recurrence" binding:"max=50"`
	Description string `json:"description" binding:"max=200"`
}

type recurringResp struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	Recurrence  string          `json:"recurrence"`
	Description string          `json:"description"`
}

func toRecurringResp(p *models.RecurringPayment) recurringResp {
	return recurringResp{
		ID:          p.ID,
		Name:        p.Name,
		Amount:      p.Amount,
		DueDate:     p.DueDate.Format("2006-01-02"),
		Recurrence:  p.Recurrence,
		Description: p.Description,
	}
}

func (h *RecurringHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var payments []models.RecurringPayment
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("due_date DESC, id DESC").
		Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca dei pagamenti ricorrenti.")
		return
	}

	items := make([]recurringResp, 0, len(payments))
	for i := range payments {
		items = append(items, toRecurringResp(&payments[i]))
	}

	util.Success(c, util.Response{
		"payments": items,
	})
}

func (h *RecurringHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req recurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Inserisci un importo valido.")
		return
	}

	dueDate, err := util.ParseDate(req.DueDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
		return
	}

	payment := models.RecurringPayment{
		UserID:      user.ID,
		Name:        strings.TrimSpace(req.Name),
		Amount:      amount,
		DueDate:     dueDate,
		Recurrence:  req.Recurrence,
		Description: req.Description,
	}
	if err := h.DB.Create(&payment).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Pagamento ricorrente registrato!",
		"payment": toRecurringResp(&payment),
	})
}

func (h *RecurringHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req recurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Inserisci un importo valido.")
		return
	}

	var payment models.RecurringPayment
	if !fetchOwned(c, h.DB, &payment, id, user.ID) {
		return
	}

	dueDate := payment.DueDate
	if req.DueDate != "" {
		if dueDate, err = util.ParseDate(req.DueDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
			return
		}
	}

	payment.Name = strings.TrimSpace(req.Name)
	payment.Amount = amount
	payment.DueDate = dueDate
	payment.Recurrence = req.Recurrence
	payment.Description = req.Description

	if err := h.DB.Save(&payment).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Pagamento ricorrente aggiornato con successo!",
		"payment": toRecurringResp(&payment),
	})
}

func (h *RecurringHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var payment models.RecurringPayment
	if !fetchOwned(c, h.DB, &payment, id, user.ID) {
		return
	}

	if err := h.DB.Delete(&payment).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione.")
		return
	}

	util.Success(c, util.Response{
		"message": "Pagamento ricorrente eliminato.",
	})
}
