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

// LoanHandler serves the loan CRUD routes.
type LoanHandler struct {
	DB *gorm.DB
}

func NewLoanHandler(db *gorm.DB) *LoanHandler {
	return &LoanHandler{DB: db}
}

type loanReq struct {
	Type        string `json:"type" binding:"required,oneof=borrowed lent"`
	Name        string `json:"name" binding:"required,max=100"`
	Amount      string `json:"amount" binding:"required"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD, empty = today
	Description string `json:"description" binding:"max=200"`
}

type loanResp struct {
	ID          uint            `json:"id"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"due_date"`
	Description string          `json:"description"`
}

func toLoanResp(l *models.Loan) loanResp {
	return loanResp{
		ID:          l.ID,
		Type:        l.Type,
		Name:        l.Name,
		Amount:      l.Amount,
		DueDate:     l.DueDate.Format("2006-01-02"),
		Description: l.Description,
	}
}

func (h *LoanHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var loans []models.Loan
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("due_date DESC, id DESC").
		Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca dei prestiti.")
		return
	}

	items := make([]loanResp, 0, len(loans))
	for i := range loans {
		items = append(items, toLoanResp(&loans[i]))
	}

	util.Success(c, util.Response{
		"loans": items,
	})
}

func (h *LoanHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req loanReq
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

	loan := models.Loan{
		UserID:      user.ID,
		Type:        req.Type,
		Name:        strings.TrimSpace(req.Name),
		Amount:      amount,
		DueDate:     dueDate,
		Description: req.Description,
	}
	if err := h.DB.Create(&loan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Prestito registrato!",
		"loan":    toLoanResp(&loan),
	})
}

func (h *LoanHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req loanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
		return
	}

	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Inserisci un importo valido.")
		return
	}

	var loan models.Loan
	if !fetchOwned(c, h.DB, &loan, id, user.ID) {
		return
	}

	dueDate := loan.DueDate
	if req.DueDate != "" {
		if dueDate, err = util.ParseDate(req.DueDate); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato data non valido, usa YYYY-MM-DD.")
			return
		}
	}

	loan.Type = req.Type
	loan.Name = strings.TrimSpace(req.Name)
	loan.Amount = amount
	loan.DueDate = dueDate
	loan.Description = req.Description

	if err := h.DB.Save(&loan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
		return
	}

	util.Success(c, util.Response{
		"message": "Prestito aggiornato con successo!",
		"loan":    toLoanResp(&loan),
	})
}

func (h *LoanHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var loan models.Loan
	if !fetchOwned(c, h.DB, &loan, id, user.ID) {
		return
	}

	if err := h.DB.Delete(&loan).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione.")
		return
	}

	util.Success(c, util.Response{
		"message": "Prestito eliminato.",
	})
}
