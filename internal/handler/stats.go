package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsHandler serves the aggregate views: monthly balance, category
// charts and the family overview.
type StatsHandler struct {
	DB *gorm.DB
}

func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

// Balance sums the requester's incomes and expenses over one calendar
// month. The interval is half-open [first of month, first of next
// month), so December rolls over to January of the following year.
func (h *StatsHandler) Balance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Anno non valido.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Mese non valido.")
		return
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, 0)

	var expenses []models.Expense
	if err := h.DB.Where("user_id = ? AND date >= ? AND date < ?",
		user.ID, startDate, endDate).
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il calcolo del bilancio.")
		return
	}
	var incomes []models.Income
	if err := h.DB.Where("user_id = ? AND date >= ? AND date < ?",
		user.ID, startDate, endDate).
		Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il calcolo del bilancio.")
		return
	}

	totalExpenses := decimal.Zero
	for i := range expenses {
		totalExpenses = totalExpenses.Add(expenses[i].Amount)
	}
	totalIncomes := decimal.Zero
	for i := range incomes {
		totalIncomes = totalIncomes.Add(incomes[i].Amount)
	}

	util.Success(c, util.Response{
		"year":           year,
		"month":          month,
		"total_expenses": totalExpenses,
		"total_incomes":  totalIncomes,
		"balance":        totalIncomes.Sub(totalExpenses),
	})
}

type categorySeries struct {
	Categories []string          `json:"categories"`
	Values     []decimal.Decimal `json:"values"`
}

func groupByCategory(categories []string, totals map[string]decimal.Decimal) categorySeries {
	s := categorySeries{
		Categories: make([]string, 0, len(categories)),
		Values:     make([]decimal.Decimal, 0, len(categories)),
	}
	for _, cat := range categories {
		s.Categories = append(s.Categories, cat)
		s.Values = append(s.Values, totals[cat])
	}
	return s
}

// Charts returns per-category totals for the requester's expenses and
// incomes as two parallel (category, total) series.
func (h *StatsHandler) Charts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	if err := h.DB.Where("user_id = ?", user.ID).Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il calcolo dei grafici.")
		return
	}
	var incomes []models.Income
	if err := h.DB.Where("user_id = ?", user.ID).Find(&incomes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il calcolo dei grafici.")
		return
	}

	expTotals := make(map[string]decimal.Decimal)
	var expCats []string
	for i := range expenses {
		e := &expenses[i]
		if _, seen := expTotals[e.Category]; !seen {
			expCats = append(expCats, e.Category)
		}
		expTotals[e.Category] = expTotals[e.Category].Add(e.Amount)
	}

	incTotals := make(map[string]decimal.Decimal)
	var incCats []string
	for i := range incomes {
		in := &incomes[i]
		if _, seen := incTotals[in.Category]; !seen {
			incCats = append(incCats, in.Category)
		}
		incTotals[in.Category] = incTotals[in.Category].Add(in.Amount)
	}

	util.Success(c, util.Response{
		"expenses": groupByCategory(expCats, expTotals),
		"incomes":  groupByCategory(incCats, incTotals),
	})
}

type familyMemberResp struct {
	Username       string          `json:"username"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	TotalIncomes   decimal.Decimal `json:"total_incomes"`
	LatestExpense  *expenseResp    `json:"latest_expense"`
	LargestExpense *expenseResp    `json:"largest_expense"`
}

// Family lists the members sharing the requester's family label with
// per-member aggregates. Each aggregate is computed independently, no
// cross-member math.
func (h *StatsHandler) Family(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.Family == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Non fai parte di una famiglia.")
		return
	}

	var members []models.User
	if err := h.DB.Where("family = ?", user.Family).Find(&members).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca della famiglia.")
		return
	}

	data := make([]familyMemberResp, 0, len(members))
	for i := range members {
		member := &members[i]

		var expenses []models.Expense
		if err := h.DB.Where("user_id = ?", member.ID).Find(&expenses).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle spese.")
			return
		}
		var incomes []models.Income
		if err := h.DB.Where("user_id = ?", member.ID).Find(&incomes).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle entrate.")
			return
		}

		resp := familyMemberResp{
			Username:      member.Username,
			TotalExpenses: decimal.Zero,
			TotalIncomes:  decimal.Zero,
		}

		var latest, largest *models.Expense
		for j := range expenses {
			e := &expenses[j]
			resp.TotalExpenses = resp.TotalExpenses.Add(e.Amount)
			if latest == nil || e.Date.After(latest.Date) {
				latest = e
			}
			if largest == nil || e.Amount.GreaterThan(largest.Amount) {
				largest = e
			}
		}
		for j := range incomes {
			resp.TotalIncomes = resp.TotalIncomes.Add(incomes[j].Amount)
		}

		if latest != nil {
			r := toExpenseResp(latest)
			resp.LatestExpense = &r
		}
		if largest != nil {
			r := toExpenseResp(largest)
			resp.LargestExpense = &r
		}

		data = append(data, resp)
	}

	util.Success(c, util.Response{
		"family":  user.Family,
		"members": data,
	})
}
