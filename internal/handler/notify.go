package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NotifyHandler serves the due-date notices, the per-user reminder feed
// and the family threshold alerts.
type NotifyHandler struct {
	DB           *gorm.DB
	NoticeWindow int // days, home-page notices
}

func NewNotifyHandler(db *gorm.DB, noticeWindowDays int) *NotifyHandler {
	if noticeWindowDays <= 0 {
		noticeWindowDays = 7
	}
	return &NotifyHandler{DB: db, NoticeWindow: noticeWindowDays}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Notices lists loans and recurring payments due within the notice
// window as human-readable strings. The query has no lower bound, so
// overdue items keep showing up, and it is not scoped to any user; both
// quirks are inherited behavior.
func (h *NotifyHandler) Notices(c *gin.Context) {
	threshold := today().AddDate(0, 0, h.NoticeWindow)

	var notifications []string

	var loans []models.Loan
	if err := h.DB.Where("due_date <= ?", threshold).Find(&loans).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle scadenze.")
		return
	}
	for i := range loans {
		notifications = append(notifications,
			fmt.Sprintf("Attenzione: %s ha scadenza il %s", loans[i].Name, loans[i].DueDate.Format("02-01-2006")))
	}

	var payments []models.RecurringPayment
	if err := h.DB.Where("due_date <= ?", threshold).Find(&payments).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle scadenze.")
		return
	}
	for i := range payments {
		notifications = append(notifications,
			fmt.Sprintf("Attenzione: %s scade il %s", payments[i].Name, payments[i].DueDate.Format("02-01-2006")))
	}

	if notifications == nil {
		notifications = []string{}
	}
	util.Success(c, util.Response{
		"notifications": notifications,
	})
}

type reminderResp struct {
	Type    string `json:"type"` // loan / recurring
	Name    string `json:"name"`
	DueDate string `json:"due_date"`
}

// Reminders is the per-user feed of records due within one day. Users
// who disabled notifications get an empty feed.
func (h *NotifyHandler) Reminders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	reminders := []reminderResp{}

	if user.NotifyEnabled {
		threshold := today().AddDate(0, 0, 1)

		var loans []models.Loan
		if err := h.DB.Where("user_id = ? AND due_date <= ?", user.ID, threshold).
			Find(&loans).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle scadenze.")
			return
		}
		for i := range loans {
			reminders = append(reminders, reminderResp{
				Type:    "loan",
				Name:    loans[i].Name,
				DueDate: loans[i].DueDate.Format("2006-01-02"),
			})
		}

		var payments []models.RecurringPayment
		if err := h.DB.Where("user_id = ? AND due_date <= ?", user.ID, threshold).
			Find(&payments).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle scadenze.")
			return
		}
		for i := range payments {
			reminders = append(reminders, reminderResp{
				Type:    "recurring",
				Name:    payments[i].Name,
				DueDate: payments[i].DueDate.Format("2006-01-02"),
			})
		}
	}

	util.Success(c, util.Response{
		"reminders": reminders,
	})
}

// FamilyExpenseNotifications emits one alert per family-member expense
// of the last day at or above the requester's threshold. Nothing is
// recorded, so calling twice within the window re-emits the same
// alerts.
//
// TODO: the family label is hardcoded; it should use the requester's
// own label the way /api/family does.
func (h *NotifyHandler) FamilyExpenseNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	const familyLabel = "famiglia"

	var members []models.User
	if err := h.DB.Where("family = ?", familyLabel).Find(&members).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca della famiglia.")
		return
	}

	since := time.Now().AddDate(0, 0, -1)

	notifications := []string{}
	for i := range members {
		member := &members[i]

		var expenses []models.Expense
		if err := h.DB.Where("user_id = ? AND date >= ? AND amount >= ?",
			member.ID, since, user.ExpenseThreshold).
			Find(&expenses).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca delle spese.")
			return
		}
		for j := range expenses {
			e := &expenses[j]
			notifications = append(notifications,
				fmt.Sprintf("Attenzione: %s ha speso %s€ per %s", member.Username, e.Amount, e.Category))
		}
	}

	util.Success(c, util.Response{
		"notifications": notifications,
	})
}
