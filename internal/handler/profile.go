package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetMe returns the current user's account data.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":                user.ID,
			"username":          user.Username,
			"email":             user.Email,
			"family":            user.Family,
			"avatar":            user.Avatar,
			"notify_enabled":    user.NotifyEnabled,
			"expense_threshold": user.ExpenseThreshold,
			"created_at":        user.CreatedAt,
		},
	})
}

type updateNotificationsReq struct {
	NotifyEnabled    bool   `json:"notify_enabled"`
	ExpenseThreshold string `json:"expense_threshold"`
}

// UpdateNotifications updates the notification-enabled flag and the
// family expense alert threshold.
func UpdateNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req updateNotificationsReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
			return
		}

		threshold := user.ExpenseThreshold
		if req.ExpenseThreshold != "" {
			parsed, err := decimal.NewFromString(req.ExpenseThreshold)
			if err != nil || parsed.IsNegative() {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Soglia non valida.")
				return
			}
			threshold = parsed
		}

		if err := db.Model(user).Updates(map[string]interface{}{
			"notify_enabled":    req.NotifyEnabled,
			"expense_threshold": threshold,
		}).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
			return
		}

		user.NotifyEnabled = req.NotifyEnabled
		user.ExpenseThreshold = threshold

		util.Success(c, util.Response{
			"message": "Preferenze di notifica aggiornate.",
			"user": gin.H{
				"notify_enabled":    user.NotifyEnabled,
				"expense_threshold": user.ExpenseThreshold,
			},
		})
	}
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// ChangePassword updates the current user's password.
func ChangePassword(db *gorm.DB, bcryptCost int) gin.HandlerFunc {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dati non validi.")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Password attuale errata.")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la cifratura della password.")
			return
		}

		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
			return
		}

		util.Success(c, util.Response{
			"message": "Password aggiornata, effettua di nuovo il login.",
		})
	}
}

// UploadAvatar stores an uploaded avatar image under a generated name
// and saves the reference on the user.
func UploadAvatar(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		file, err := c.FormFile("avatar")
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Nessun file caricato.")
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		default:
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato immagine non supportato.")
			return
		}

		name := uuid.NewString() + ext
		if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il caricamento.")
			return
		}

		if err := db.Model(user).Update("avatar", name).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante il salvataggio.")
			return
		}
		user.Avatar = name

		util.Success(c, util.Response{
			"message": "Avatar aggiornato.",
			"avatar":  name,
		})
	}
}

// DeleteAccount removes the user row; the foreign key cascades delete
// every expense, income, loan, recurring payment and card (and through
// the cards, their transactions).
func DeleteAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		if err := db.Delete(&models.User{}, user.ID).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante l'eliminazione dell'account.")
			return
		}

		util.Success(c, util.Response{
			"message": "Account eliminato.",
		})
	}
}
