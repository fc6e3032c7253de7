package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Atomiksnip3r04/Gestore-spese/internal/models"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUser returns the authenticated user placed into the context by
// the auth middleware. A false return means the error reply was already
// written.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Devi essere loggato per accedere a questa pagina.")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Devi essere loggato per accedere a questa pagina.")
		return nil, false
	}
	return user, true
}

// owned is any record that belongs to exactly one user.
type owned interface {
	OwnerID() uint
}

// fetchOwned loads a record by id into dest and enforces the ownership
// rule: unknown id -> 404, owned by someone else -> 403. Every edit and
// delete route goes through here.
func fetchOwned(c *gin.Context, db *gorm.DB, dest owned, id int, userID uint) bool {
	if err := db.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Record non trovato.")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Errore durante la ricerca.")
		}
		return false
	}
	if dest.OwnerID() != userID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Non sei autorizzato.")
		return false
	}
	return true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID non valido.")
		return 0, false
	}
	return id, true
}
