package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
)

// WorkingHoursHandler is a read-only view over the schedule the
// scheduling-administration service maintains. The booking core never
// writes these rows.
type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

func (h *WorkingHoursHandler) GetForMechanic(c *gin.Context) {
	mechanicID, ok := paramID(c)
	if !ok {
		return
	}

	q := h.db.Where("mechanic_id = ?", mechanicID)

	if raw := c.Query("date"); raw != "" {
		day, err := timeparse.Date(raw)
		if err != nil {
			writeError(c, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput))
			return
		}
		q = q.Where("date = ?", day.Format(timeparse.DateLayout))
	}

	var hours []models.WorkingHours
	if err := q.Order("date ASC").Find(&hours).Error; err != nil {
		httperr.Internal(c, httperr.CodeStorageFailure, "Could not load working hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}
