package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/cache"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/capability"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httpresp"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/middleware"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
	ucBlocked "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/usecase/blockedslot"
)

type BlockedSlotHandler struct {
	createUC  *ucBlocked.CreateBlockedSlot
	deleteUC  *ucBlocked.DeleteBlockedSlot
	cleanupUC *ucBlocked.CleanupExpiredBlocks

	slots *cache.AvailabilityCache
}

func NewBlockedSlotHandler(
	createUC *ucBlocked.CreateBlockedSlot,
	deleteUC *ucBlocked.DeleteBlockedSlot,
	cleanupUC *ucBlocked.CleanupExpiredBlocks,
	slots *cache.AvailabilityCache,
) *BlockedSlotHandler {
	return &BlockedSlotHandler{
		createUC:  createUC,
		deleteUC:  deleteUC,
		cleanupUC: cleanupUC,
		slots:     slots,
	}
}

type CreateBlockedSlotRequest struct {
	MechanicID      uint   `json:"mechanic_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
}

func (h *BlockedSlotHandler) Create(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if !capability.CanManageSchedule(principal) {
		httperr.Forbidden(c, httperr.CodeValidationError, "Not allowed to manage the schedule.")
		return
	}

	var req CreateBlockedSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid request body.")
		return
	}

	out, err := h.createUC.Execute(c.Request.Context(), ucBlocked.CreateBlockedSlotInput{
		MechanicID:      req.MechanicID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateSlots(c, req.Date, &req.MechanicID)
	c.JSON(http.StatusCreated, out)
}

func (h *BlockedSlotHandler) Delete(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if !capability.CanManageSchedule(principal) {
		httperr.Forbidden(c, httperr.CodeValidationError, "Not allowed to manage the schedule.")
		return
	}

	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *BlockedSlotHandler) Cleanup(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)
	if !capability.CanManageSchedule(principal) {
		httperr.Forbidden(c, httperr.CodeValidationError, "Not allowed to manage the schedule.")
		return
	}

	out, err := h.cleanupUC.Execute(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *BlockedSlotHandler) invalidateSlots(c *gin.Context, date string, mechanicID *uint) {
	if day, err := timeparse.Date(date); err == nil {
		h.slots.Invalidate(c.Request.Context(), day.Format(timeparse.DateLayout), mechanicID)
	}
}
