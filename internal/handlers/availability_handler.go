package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/cache"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httpresp"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
	ucAppointment "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availabilityUC *ucAppointment.GetAvailability
	checkSlotUC    *ucAppointment.CheckSlot
	slots          *cache.AvailabilityCache
}

func NewAvailabilityHandler(
	availabilityUC *ucAppointment.GetAvailability,
	checkSlotUC *ucAppointment.CheckSlot,
	slots *cache.AvailabilityCache,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUC: availabilityUC,
		checkSlotUC:    checkSlotUC,
		slots:          slots,
	}
}

// AvailableSlots renders the bookable grid for a date, optionally for a
// single mechanic. Served from the redis cache when fresh.
func (h *AvailabilityHandler) AvailableSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, httperr.CodeValidationError, "date is required.")
		return
	}

	var mechanicID *uint
	if raw := c.Query("mechanic_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, httperr.CodeValidationError, "Invalid mechanic_id.")
			return
		}
		v := uint(id)
		mechanicID = &v
	}

	// canonical date keys the cache so invalidation lines up with writes
	day, err := timeparse.Date(date)
	if err != nil {
		writeError(c, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput))
		return
	}
	date = day.Format(timeparse.DateLayout)

	ctx := c.Request.Context()

	if entries, ok := h.slots.Get(ctx, date, mechanicID); ok {
		httpresp.List(c, entries)
		return
	}

	entries, err := h.availabilityUC.Execute(ctx, date, mechanicID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.slots.Set(ctx, date, mechanicID, entries)
	httpresp.List(c, entries)
}

func (h *AvailabilityHandler) CheckSlot(c *gin.Context) {
	mechanicRaw := c.Query("mechanic_id")
	date := c.Query("date")
	startTime := c.Query("start_time")
	durationRaw := c.Query("duration")

	if mechanicRaw == "" || date == "" || startTime == "" || durationRaw == "" {
		httperr.BadRequest(c, httperr.CodeValidationError, "mechanic_id, date, start_time and duration are required.")
		return
	}

	mechanicID, err := strconv.ParseUint(mechanicRaw, 10, 64)
	if err != nil || mechanicID == 0 {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid mechanic_id.")
		return
	}

	duration, err := strconv.Atoi(durationRaw)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid duration.")
		return
	}

	out, err := h.checkSlotUC.Execute(c.Request.Context(), ucAppointment.CheckSlotInput{
		MechanicID:      uint(mechanicID),
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}
