package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/cache"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/dto"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httpresp"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/middleware"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
	ucAppointment "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	updateUC     *ucAppointment.UpdateAppointment
	confirmUC    *ucAppointment.ConfirmAppointment
	completeUC   *ucAppointment.CompleteAppointment
	cancelUC     *ucAppointment.CancelAppointment
	softDeleteUC *ucAppointment.SoftDeleteAppointment
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth

	slots *cache.AvailabilityCache
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	softDeleteUC *ucAppointment.SoftDeleteAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	slots *cache.AvailabilityCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		updateUC:     updateUC,
		confirmUC:    confirmUC,
		completeUC:   completeUC,
		cancelUC:     cancelUC,
		softDeleteUC: softDeleteUC,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		slots:        slots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type VehicleRequest struct {
	LicensePlate string `json:"license_plate" binding:"required"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
}

type CreateAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	MechanicID *uint `json:"mechanic_id"`

	Services []dto.ServiceSelection `json:"services" binding:"required"`

	VehicleID *uint           `json:"vehicle_id"`
	Vehicle   *VehicleRequest `json:"vehicle"`

	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

type UpdateAppointmentRequest struct {
	Date *string `json:"date"`
	Time *string `json:"time"`

	MechanicID *uint `json:"mechanic_id"`

	Services []dto.ServiceSelection `json:"services"`

	Notes         *string `json:"notes"`
	PaymentMethod *string `json:"payment_method"`
}

type ConfirmAppointmentRequest struct {
	MechanicID *uint `json:"mechanic_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid request body.")
		return
	}

	in := ucAppointment.CreateAppointmentInput{
		CustomerID:    principal.UserID,
		MechanicID:    req.MechanicID,
		Date:          req.Date,
		Time:          req.Time,
		Services:      req.Services,
		VehicleID:     req.VehicleID,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	}
	if req.Vehicle != nil {
		in.Vehicle = &ucAppointment.VehicleInput{
			LicensePlate: req.Vehicle.LicensePlate,
			Brand:        req.Vehicle.Brand,
			Model:        req.Vehicle.Model,
			Year:         req.Vehicle.Year,
		}
	}

	out, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateSlots(c, req.Date, req.MechanicID)
	c.JSON(http.StatusCreated, out)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid request body.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		AppointmentID: id,
		Principal:     principal,
		Date:          req.Date,
		Time:          req.Time,
		MechanicID:    req.MechanicID,
		Services:      req.Services,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateForAppointment(c, ap)
	httpresp.OK(c, ap)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	var req ConfirmAppointmentRequest
	_ = c.ShouldBindJSON(&req) // body optional

	ap, err := h.confirmUC.Execute(c.Request.Context(), principal, id, req.MechanicID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateForAppointment(c, ap)
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), principal, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), principal, id)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateForAppointment(c, ap)
	c.JSON(http.StatusOK, gin.H{"canceled": true, "appointment": ap})
}

// ======================================================
// SOFT DELETE / RESTORE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	h.softDelete(c, false)
}

func (h *AppointmentHandler) Restore(c *gin.Context) {
	h.softDelete(c, true)
}

func (h *AppointmentHandler) softDelete(c *gin.Context, restore bool) {
	principal := middleware.PrincipalFrom(c)

	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.softDeleteUC.Execute(c.Request.Context(), principal, id, restore)
	if err != nil {
		writeError(c, err)
		return
	}

	h.invalidateForAppointment(c, ap)
	httpresp.OK(c, ap)
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, httperr.CodeValidationError, "date is required.")
		return
	}

	rows, err := h.listByDate.Execute(c.Request.Context(), principal, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	principal := middleware.PrincipalFrom(c)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, httperr.CodeValidationError, "year and month are required.")
		return
	}

	rows, err := h.listByMonth.Execute(c.Request.Context(), principal, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeValidationError, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func (h *AppointmentHandler) invalidateSlots(c *gin.Context, date string, mechanicID *uint) {
	if day, err := timeparse.Date(date); err == nil {
		h.slots.Invalidate(c.Request.Context(), day.Format(timeparse.DateLayout), mechanicID)
	}
}

func (h *AppointmentHandler) invalidateForAppointment(c *gin.Context, ap *models.Appointment) {
	if ap == nil {
		return
	}
	h.slots.Invalidate(
		c.Request.Context(),
		ap.StartTime.In(timezone.Location()).Format(timeparse.DateLayout),
		ap.MechanicID,
	)
}
