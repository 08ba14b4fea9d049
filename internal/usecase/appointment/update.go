package appointment

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/capability"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/dto"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
)

type UpdateAppointmentInput struct {
	AppointmentID uint
	Principal     capability.Principal

	Date *string
	Time *string

	MechanicID *uint

	// nil keeps the stored line items; non-nil replaces them.
	Services []dto.ServiceSelection

	Notes         *string
	PaymentMethod *string
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if !capability.CanManage(in.Principal, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	timeChanged := uc.applySchedule(ap, in)

	mechanicChanged := false
	if in.MechanicID != nil &&
		(ap.MechanicID == nil || *ap.MechanicID != *in.MechanicID) {

		if _, err := uc.repo.GetMechanicByID(ctx, *in.MechanicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return nil, err
		}
		ap.MechanicID = in.MechanicID
		mechanicChanged = true
	}

	var items []models.AppointmentService
	durationChanged := false
	if in.Services != nil {
		durationMin, err := resolveTotalDuration(ctx, uc.repo, in.Services)
		if err != nil {
			return nil, err
		}
		if durationMin != ap.TotalDurationMin {
			durationChanged = true
		}
		domain.SetDuration(ap, durationMin)

		items = make([]models.AppointmentService, 0, len(in.Services))
		for _, sel := range in.Services {
			items = append(items, models.AppointmentService{
				ServiceID: sel.ID,
				Quantity:  sel.Quantity,
			})
		}
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}
	if in.PaymentMethod != nil {
		ap.PaymentMethod = *in.PaymentMethod
	}

	ap.Services = nil

	// Any edit that moves or resizes the window re-runs the conflict
	// detector; the original flow trusted the caller here, which allowed
	// silent double-booking via edit. A longer service list extends the
	// window just like a moved start does.
	checkConflict := timeChanged || mechanicChanged || durationChanged
	reblock := ap.MechanicID != nil &&
		(timeChanged || mechanicChanged || durationChanged)

	if err := uc.repo.UpdateBooking(ctx, domain.BookingUpdate{
		Appointment:   ap,
		Services:      items,
		Reblock:       reblock,
		CheckConflict: checkConflict,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Principal.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointmentByID(ctx, ap.ID)
}

// applySchedule normalizes an incoming date/time pair. Unrecognized
// values fall back to the stored schedule with a warning instead of
// failing the whole update.
func (uc *UpdateAppointment) applySchedule(
	ap *models.Appointment,
	in UpdateAppointmentInput,
) (changed bool) {

	if in.Date == nil && in.Time == nil {
		return false
	}

	dateStr := ap.StartTime.Format(timeparse.DateLayout)
	clockStr := ap.StartTime.Format(timeparse.ClockLayout)
	if in.Date != nil {
		dateStr = *in.Date
	}
	if in.Time != nil {
		clockStr = *in.Time
	}

	start, err := timeparse.Instant(dateStr, clockStr)
	if err != nil {
		log.Printf(
			"appointment %d: unrecognized date/time %q %q, keeping stored schedule",
			ap.ID, dateStr, clockStr,
		)
		return false
	}

	if start.Equal(ap.StartTime) {
		return false
	}

	domain.Reschedule(ap, start)
	return true
}
