package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/capability"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	principal capability.Principal,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if !capability.CanManage(principal, ap) {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	changed, err := domain.Cancel(ap, timezone.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		// already canceled: idempotent success, nothing to persist
		return ap, nil
	}

	ap.Services = nil

	// Capacity is reclaimed eagerly: the sweep only targets provisional
	// rows and would never release a confirmed booking's blocks.
	if err := uc.repo.UpdateBooking(ctx, domain.BookingUpdate{
		Appointment: ap,
		DropBlocks:  true,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &principal.UserID,
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
