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

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
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

	if err := domain.Complete(ap, timezone.Now()); err != nil {
		return nil, err
	}

	ap.Services = nil

	if err := uc.repo.UpdateBooking(ctx, domain.BookingUpdate{
		Appointment: ap,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &principal.UserID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
