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
)

// SoftDeleteAppointment hides or restores an appointment. The row is
// never hard-deleted; a hidden appointment drops out of every listing,
// availability and conflict query but stays recoverable.
type SoftDeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSoftDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SoftDeleteAppointment {
	return &SoftDeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SoftDeleteAppointment) Execute(
	ctx context.Context,
	principal capability.Principal,
	appointmentID uint,
	restore bool,
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

	action := "appointment_deleted"
	if restore {
		domain.Restore(ap)
		action = "appointment_restored"
	} else {
		domain.SoftDelete(ap)
	}

	ap.Services = nil

	// Deleting hides the booking, so its blocked capacity goes with it;
	// restoring re-derives the calendar for the stored window.
	if err := uc.repo.UpdateBooking(ctx, domain.BookingUpdate{
		Appointment: ap,
		DropBlocks:  !restore,
		Reblock:     restore && ap.MechanicID != nil && !isTerminal(ap),
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &principal.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func isTerminal(ap *models.Appointment) bool {
	s := domain.Status(ap.Status)
	return s == domain.StatusCompleted || s == domain.StatusCanceled
}
