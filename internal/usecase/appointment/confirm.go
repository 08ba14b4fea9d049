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

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute moves a pending appointment to confirmed. A mechanic may be
// assigned at confirm time; assignment runs the conflict detector and
// derives the blocked calendar in the same transaction.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	principal capability.Principal,
	appointmentID uint,
	mechanicID *uint,
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

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	assigning := false
	if mechanicID != nil &&
		(ap.MechanicID == nil || *ap.MechanicID != *mechanicID) {

		if _, err := uc.repo.GetMechanicByID(ctx, *mechanicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return nil, err
		}
		ap.MechanicID = mechanicID
		assigning = true
	}

	ap.Services = nil

	if err := uc.repo.UpdateBooking(ctx, domain.BookingUpdate{
		Appointment:   ap,
		Reblock:       assigning,
		CheckConflict: assigning,
	}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &principal.UserID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
