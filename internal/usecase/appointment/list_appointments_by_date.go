package appointment

import (
	"context"
	"time"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/capability"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/dto"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	principal capability.Principal,
	date string,
) ([]dto.AppointmentListDTO, error) {

	day, err := timeparse.Date(date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput)
	}

	filter := scopedFilter(principal)
	filter.Start = day
	filter.End = day.Add(24 * time.Hour)

	appointments, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}

// scopedFilter narrows the listing to what the principal may see:
// admins everything, mechanics their own calendar, customers their own
// bookings.
func scopedFilter(p capability.Principal) domain.ListFilter {
	var f domain.ListFilter
	switch {
	case p.IsAdmin():
	case p.IsMechanic():
		f.MechanicID = &p.UserID
	default:
		f.CustomerID = &p.UserID
	}
	return f
}

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		row := dto.AppointmentListDTO{
			ID:           ap.ID,
			StartTime:    ap.StartTime,
			EndTime:      ap.EstimatedEndTime,
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			LicensePlate: ap.Vehicle.LicensePlate,
		}
		if ap.Mechanic != nil {
			row.MechanicName = ap.Mechanic.Name
		}
		out = append(out, row)
	}
	return out
}
