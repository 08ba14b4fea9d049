package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/dto"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timeparse"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type VehicleInput struct {
	LicensePlate string
	Brand        string
	Model        string
	Year         int
}

type CreateAppointmentInput struct {
	CustomerID uint
	MechanicID *uint

	Date string
	Time string

	Services []dto.ServiceSelection

	// One of the two: an existing vehicle, or enough data to create one.
	VehicleID *uint
	Vehicle   *VehicleInput

	Notes         string
	PaymentMethod string
}

type CreateAppointmentOutput struct {
	AppointmentID uint `json:"appointment_id"`
	VehicleID     uint `json:"vehicle_id"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	if in.Date == "" || in.Time == "" || len(in.Services) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}
	if in.VehicleID == nil && in.Vehicle == nil {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	// Creation rejects unparseable date/time outright; only updates fall
	// back to the stored value.
	start, err := timeparse.Instant(in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeMalformedTemporalInput)
	}

	durationMin, err := resolveTotalDuration(ctx, uc.repo, in.Services)
	if err != nil {
		return nil, err
	}

	if in.MechanicID != nil {
		if _, err := uc.repo.GetMechanicByID(ctx, *in.MechanicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return nil, err
		}
	}

	vehicle, err := uc.resolveVehicleInput(ctx, in)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		CustomerID:       in.CustomerID,
		MechanicID:       in.MechanicID,
		StartTime:        start,
		EstimatedEndTime: start.Add(time.Duration(durationMin) * time.Minute),
		TotalDurationMin: durationMin,
		Status:           string(domain.InitialStatus()),
		Notes:            in.Notes,
		PaymentMethod:    in.PaymentMethod,
	}

	items := make([]models.AppointmentService, 0, len(in.Services))
	for _, sel := range in.Services {
		items = append(items, models.AppointmentService{
			ServiceID: sel.ID,
			Quantity:  sel.Quantity,
		})
	}

	if err := uc.repo.CreateBooking(ctx, ap, vehicle, items); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &CreateAppointmentOutput{
		AppointmentID: ap.ID,
		VehicleID:     ap.VehicleID,
	}, nil
}

// resolveTotalDuration resolves the selected services against the catalog
// and sums estimated minutes per quantity.
func resolveTotalDuration(
	ctx context.Context,
	repo domain.Repository,
	selections []dto.ServiceSelection,
) (int, error) {

	ids := make([]uint, 0, len(selections))
	seen := make(map[uint]bool, len(selections))
	for _, sel := range selections {
		if !seen[sel.ID] {
			seen[sel.ID] = true
			ids = append(ids, sel.ID)
		}
	}

	services, err := repo.GetServicesByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if len(services) != len(ids) {
		return 0, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	minutesByID := make(map[uint]int, len(services))
	for _, s := range services {
		minutesByID[s.ID] = s.EstimatedTimeMin
	}

	total := 0
	for _, sel := range selections {
		total += minutesByID[sel.ID] * sel.Quantity
	}
	if total <= 0 {
		return 0, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	return total, nil
}

func (uc *CreateAppointment) resolveVehicleInput(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Vehicle, error) {

	if in.VehicleID != nil {
		vehicle, err := uc.repo.GetVehicleByID(ctx, *in.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrBusiness(httperr.CodeNotFound)
			}
			return nil, err
		}
		return vehicle, nil
	}

	plate := validators.NormalizeLicensePlate(in.Vehicle.LicensePlate)
	if !validators.IsLicensePlateValid(plate) {
		return nil, httperr.ErrBusiness(httperr.CodeValidationError)
	}

	return &models.Vehicle{
		CustomerID:   in.CustomerID,
		LicensePlate: plate,
		Brand:        in.Vehicle.Brand,
		Model:        in.Vehicle.Model,
		Year:         in.Vehicle.Year,
	}, nil
}
