package appointment

import (
	"context"
	"time"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
)

// ConflictCount is the conflict detector's verdict for one proposed
// (mechanic, start, end) window.
type ConflictCount struct {
	Appointments int64 `json:"appointments_count"`
	Blocked      int64 `json:"blocked_count"`
}

func (c ConflictCount) Available() bool {
	return c.Appointments == 0 && c.Blocked == 0
}

// BookingUpdate describes one transactional mutation of an existing
// appointment. Everything set here persists atomically or not at all.
type BookingUpdate struct {
	Appointment *models.Appointment

	// Replacement line items; nil keeps the stored list.
	Services []models.AppointmentService

	// Re-derive the blocked calendar for the (possibly moved) window.
	Reblock bool

	// Drop every blocked row owned by the appointment (cancel path).
	DropBlocks bool

	// Re-run the conflict detector against the appointment's window,
	// excluding the appointment itself.
	CheckConflict bool
}

// ListFilter narrows appointment listings to one principal's view.
type ListFilter struct {
	CustomerID *uint
	MechanicID *uint
	Start      time.Time
	End        time.Time
}

type Repository interface {
	// -------- Users / catalog --------
	GetMechanicByID(ctx context.Context, id uint) (*models.User, error)

	GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error)

	// -------- Vehicle --------
	GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error)

	// -------- Booking transaction --------
	// CreateBooking runs the whole create sequence in one transaction:
	// vehicle resolution (vehicle.ID == 0 means create), provisional-hold
	// claim, locked conflict check, appointment + line-item inserts and
	// blocked-row derivation. Any failure rolls back everything.
	CreateBooking(
		ctx context.Context,
		ap *models.Appointment,
		vehicle *models.Vehicle,
		items []models.AppointmentService,
	) error

	UpdateBooking(ctx context.Context, up BookingUpdate) error

	GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error)

	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)

	// -------- Conflict detection (advisory, outside any transaction) --------
	CountConflicts(
		ctx context.Context,
		mechanicID uint,
		start time.Time,
		end time.Time,
		excludeAppointmentID uint,
	) (ConflictCount, error)

	// -------- Working hours (read-only) --------
	ListWorkingHoursForMechanic(ctx context.Context, mechanicID uint, date string) ([]models.WorkingHours, error)

	ListWorkingHoursForDate(ctx context.Context, date string) ([]models.WorkingHours, error)

	// -------- Availability reads --------
	ListAppointmentsForDay(
		ctx context.Context,
		mechanicID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListBlockedSlotsForDay(
		ctx context.Context,
		mechanicID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.BlockedTimeSlot, error)

	// -------- Blocked-slot maintenance --------
	CreateBlockedSlots(ctx context.Context, rows []models.BlockedTimeSlot) error

	DeleteBlockedSlot(ctx context.Context, id uint) error

	DeleteExpiredProvisionalBlocks(ctx context.Context, before time.Time) (int64, error)
}
