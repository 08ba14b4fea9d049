package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Users / catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetMechanicByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var mech models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleMechanic).
		First(&mech).Error; err != nil {
		return nil, err
	}
	return &mech, nil
}

func (r *AppointmentGormRepository) GetServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Vehicle
// --------------------------------------------------

func (r *AppointmentGormRepository) GetVehicleByID(
	ctx context.Context,
	id uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// --------------------------------------------------
// Booking transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateBooking(
	ctx context.Context,
	ap *models.Appointment,
	vehicle *models.Vehicle,
	items []models.AppointmentService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if vehicle != nil {
			if err := resolveVehicle(tx, vehicle); err != nil {
				return err
			}
			ap.VehicleID = vehicle.ID
		}

		if ap.MechanicID != nil {
			// Provisional holds inside the window are about to be claimed
			// by this booking, so they do not count as conflicts here.
			cc, err := r.countConflictsTx(
				tx,
				*ap.MechanicID,
				ap.StartTime,
				ap.EstimatedEndTime,
				0,
				true,
				true,
			)
			if err != nil {
				return err
			}
			if !cc.Available() {
				return httperr.ErrBusiness(httperr.CodeSlotConflict)
			}
		}

		if err := tx.Create(ap).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].AppointmentID = ap.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		if ap.MechanicID != nil {
			// Convert-provisional: attach any hold rows in the window.
			if err := tx.Model(&models.BlockedTimeSlot{}).
				Where(
					"mechanic_id = ? AND appointment_id IS NULL AND slot_time >= ? AND slot_time < ?",
					*ap.MechanicID, ap.StartTime, ap.EstimatedEndTime,
				).
				Update("appointment_id", ap.ID).Error; err != nil {
				return err
			}

			if err := upsertBlockRows(tx, domain.DeriveBlockRows(ap)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AppointmentGormRepository) UpdateBooking(
	ctx context.Context,
	up domain.BookingUpdate,
) error {

	ap := up.Appointment

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if up.CheckConflict && ap.MechanicID != nil {
			cc, err := r.countConflictsTx(
				tx,
				*ap.MechanicID,
				ap.StartTime,
				ap.EstimatedEndTime,
				ap.ID,
				true,
				false,
			)
			if err != nil {
				return err
			}
			if !cc.Available() {
				return httperr.ErrBusiness(httperr.CodeSlotConflict)
			}
		}

		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}

		if up.Services != nil {
			if err := tx.
				Where("appointment_id = ?", ap.ID).
				Delete(&models.AppointmentService{}).Error; err != nil {
				return err
			}
			for i := range up.Services {
				up.Services[i].ID = 0
				up.Services[i].AppointmentID = ap.ID
				if err := tx.Create(&up.Services[i]).Error; err != nil {
					return err
				}
			}
		}

		if up.Reblock || up.DropBlocks {
			if err := tx.
				Where("appointment_id = ?", ap.ID).
				Delete(&models.BlockedTimeSlot{}).Error; err != nil {
				return err
			}
		}

		if up.Reblock {
			if err := upsertBlockRows(tx, domain.DeriveBlockRows(ap)); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Preload("Customer").
		Preload("Vehicle").
		Preload("Mechanic").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Mechanic").
		Where(
			"is_deleted = ? AND start_time >= ? AND start_time < ?",
			false, f.Start, f.End,
		)

	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.MechanicID != nil {
		q = q.Where("mechanic_id = ?", *f.MechanicID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Conflict detection
// --------------------------------------------------

func (r *AppointmentGormRepository) CountConflicts(
	ctx context.Context,
	mechanicID uint,
	start time.Time,
	end time.Time,
	excludeAppointmentID uint,
) (domain.ConflictCount, error) {

	return r.countConflictsTx(
		r.db.WithContext(ctx),
		mechanicID,
		start,
		end,
		excludeAppointmentID,
		false,
		false,
	)
}

// countConflictsTx counts colliding appointments (half-open interval
// intersection, excluding canceled/completed/soft-deleted) and colliding
// blocked rows (instant inside [start, end), blocked flag set). When
// called inside the commit path the conflicting rows are locked.
func (r *AppointmentGormRepository) countConflictsTx(
	tx *gorm.DB,
	mechanicID uint,
	start time.Time,
	end time.Time,
	excludeAppointmentID uint,
	lock bool,
	skipProvisional bool,
) (domain.ConflictCount, error) {

	var out domain.ConflictCount

	apQuery := tx.Model(&models.Appointment{}).
		Where(
			"mechanic_id = ? AND status IN ? AND is_deleted = ? AND start_time < ? AND estimated_end_time > ?",
			mechanicID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			false,
			end,
			start,
		)
	if excludeAppointmentID != 0 {
		apQuery = apQuery.Where("id <> ?", excludeAppointmentID)
	}
	if lock && tx.Dialector.Name() == "postgres" {
		apQuery = apQuery.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := apQuery.Count(&out.Appointments).Error; err != nil {
		return out, err
	}

	blQuery := tx.Model(&models.BlockedTimeSlot{}).
		Where(
			"mechanic_id = ? AND is_blocked = ? AND slot_time >= ? AND slot_time < ?",
			mechanicID, true, start, end,
		)
	if skipProvisional {
		blQuery = blQuery.Where("appointment_id IS NOT NULL")
	}
	if excludeAppointmentID != 0 {
		blQuery = blQuery.Where(
			"appointment_id IS NULL OR appointment_id <> ?",
			excludeAppointmentID,
		)
	}
	if err := blQuery.Count(&out.Blocked).Error; err != nil {
		return out, err
	}

	return out, nil
}

// --------------------------------------------------
// Working hours (read-only view)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingHoursForMechanic(
	ctx context.Context,
	mechanicID uint,
	date string,
) ([]models.WorkingHours, error) {

	// a mechanic may have several non-overlapping windows on one date
	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Preload("Mechanic").
		Where("mechanic_id = ? AND date = ?", mechanicID, date).
		Order("start_time ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *AppointmentGormRepository) ListWorkingHoursForDate(
	ctx context.Context,
	date string,
) ([]models.WorkingHours, error) {

	var hours []models.WorkingHours
	if err := r.db.WithContext(ctx).
		Preload("Mechanic").
		Where("date = ?", date).
		Order("id ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Availability reads
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	mechanicID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"mechanic_id = ? AND status IN ? AND is_deleted = ? AND start_time >= ? AND start_time < ?",
			mechanicID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			false,
			dayStart,
			dayEnd,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) ListBlockedSlotsForDay(
	ctx context.Context,
	mechanicID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.BlockedTimeSlot, error) {

	var rows []models.BlockedTimeSlot
	if err := r.db.WithContext(ctx).
		Where(
			"mechanic_id = ? AND is_blocked = ? AND slot_time >= ? AND slot_time < ?",
			mechanicID, true, dayStart, dayEnd,
		).
		Order("slot_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Blocked-slot maintenance
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateBlockedSlots(
	ctx context.Context,
	rows []models.BlockedTimeSlot,
) error {

	if len(rows) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// any row on the instant occupies it, break markers included:
		// the (mechanic_id, slot_time) unique index would reject the
		// insert anyway, this just keeps the failure a slot_conflict
		for _, row := range rows {
			var count int64
			if err := tx.Model(&models.BlockedTimeSlot{}).
				Where(
					"mechanic_id = ? AND slot_time = ?",
					row.MechanicID, row.SlotTime,
				).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return httperr.ErrBusiness(httperr.CodeSlotConflict)
			}
		}

		for i := range rows {
			// the sweep cutoff is built in the operating timezone; stamp
			// created_at in the same zone so the comparison holds on
			// every dialect
			if rows[i].CreatedAt.IsZero() {
				rows[i].CreatedAt = timezone.Now()
			}
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AppointmentGormRepository) DeleteBlockedSlot(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.BlockedTimeSlot{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteExpiredProvisionalBlocks(
	ctx context.Context,
	before time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where(
			"is_break_time = ? AND appointment_id IS NULL AND created_at < ?",
			true, before,
		).
		Delete(&models.BlockedTimeSlot{})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func resolveVehicle(tx *gorm.DB, vehicle *models.Vehicle) error {
	if vehicle.ID != 0 {
		return tx.First(vehicle, vehicle.ID).Error
	}

	var existing models.Vehicle
	err := tx.
		Where(
			"customer_id = ? AND license_plate = ?",
			vehicle.CustomerID, vehicle.LicensePlate,
		).
		First(&existing).Error

	if err == nil {
		*vehicle = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(vehicle).Error
}

// upsertBlockRows inserts derived rows, overwriting a provisional hold or
// a row the booking already owns on the same (mechanic, slot_time)
// instant. A row owned by another appointment is never reassigned; the
// insert is a no-op there and the instant stays with its owner.
func upsertBlockRows(tx *gorm.DB, rows []models.BlockedTimeSlot) error {
	for i := range rows {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "mechanic_id"}, {Name: "slot_time"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_break_time", "is_blocked", "appointment_id",
			}),
			Where: clause.Where{Exprs: []clause.Expression{clause.Expr{
				SQL:  "blocked_time_slots.appointment_id IS NULL OR blocked_time_slots.appointment_id = ?",
				Vars: []interface{}{rows[i].AppointmentID},
			}}},
		}).Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
