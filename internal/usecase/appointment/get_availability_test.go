package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	dbpkg "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/db"
	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/dto"
	infraRepo "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/infra/repository"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
)

type testEnv struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher

	customer models.User
	mechanic models.User
	vehicle  models.Vehicle
	service  models.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	env := &testEnv{
		db:    db,
		repo:  infraRepo.NewAppointmentGormRepository(db),
		audit: audit.NewDispatcher(audit.New(db)),

		customer: models.User{Name: "Minh", Role: models.RoleCustomer, Email: "minh@example.com"},
		mechanic: models.User{Name: "Tuan", Role: models.RoleMechanic, Email: "tuan@example.com"},
	}
	require.NoError(t, db.Create(&env.customer).Error)
	require.NoError(t, db.Create(&env.mechanic).Error)

	env.vehicle = models.Vehicle{
		CustomerID:   env.customer.ID,
		LicensePlate: "51F-123.45",
	}
	require.NoError(t, db.Create(&env.vehicle).Error)

	env.service = models.Service{Name: "Oil change", EstimatedTimeMin: 60, Active: true}
	require.NoError(t, db.Create(&env.service).Error)

	return env
}

func (env *testEnv) addWorkingHours(t *testing.T, date, start, end string) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.WorkingHours{
		MechanicID: env.mechanic.ID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}).Error)
}

func (env *testEnv) book(t *testing.T, date, clock string) uint {
	t.Helper()

	uc := NewCreateAppointment(env.repo, env.audit)
	out, err := uc.Execute(context.Background(), CreateAppointmentInput{
		CustomerID: env.customer.ID,
		MechanicID: &env.mechanic.ID,
		Date:       date,
		Time:       clock,
		Services:   []dto.ServiceSelection{{ID: env.service.ID, Quantity: 1}},
		VehicleID:  &env.vehicle.ID,
	})
	require.NoError(t, err)
	return out.AppointmentID
}

func slotByTime(entries []domain.SlotEntry, clock string) (domain.SlotEntry, bool) {
	for _, e := range entries {
		if e.Time == clock {
			return e, true
		}
	}
	return domain.SlotEntry{}, false
}

func TestGetAvailabilityEmptyDate(t *testing.T) {
	env := newTestEnv(t)
	uc := NewGetAvailability(env.repo)

	entries, err := uc.Execute(context.Background(), "2024-06-01", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = uc.Execute(context.Background(), "2024-06-01", &env.mechanic.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetAvailabilityWindow(t *testing.T) {
	env := newTestEnv(t)
	env.addWorkingHours(t, "2024-06-01", "08:00", "12:00")

	uc := NewGetAvailability(env.repo)

	entries, err := uc.Execute(context.Background(), "2024-06-01", nil)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for i, want := range []string{"08:00", "09:00", "10:00", "11:00"} {
		assert.Equal(t, want, entries[i].Time)
		assert.Equal(t, domain.SlotAvailable, entries[i].Status)
		assert.Equal(t, env.mechanic.ID, entries[i].MechanicID)
		assert.Equal(t, env.mechanic.Name, entries[i].MechanicName)
	}
}

func TestGetAvailabilityAfterBooking(t *testing.T) {
	env := newTestEnv(t)
	env.addWorkingHours(t, "2024-06-01", "08:00", "12:00")
	env.book(t, "2024-06-01", "09:00")

	uc := NewGetAvailability(env.repo)

	entries, err := uc.Execute(context.Background(), "2024-06-01", &env.mechanic.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	booked, ok := slotByTime(entries, "09:00")
	require.True(t, ok)
	assert.Equal(t, domain.SlotBooked, booked.Status)

	// a one-hour booking releases the very next slot
	for _, clock := range []string{"08:00", "10:00", "11:00"} {
		slot, ok := slotByTime(entries, clock)
		require.True(t, ok)
		assert.Equal(t, domain.SlotAvailable, slot.Status, clock)
	}
}

func TestGetAvailabilityMechanicSplitShift(t *testing.T) {
	env := newTestEnv(t)
	env.addWorkingHours(t, "2024-06-01", "08:00", "10:00")
	env.addWorkingHours(t, "2024-06-01", "13:00", "15:00")

	uc := NewGetAvailability(env.repo)

	// both windows of a split shift show up on the filtered path
	entries, err := uc.Execute(context.Background(), "2024-06-01", &env.mechanic.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for i, want := range []string{"08:00", "09:00", "13:00", "14:00"} {
		assert.Equal(t, want, entries[i].Time)
		assert.Equal(t, domain.SlotAvailable, entries[i].Status)
	}
}

func TestGetAvailabilitySkipsOnLeave(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Create(&models.WorkingHours{
		MechanicID: env.mechanic.ID,
		Date:       "2024-06-01",
		StartTime:  "08:00",
		EndTime:    "12:00",
		OnLeave:    true,
	}).Error)

	uc := NewGetAvailability(env.repo)

	entries, err := uc.Execute(context.Background(), "2024-06-01", nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetAvailabilityMalformedDate(t *testing.T) {
	env := newTestEnv(t)
	uc := NewGetAvailability(env.repo)

	_, err := uc.Execute(context.Background(), "June 1st", nil)
	require.Error(t, err)
}

func TestCheckSlotCountsConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.addWorkingHours(t, "2024-06-01", "08:00", "12:00")
	env.book(t, "2024-06-01", "09:00")

	uc := NewCheckSlot(env.repo)

	out, err := uc.Execute(context.Background(), CheckSlotInput{
		MechanicID:      env.mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Equal(t, int64(1), out.AppointmentsCount)

	out, err = uc.Execute(context.Background(), CheckSlotInput{
		MechanicID:      env.mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "10:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.True(t, out.Available)
}

func TestCheckSlotRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCheckSlot(env.repo)

	_, err := uc.Execute(context.Background(), CheckSlotInput{
		MechanicID:      env.mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 0,
	})
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), CheckSlotInput{
		MechanicID:      env.mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "late morning",
		DurationMinutes: 60,
	})
	require.Error(t, err)
}
