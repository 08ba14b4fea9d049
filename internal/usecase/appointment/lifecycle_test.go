package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/appointment"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/domain/capability"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/dto"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
)

func (env *testEnv) asCustomer() capability.Principal {
	return capability.Principal{UserID: env.customer.ID, Role: models.RoleCustomer}
}

func TestConfirmThenComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.book(t, "2024-06-01", "09:00")

	confirmUC := NewConfirmAppointment(env.repo, env.audit)
	completeUC := NewCompleteAppointment(env.repo, env.audit)

	ap, err := confirmUC.Execute(ctx, env.asCustomer(), id, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)

	// confirming again is an invalid transition
	_, err = confirmUC.Execute(ctx, env.asCustomer(), id, nil)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	ap, err = completeUC.Execute(ctx, env.asCustomer(), id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCompletePendingRejected(t *testing.T) {
	env := newTestEnv(t)
	id := env.book(t, "2024-06-01", "09:00")

	uc := NewCompleteAppointment(env.repo, env.audit)

	_, err := uc.Execute(context.Background(), env.asCustomer(), id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCancelReleasesCapacity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.book(t, "2024-06-01", "09:00")

	cancelUC := NewCancelAppointment(env.repo, env.audit)

	ap, err := cancelUC.Execute(ctx, env.asCustomer(), id)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), ap.Status)
	require.NotNil(t, ap.CanceledAt)
	firstCancel := *ap.CanceledAt

	// the freed window books again immediately
	checkUC := NewCheckSlot(env.repo)
	out, err := checkUC.Execute(ctx, CheckSlotInput{
		MechanicID:      env.mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.True(t, out.Available)

	var blocks int64
	require.NoError(t, env.db.Model(&models.BlockedTimeSlot{}).
		Where("appointment_id = ?", id).Count(&blocks).Error)
	assert.Zero(t, blocks)

	// canceling again succeeds without touching the first timestamp
	ap, err = cancelUC.Execute(ctx, env.asCustomer(), id)
	require.NoError(t, err)
	require.NotNil(t, ap.CanceledAt)
	assert.True(t, firstCancel.Equal(*ap.CanceledAt))
}

func TestCancelCompletedRejectedByUsecase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.book(t, "2024-06-01", "09:00")

	_, err := NewConfirmAppointment(env.repo, env.audit).Execute(ctx, env.asCustomer(), id, nil)
	require.NoError(t, err)
	_, err = NewCompleteAppointment(env.repo, env.audit).Execute(ctx, env.asCustomer(), id)
	require.NoError(t, err)

	_, err = NewCancelAppointment(env.repo, env.audit).Execute(ctx, env.asCustomer(), id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestMutationsHiddenFromStrangers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.book(t, "2024-06-01", "09:00")

	stranger := capability.Principal{UserID: 9999, Role: models.RoleCustomer}

	_, err := NewCancelAppointment(env.repo, env.audit).Execute(ctx, stranger, id)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = NewConfirmAppointment(env.repo, env.audit).Execute(ctx, stranger, id, nil)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestUpdateRejectsMoveOntoOccupiedSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.book(t, "2024-06-01", "09:00")
	second := env.book(t, "2024-06-01", "14:00")

	uc := NewUpdateAppointment(env.repo, env.audit)

	date := "2024-06-01"
	clock := "09:30"
	_, err := uc.Execute(ctx, UpdateAppointmentInput{
		AppointmentID: second,
		Principal:     env.asCustomer(),
		Date:          &date,
		Time:          &clock,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))

	// the failed move leaves the stored schedule untouched
	ap, err := env.repo.GetAppointmentByID(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "14:00", ap.StartTime.Format("15:04"))
}

func TestUpdateLongerServiceListRechecksConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.book(t, "2024-06-01", "09:00")

	long := models.Service{Name: "Engine overhaul", EstimatedTimeMin: 130, Active: true}
	require.NoError(t, env.db.Create(&long).Error)

	// neighbor occupies 10:00-12:10 with blocking rows at 11:00 and 12:00
	createUC := NewCreateAppointment(env.repo, env.audit)
	out, err := createUC.Execute(ctx, CreateAppointmentInput{
		CustomerID: env.customer.ID,
		MechanicID: &env.mechanic.ID,
		Date:       "2024-06-01",
		Time:       "10:00",
		Services:   []dto.ServiceSelection{{ID: long.ID, Quantity: 1}},
		VehicleID:  &env.vehicle.ID,
	})
	require.NoError(t, err)

	// extending the 09:00 booking to 130 minutes would run into the
	// neighbor; the edit is rejected, not absorbed
	uc := NewUpdateAppointment(env.repo, env.audit)
	_, err = uc.Execute(ctx, UpdateAppointmentInput{
		AppointmentID: first,
		Principal:     env.asCustomer(),
		Services:      []dto.ServiceSelection{{ID: long.ID, Quantity: 1}},
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))

	// the neighbor keeps every one of its rows
	var stolen int64
	require.NoError(t, env.db.Model(&models.BlockedTimeSlot{}).
		Where("appointment_id = ?", out.AppointmentID).
		Count(&stolen).Error)
	assert.Equal(t, int64(3), stolen)

	ap, err := env.repo.GetAppointmentByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 60, ap.TotalDurationMin)
}

func TestUpdateMalformedTimeKeepsStoredSchedule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.book(t, "2024-06-01", "09:00")

	uc := NewUpdateAppointment(env.repo, env.audit)

	clock := "quarter past nine"
	notes := "customer called"
	ap, err := uc.Execute(ctx, UpdateAppointmentInput{
		AppointmentID: id,
		Principal:     env.asCustomer(),
		Time:          &clock,
		Notes:         &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "09:00", ap.StartTime.Format("15:04"))
	assert.Equal(t, notes, ap.Notes)
}

func TestUpdateReplacesServicesAndDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.book(t, "2024-06-01", "09:00")

	other := models.Service{Name: "Full service", EstimatedTimeMin: 130, Active: true}
	require.NoError(t, env.db.Create(&other).Error)

	uc := NewUpdateAppointment(env.repo, env.audit)

	ap, err := uc.Execute(ctx, UpdateAppointmentInput{
		AppointmentID: id,
		Principal:     env.asCustomer(),
		Services:      []dto.ServiceSelection{{ID: other.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, 130, ap.TotalDurationMin)
	assert.True(t, ap.EstimatedEndTime.Equal(ap.StartTime.Add(130*time.Minute)))

	// the longer window re-derives its blocked calendar
	var blocked int64
	require.NoError(t, env.db.Model(&models.BlockedTimeSlot{}).
		Where("appointment_id = ? AND is_blocked = ?", id, true).
		Count(&blocked).Error)
	assert.Equal(t, int64(2), blocked)
}
