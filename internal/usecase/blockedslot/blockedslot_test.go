package blockedslot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/audit"
	dbpkg "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/db"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	infraRepo "github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/infra/repository"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/timezone"
)

func setup(t *testing.T) (*gorm.DB, *infraRepo.AppointmentGormRepository, *audit.Dispatcher, models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	mechanic := models.User{Name: "Tuan", Role: models.RoleMechanic, Email: "tuan@example.com"}
	require.NoError(t, db.Create(&mechanic).Error)

	return db, infraRepo.NewAppointmentGormRepository(db), audit.NewDispatcher(audit.New(db)), mechanic
}

func TestCreateBlockedSlotHold(t *testing.T) {
	db, repo, dispatcher, mechanic := setup(t)
	uc := NewCreateBlockedSlot(repo, dispatcher)

	out, err := uc.Execute(context.Background(), CreateBlockedSlotInput{
		MechanicID:      mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	assert.NotZero(t, out.BlockedID)

	var rows []models.BlockedTimeSlot
	require.NoError(t, db.Order("slot_time ASC").Find(&rows).Error)
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.True(t, row.IsBlocked)
		assert.True(t, row.IsBreakTime)
		assert.Nil(t, row.AppointmentID)
	}
}

func TestCreateBlockedSlotValidation(t *testing.T) {
	_, repo, dispatcher, mechanic := setup(t)
	uc := NewCreateBlockedSlot(repo, dispatcher)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateBlockedSlotInput{
		MechanicID:      mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 0,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidationError))

	_, err = uc.Execute(ctx, CreateBlockedSlotInput{
		MechanicID:      9999,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 60,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))

	_, err = uc.Execute(ctx, CreateBlockedSlotInput{
		MechanicID:      mechanic.ID,
		Date:            "someday",
		StartTime:       "09:00",
		DurationMinutes: 60,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeMalformedTemporalInput))
}

func TestDeleteBlockedSlotByID(t *testing.T) {
	_, repo, dispatcher, mechanic := setup(t)
	ctx := context.Background()

	out, err := NewCreateBlockedSlot(repo, dispatcher).Execute(ctx, CreateBlockedSlotInput{
		MechanicID:      mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "09:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	uc := NewDeleteBlockedSlot(repo, dispatcher)
	require.NoError(t, uc.Execute(ctx, out.BlockedID))

	err = uc.Execute(ctx, out.BlockedID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCleanupSweepsOnlyExpiredHolds(t *testing.T) {
	db, repo, dispatcher, mechanic := setup(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, timezone.Location())
	stale := models.BlockedTimeSlot{
		MechanicID:  mechanic.ID,
		SlotTime:    start,
		IsBreakTime: true,
		IsBlocked:   true,
		CreatedAt:   timezone.Now().Add(-2 * ProvisionalGracePeriod),
	}
	require.NoError(t, db.Create(&stale).Error)

	_, err := NewCreateBlockedSlot(repo, dispatcher).Execute(ctx, CreateBlockedSlotInput{
		MechanicID:      mechanic.ID,
		Date:            "2024-06-01",
		StartTime:       "14:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	out, err := NewCleanupExpiredBlocks(repo, dispatcher).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.DeletedCount)

	var remaining int64
	require.NoError(t, db.Model(&models.BlockedTimeSlot{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	// a second sweep finds nothing
	out, err = NewCleanupExpiredBlocks(repo, dispatcher).Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, out.DeletedCount)
}
