package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/httperr"
	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
)

func TestStatusTransitions(t *testing.T) {
	assert.NoError(t, CanConfirm(StatusPending))
	assert.Error(t, CanConfirm(StatusConfirmed))
	assert.Error(t, CanConfirm(StatusCompleted))
	assert.Error(t, CanConfirm(StatusCanceled))

	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.Error(t, CanComplete(StatusPending))
	assert.Error(t, CanComplete(StatusCompleted))

	assert.NoError(t, CanCancel(StatusPending))
	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.Error(t, CanCancel(StatusCompleted))
}

func TestCancelIsIdempotent(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusPending)}

	changed, err := Cancel(ap, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusCanceled), ap.Status)
	require.NotNil(t, ap.CanceledAt)
	firstCancel := *ap.CanceledAt

	changed, err = Cancel(ap, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, firstCancel, *ap.CanceledAt)
}

func TestCancelCompletedRejected(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusCompleted)}

	_, err := Cancel(ap, time.Now())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestRescheduleKeepsEndInvariant(t *testing.T) {
	ap := &models.Appointment{TotalDurationMin: 90}

	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	Reschedule(ap, start)

	assert.True(t, ap.EstimatedEndTime.Equal(start.Add(90*time.Minute)))

	SetDuration(ap, 130)
	assert.Equal(t, 130, ap.TotalDurationMin)
	assert.True(t, ap.EstimatedEndTime.Equal(start.Add(130*time.Minute)))
}
