package appointment

import (
	"time"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel is idempotent: a second cancel leaves the row untouched and
// reports nothing to persist.
func Cancel(ap *models.Appointment, now time.Time) (changed bool, err error) {
	if Status(ap.Status) == StatusCanceled {
		return false, nil
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(StatusCanceled)
	ap.CanceledAt = &now
	return true, nil
}

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// SoftDelete hides the appointment from listings and availability without
// destroying it; Restore re-exposes it.
func SoftDelete(ap *models.Appointment) {
	ap.IsDeleted = true
}

func Restore(ap *models.Appointment) {
	ap.IsDeleted = false
}

// Reschedule moves the start and keeps the end invariant
// (estimated end = start + total duration).
func Reschedule(ap *models.Appointment, start time.Time) {
	ap.StartTime = start
	ap.EstimatedEndTime = start.Add(time.Duration(ap.TotalDurationMin) * time.Minute)
}

// SetDuration recomputes the estimated end after a service-list edit.
func SetDuration(ap *models.Appointment, durationMin int) {
	ap.TotalDurationMin = durationMin
	ap.EstimatedEndTime = ap.StartTime.Add(time.Duration(durationMin) * time.Minute)
}
