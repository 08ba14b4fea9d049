package appointment

import (
	"time"

	"github.com/VoMinhQuanC/Backend-webSuaxe-sub000/internal/models"
)

// Width of the booking grid. Working-hours windows are cut into slots of
// this size and blocked rows are derived per grid unit.
const DefaultSlotMinutes = 60

const (
	SlotAvailable = "available"
	SlotBooked    = "booked"
)

// SlotEntry is one row of the availability read path.
type SlotEntry struct {
	Time         string `json:"time"`
	MechanicID   uint   `json:"mechanic_id"`
	MechanicName string `json:"mechanic_name"`
	Status       string `json:"status"`
}

// SlotGrid returns the ordered slot start times covering [start, end):
// first slot at start, spaced width apart, and no slot whose end would
// pass the window end.
func SlotGrid(start, end time.Time, width time.Duration) []time.Time {
	var slots []time.Time
	for cur := start; !cur.Add(width).After(end); cur = cur.Add(width) {
		slots = append(slots, cur)
	}
	return slots
}

// Overlaps reports half-open interval intersection: touching endpoints do
// not collide.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DeriveBlockRows materializes the blocked calendar for a committed
// appointment. The first grid unit is occupied by the appointment row
// itself; every further hour unit the service spills into gets a blocking
// row, and one non-blocking break marker lands exactly at start+duration.
// Nil when no mechanic is assigned.
func DeriveBlockRows(ap *models.Appointment) []models.BlockedTimeSlot {
	if ap.MechanicID == nil {
		return nil
	}

	width := DefaultSlotMinutes * time.Minute
	duration := time.Duration(ap.TotalDurationMin) * time.Minute

	units := int((duration + width - 1) / width) // grid units the service touches
	rows := make([]models.BlockedTimeSlot, 0, units)

	for i := 1; i < units; i++ {
		rows = append(rows, models.BlockedTimeSlot{
			MechanicID:    *ap.MechanicID,
			SlotTime:      ap.StartTime.Add(time.Duration(i) * width),
			IsBreakTime:   false,
			IsBlocked:     true,
			AppointmentID: &ap.ID,
		})
	}

	rows = append(rows, models.BlockedTimeSlot{
		MechanicID:    *ap.MechanicID,
		SlotTime:      ap.StartTime.Add(duration),
		IsBreakTime:   true,
		IsBlocked:     false,
		AppointmentID: &ap.ID,
	})

	return rows
}

// HoldRows builds the provisional hold covering [start, start+duration):
// one blocking row per grid unit, owned by no appointment yet, reclaimed
// by the expiry sweep if never attached.
func HoldRows(mechanicID uint, start time.Time, durationMin int) []models.BlockedTimeSlot {
	width := DefaultSlotMinutes * time.Minute
	duration := time.Duration(durationMin) * time.Minute

	units := int((duration + width - 1) / width)
	if units < 1 {
		units = 1
	}

	rows := make([]models.BlockedTimeSlot, 0, units)
	for i := 0; i < units; i++ {
		rows = append(rows, models.BlockedTimeSlot{
			MechanicID:  mechanicID,
			SlotTime:    start.Add(time.Duration(i) * width),
			IsBreakTime: true,
			IsBlocked:   true,
		})
	}
	return rows
}
