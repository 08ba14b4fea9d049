package models

import "time"

// BlockedTimeSlot marks one instant on a mechanic's calendar as occupied.
// Rows come from two producers: the booking transaction derives them when
// an appointment with a mechanic is committed (hour-unit rows plus one
// trailing break marker), and the hold flow inserts provisional rows
// (appointment_id null) that expire if the booking is never completed.
//
// The (mechanic_id, slot_time) unique index is the storage-level guard
// against two concurrent writers blocking the same instant.
type BlockedTimeSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MechanicID uint `gorm:"index:idx_blocked_mechanic_slot,unique" json:"mechanic_id"`
	Mechanic   User `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"mechanic"`

	SlotTime time.Time `gorm:"index:idx_blocked_mechanic_slot,unique" json:"slot_time"`

	// True for the trailing post-service buffer marker and for provisional
	// holds; false for in-service hour rows.
	IsBreakTime bool `gorm:"default:false" json:"is_break_time"`

	// Only rows with is_blocked participate in conflict checks. The
	// trailing break marker is informational. No column default here:
	// gorm skips zero values for defaulted columns, which would turn an
	// explicit false back into true on insert.
	IsBlocked bool `json:"is_blocked"`

	// Null while provisional; attached once the owning appointment exists.
	AppointmentID *uint        `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"appointment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
