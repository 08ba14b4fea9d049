package models

import "time"

// WorkingHours declares a mechanic's availability window for one calendar
// date. Rows are written by the scheduling-administration service; the
// booking core only reads them.
type WorkingHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MechanicID uint `gorm:"index:idx_working_hours_day" json:"mechanic_id"`
	Mechanic   User `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"mechanic"`

	// Civil date in the operating timezone, YYYY-MM-DD.
	Date string `gorm:"size:10;index:idx_working_hours_day" json:"date"`

	StartTime string `gorm:"size:5" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`   // HH:MM
	OnLeave   bool   `gorm:"default:false" json:"on_leave"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
