package models

import "time"

// Service catalog entry. Owned by the catalog collaborator; the booking
// core only reads estimated_time_min to compute appointment durations.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name             string  `gorm:"size:100;not null" json:"name"`
	Description      string  `gorm:"size:255" json:"description"`
	EstimatedTimeMin int     `json:"estimated_time_min"`
	Price            float64 `json:"price"`
	Active           bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
