package models

import "time"

type Vehicle struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index:idx_vehicles_customer_plate,unique" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	LicensePlate string `gorm:"size:20;not null;index:idx_vehicles_customer_plate,unique" json:"license_plate"`
	Brand        string `gorm:"size:50" json:"brand"`
	Model        string `gorm:"size:50" json:"model"`
	Year         int    `json:"year"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
