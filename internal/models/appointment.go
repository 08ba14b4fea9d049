package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	VehicleID uint    `json:"vehicle_id"`
	Vehicle   Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle"`

	// Nullable until a mechanic is assigned.
	MechanicID *uint `json:"mechanic_id"`
	Mechanic   *User `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mechanic"`

	StartTime        time.Time `json:"start_time"`
	EstimatedEndTime time.Time `json:"estimated_end_time"`
	TotalDurationMin int       `json:"total_duration_min"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Notes         string `gorm:"size:255" json:"notes"`
	PaymentMethod string `gorm:"size:30" json:"payment_method"`

	IsDeleted bool `gorm:"default:false" json:"is_deleted"`

	Services []AppointmentService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is a booked line item: one catalog service and how
// many units of it the appointment includes.
type AppointmentService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int `gorm:"default:1" json:"quantity"`
}
