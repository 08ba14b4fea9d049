package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"estimated_end_time"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	LicensePlate string    `json:"license_plate"`
	MechanicName string    `json:"mechanic_name,omitempty"`
}
