package dto

import "toutouchic-api/modules/appointment/entity"

// CreateAppointmentRequest is the public booking payload.
type CreateAppointmentRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Dog          string `json:"dog"`
	Service      string `json:"service"`
	Notes        string `json:"notes,omitempty"`
	StartInstant string `json:"startInstant"` // RFC3339
}

// AvailabilityResponse lists the occupied start instants for a date.
type AvailabilityResponse struct {
	Date          string   `json:"date"`
	OccupiedSlots []string `json:"occupiedSlots"` // RFC3339
}

// AppointmentListResponse is the administrative listing.
type AppointmentListResponse struct {
	Appointments []entity.Appointment `json:"appointments"`
	Total        int                  `json:"total"`
}
