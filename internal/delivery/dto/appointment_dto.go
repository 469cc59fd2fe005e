package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        string `json:"doctor_id" validate:"required,uuid"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" validate:"required,datetime=15:04"`
	Notes           string `json:"notes" validate:"omitempty,max=1000"`

	// IdempotencyKey comes from the Idempotency-Key header.
	IdempotencyKey string `json:"-" validate:"omitempty,max=128"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	PatientName    string    `json:"patient_name,omitempty"`
	DoctorName     string    `json:"doctor_name,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Department     string    `json:"department,omitempty"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	StatusCategory string    `json:"status_category"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingOption is one entry of the doctor selector.
type BookingOption struct {
	Value uuid.UUID `json:"value"`
	Label string    `json:"label"`
}

// BookingFormState echoes the form back so a failed submission keeps its input.
type BookingFormState struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Notes           string `json:"notes"`
}

type BookingResult struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Form        BookingFormState     `json:"form"`
	Replayed    bool                 `json:"replayed,omitempty"`
}
