package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AppointmentStatus represents the lifecycle of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is a patient visit booked with one doctor
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate datatypes.Date    `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime datatypes.Time    `gorm:"type:time;not null" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Patient *Profile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Day returns the appointment date as YYYY-MM-DD.
func (a *Appointment) Day() string {
	return FormatDate(a.AppointmentDate)
}

// StartsAt combines date and time in loc.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return CombineDateTime(a.AppointmentDate, a.AppointmentTime, loc)
}
