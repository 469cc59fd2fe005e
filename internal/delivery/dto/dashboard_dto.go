package dto

import (
	"time"

	"github.com/google/uuid"
)

// Section wraps one list on a dashboard. Total counts every row the query
// returned even when Items is truncated. LoadError separates a failed
// query from an empty one.
type Section[T any] struct {
	Items     []T    `json:"items"`
	Total     int    `json:"total"`
	LoadError string `json:"load_error,omitempty"`
	Stale     bool   `json:"stale,omitempty"`
	Loading   bool   `json:"loading,omitempty"`
	Disabled  bool   `json:"disabled,omitempty"`
}

type StatResponse struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type ViewerResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type DashboardResponse struct {
	Role   string         `json:"role"`
	Title  string         `json:"title"`
	Viewer ViewerResponse `json:"viewer"`
	Stale  bool           `json:"stale,omitempty"`
	Stats  []StatResponse `json:"stats"`

	Patient       *PatientDashboard `json:"patient,omitempty"`
	Doctor        *DoctorDashboard  `json:"doctor,omitempty"`
	Nurse         *NurseDashboard   `json:"nurse,omitempty"`
	Administrator *AdminDashboard   `json:"administrator,omitempty"`
}

type PatientDashboard struct {
	AvailableDoctors Section[DoctorResponse]      `json:"available_doctors"`
	Appointments     Section[AppointmentResponse] `json:"appointments"`
	DoctorOptions    []BookingOption              `json:"doctor_options"`
	BookingForm      BookingFormState             `json:"booking_form"`
}

type DoctorDashboard struct {
	Doctor        *DoctorResponse               `json:"doctor,omitempty"`
	DoctorError   string                        `json:"doctor_error,omitempty"`
	Appointments  Section[AppointmentResponse]  `json:"appointments"`
	Operations    Section[OperationResponse]    `json:"operations"`
	DutySchedules Section[DutyScheduleResponse] `json:"duty_schedules"`
}

type NurseDashboard struct {
	Nurse        *NurseResponse               `json:"nurse,omitempty"`
	NurseError   string                       `json:"nurse_error,omitempty"`
	Department   string                       `json:"department"`
	Date         string                       `json:"date"`
	Appointments Section[AppointmentResponse] `json:"appointments"`
	Doctors      Section[DoctorResponse]      `json:"doctors"`
}

type AdminDashboard struct {
	RecentAppointments Section[AppointmentResponse] `json:"recent_appointments"`
	Patients           Section[ProfileResponse]     `json:"patients"`
	Doctors            Section[DoctorResponse]      `json:"doctors"`
	Nurses             Section[NurseResponse]       `json:"nurses"`
}

type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type DoctorResponse struct {
	ID                   uuid.UUID `json:"id"`
	UserID               uuid.UUID `json:"user_id"`
	Name                 string    `json:"name,omitempty"`
	Email                string    `json:"email,omitempty"`
	Specialization       string    `json:"specialization"`
	Department           string    `json:"department"`
	IsPresent            bool      `json:"is_present"`
	AvailabilityStatus   string    `json:"availability_status"`
	AvailabilityCategory string    `json:"availability_category"`
	ShiftStart           string    `json:"shift_start,omitempty"`
	ShiftEnd             string    `json:"shift_end,omitempty"`
}

type NurseResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department"`
}

type OperationResponse struct {
	ID             uuid.UUID `json:"id"`
	OperationName  string    `json:"operation_name"`
	PatientName    string    `json:"patient_name,omitempty"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Status         string    `json:"status"`
	StatusCategory string    `json:"status_category"`
}

type DutyScheduleResponse struct {
	ID         uuid.UUID `json:"id"`
	Date       string    `json:"date"`
	ShiftStart string    `json:"shift_start"`
	ShiftEnd   string    `json:"shift_end"`
	Ward       string    `json:"ward,omitempty"`
}
