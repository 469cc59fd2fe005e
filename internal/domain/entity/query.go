package entity

import "github.com/google/uuid"

// Expand declares which relations a read should embed. Each call site asks
// for exactly the nested shape it renders.
type Expand uint8

const (
	ExpandProfile Expand = 1 << iota
	ExpandPatient
	ExpandDoctor
	ExpandDoctorProfile
)

func (e Expand) Has(flag Expand) bool {
	return e&flag != 0
}

// Order is a single ORDER BY column. Repositories reject columns they do not know.
type Order struct {
	Column string
	Desc   bool
}

var (
	OrderCreatedDesc = Order{Column: "created_at", Desc: true}
)

// The filters below are domain-level so repositories stay decoupled from
// delivery DTOs. Zero-valued fields do not filter.

type ProfileFilter struct {
	Role  string
	Order Order
}

type DoctorFilter struct {
	UserID             *uuid.UUID
	AvailabilityStatus AvailabilityStatus
	IsPresent          *bool
	Department         string
	Expand             Expand
	Order              Order
}

type NurseFilter struct {
	UserID *uuid.UUID
	Expand Expand
	Order  Order
}

type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	// OnDate matches appointment_date exactly (YYYY-MM-DD).
	OnDate string
	// Department joins doctors and matches doctors.department exactly.
	Department string
	Expand     Expand
	Order      Order
}

type OperationFilter struct {
	DoctorID *uuid.UUID
	Expand   Expand
	Order    Order
}

type DutyScheduleFilter struct {
	DoctorID *uuid.UUID
	Order    Order
}
