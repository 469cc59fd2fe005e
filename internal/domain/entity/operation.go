package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OperationStatus string

const (
	OperationStatusScheduled OperationStatus = "scheduled"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusCancelled OperationStatus = "cancelled"
)

// Operation is a surgical procedure performed by one doctor
type Operation struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	OperationName string          `gorm:"type:varchar(255);not null" json:"operation_name"`
	OperationDate datatypes.Date  `gorm:"type:date;not null;index" json:"operation_date"`
	OperationTime datatypes.Time  `gorm:"type:time" json:"operation_time"`
	Status        OperationStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Profile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Operation) TableName() string {
	return "operations"
}

func (o *Operation) StartsAt(loc *time.Location) time.Time {
	return CombineDateTime(o.OperationDate, o.OperationTime, loc)
}
