package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AvailabilityStatus is free-form in the store; these are the values the
// dashboards know about.
type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
	AvailabilityOnLeave     AvailabilityStatus = "on_leave"
)

// Doctor holds the clinical side of a doctor profile
type Doctor struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Specialization     string             `gorm:"type:varchar(100);not null" json:"specialization"`
	Department         string             `gorm:"type:varchar(100);not null;index" json:"department"`
	IsPresent          bool               `gorm:"not null;default:false" json:"is_present"`
	AvailabilityStatus AvailabilityStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"availability_status"`
	ShiftStart         datatypes.Time     `gorm:"type:time" json:"shift_start"`
	ShiftEnd           datatypes.Time     `gorm:"type:time" json:"shift_end"`
	CreatedAt          time.Time          `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsBookable reports whether patients may pick this doctor right now.
func (d *Doctor) IsBookable() bool {
	return d.IsPresent && d.AvailabilityStatus == AvailabilityAvailable
}

// DisplayName is the "Dr. <name>" label, empty when the profile was not expanded.
func (d *Doctor) DisplayName() string {
	if d.Profile == nil || d.Profile.Name == "" {
		return ""
	}
	return "Dr. " + d.Profile.Name
}
