package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DutySchedule is one ward shift assigned to a doctor
type DutySchedule struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DutyDate   datatypes.Date `gorm:"type:date;not null;index" json:"duty_date"`
	ShiftStart datatypes.Time `gorm:"type:time;not null" json:"shift_start"`
	ShiftEnd   datatypes.Time `gorm:"type:time;not null" json:"shift_end"`
	Ward       string         `gorm:"type:varchar(100)" json:"ward"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (DutySchedule) TableName() string {
	return "duty_schedules"
}

func (d *DutySchedule) Day() string {
	return FormatDate(d.DutyDate)
}
