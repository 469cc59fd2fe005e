package entity

import (
	"time"

	"github.com/google/uuid"
)

type Nurse struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Department string    `gorm:"type:varchar(100);index" json:"department"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (Nurse) TableName() string {
	return "nurses"
}
