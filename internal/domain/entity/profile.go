package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the identity record shared by every account. ID equals the
// user id issued by the auth provider.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;default:'patient';index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ResolvedRole maps the stored role name onto the closed Role set.
func (p *Profile) ResolvedRole() Role {
	return ParseRole(p.Role)
}
