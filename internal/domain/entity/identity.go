package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the signed-in user as asserted by a session token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
