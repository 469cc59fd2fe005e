package dto

import "github.com/google/uuid"

type SignOutResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	SignInPath string    `json:"sign_in_path"`
}

// SessionErrorResponse tells API clients where to authenticate.
type SessionErrorResponse struct {
	SignInPath string `json:"sign_in_path"`
}
