package handler

import (
	"net/http"

	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/delivery/http/middleware"
	"medcare-portal/internal/usecase"
	"medcare-portal/pkg/response"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	signInPath     string
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, signInPath string) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		signInPath:     signInPath,
	}
}

func (h *SessionHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	if err := h.sessionUsecase.SignOut(r.Context(), identity); err != nil {
		captureError(r, err)
		response.InternalServerError(w, "Failed to sign out")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	response.Success(w, http.StatusOK, "Signed out successfully", dto.SignOutResponse{
		UserID:     identity.UserID,
		SignInPath: h.signInPath,
	})
}
