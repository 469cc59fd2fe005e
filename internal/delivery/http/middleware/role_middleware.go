package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/usecase"
	"medcare-portal/pkg/response"

	"github.com/sirupsen/logrus"
)

// RoleLookup resolves the dashboard role of a signed-in user.
type RoleLookup interface {
	ViewerRole(ctx context.Context, identity entity.Identity) (entity.Role, error)
}

type RoleMiddleware struct {
	lookup RoleLookup
	log    *logrus.Logger
}

func NewRoleMiddleware(lookup RoleLookup, log *logrus.Logger) *RoleMiddleware {
	return &RoleMiddleware{
		lookup: lookup,
		log:    log,
	}
}

// Require lets the request through when the profile role is one of roles.
// It must run after Authenticate.
func (m *RoleMiddleware) Require(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			role, err := m.lookup.ViewerRole(r.Context(), identity)
			if err != nil {
				if errors.Is(err, usecase.ErrProfileNotFound) {
					response.Forbidden(w, "Profile not found")
					return
				}
				m.log.Warnf("Failed to resolve role for %s: %+v", identity.UserID, err)
				response.InternalServerError(w, "Failed to resolve role")
				return
			}

			if !slices.Contains(roles, role) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
