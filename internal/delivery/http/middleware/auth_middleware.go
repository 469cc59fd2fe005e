package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/service"
	"medcare-portal/pkg/jwt"
	"medcare-portal/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const identityKey contextKey = "identity"

// AccessTokenCookie is read on browser routes when no Authorization header
// is sent.
const AccessTokenCookie = "access_token"

var (
	errMissingToken = errors.New("missing session token")
	errRevokedToken = errors.New("session token has been revoked")

	errRevocationUnavailable = errors.New("revocation list unavailable")
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	revocation service.SessionRevocation
	log        *logrus.Logger
	signInPath string
}

func NewAuthMiddleware(jwtService *jwt.JWTService, revocation service.SessionRevocation, log *logrus.Logger, signInPath string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		revocation: revocation,
		log:        log,
		signInPath: signInPath,
	}
}

// Authenticate guards API routes. Requests without a usable session get a
// 401 envelope naming the sign-in path.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.identify(r)
		if err != nil {
			if errors.Is(err, errRevocationUnavailable) {
				response.InternalServerError(w, "Failed to validate token")
				return
			}
			response.Error(w, http.StatusUnauthorized, unauthorizedMessage(err), dto.SessionErrorResponse{SignInPath: m.signInPath})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireSession guards browser routes by redirecting to sign-in.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.identify(r)
		if err != nil {
			if errors.Is(err, errRevocationUnavailable) {
				response.InternalServerError(w, "Failed to validate token")
				return
			}
			http.Redirect(w, r, m.signInPath, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func (m *AuthMiddleware) identify(r *http.Request) (entity.Identity, error) {
	tokenString, err := tokenFromRequest(r)
	if err != nil {
		return entity.Identity{}, err
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return entity.Identity{}, err
	}

	revoked, err := m.revocation.IsRevoked(r.Context(), claims.ID)
	if err != nil {
		m.log.Warnf("Failed to check token revocation: %+v", err)
		return entity.Identity{}, errRevocationUnavailable
	}
	if revoked {
		return entity.Identity{}, errRevokedToken
	}

	userID, _ := claims.UserID()
	identity := entity.Identity{
		UserID:  userID,
		Email:   claims.Email,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	} else {
		identity.ExpiresAt = time.Now().Add(m.jwtService.GetAccessExpiry())
	}

	return identity, nil
}

func tokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", jwt.ErrInvalidToken
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errMissingToken
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, errMissingToken):
		return "Authorization header is required"
	case errors.Is(err, errRevokedToken):
		return "Token has been revoked"
	default:
		return "Invalid or expired token"
	}
}

func WithIdentity(ctx context.Context, identity entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity stored by the session
// middleware. ok is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(entity.Identity)
	return identity, ok
}
