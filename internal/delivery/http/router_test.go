package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medcare-portal/config"
	"medcare-portal/internal/delivery/http/handler"
	"medcare-portal/internal/delivery/http/middleware"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/pkg/jwt"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type openRevocation struct{}

func (openRevocation) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return nil
}

func (openRevocation) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}

type patientLookup struct{}

func (patientLookup) ViewerRole(ctx context.Context, identity entity.Identity) (entity.Role, error) {
	return entity.RolePatient, nil
}

func newTestRouter() *mux.Router {
	log := logrus.New()
	log.SetOutput(io.Discard)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})

	return NewRouter(
		handler.NewDashboardHandler(nil),
		handler.NewBookingHandler(nil),
		handler.NewSessionHandler(nil, "/signin"),
		middleware.NewAuthMiddleware(jwtService, openRevocation{}, log, "/signin"),
		middleware.NewRoleMiddleware(patientLookup{}, log),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
	).Setup()
}

func TestRoutesWithoutSession(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/dashboard", http.StatusUnauthorized},
		{http.MethodGet, "/api/v1/dashboard/doctor", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/appointments", http.StatusUnauthorized},
		{http.MethodPost, "/api/v1/session/sign-out", http.StatusUnauthorized},
		{http.MethodGet, "/dashboard", http.StatusFound},
		{http.MethodGet, "/dashboard/nurse", http.StatusFound},
		{http.MethodOptions, "/api/v1/appointments", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}
