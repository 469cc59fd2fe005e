package http

import (
	"net/http"

	"medcare-portal/internal/delivery/http/handler"
	"medcare-portal/internal/delivery/http/middleware"
	"medcare-portal/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	dashboardHandler  *handler.DashboardHandler
	bookingHandler    *handler.BookingHandler
	sessionHandler    *handler.SessionHandler
	authMiddleware    *middleware.AuthMiddleware
	roleMiddleware    *middleware.RoleMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	dashboardHandler *handler.DashboardHandler,
	bookingHandler *handler.BookingHandler,
	sessionHandler *handler.SessionHandler,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		dashboardHandler:  dashboardHandler,
		bookingHandler:    bookingHandler,
		sessionHandler:    sessionHandler,
		authMiddleware:    authMiddleware,
		roleMiddleware:    roleMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Session-protected API routes
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/{role}", r.dashboardHandler.GetDashboardForRole).Methods(http.MethodGet)
	protected.HandleFunc("/session/sign-out", r.sessionHandler.SignOut).Methods(http.MethodPost)

	// Patient-only routes
	patient := protected.NewRoute().Subrouter()
	patient.Use(r.roleMiddleware.Require(entity.RolePatient))
	patient.HandleFunc("/appointments", r.bookingHandler.BookAppointment).Methods(http.MethodPost)

	// Browser routes redirect to sign-in instead of answering 401
	browser := r.router.PathPrefix("/dashboard").Subrouter()
	browser.Use(r.authMiddleware.RequireSession)
	browser.HandleFunc("", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	browser.HandleFunc("/{role}", r.dashboardHandler.GetDashboardForRole).Methods(http.MethodGet)

	// Preflight requests match no method-restricted route
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
