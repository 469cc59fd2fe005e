package handler

import (
	"errors"
	"net/http"

	"medcare-portal/internal/delivery/http/middleware"
	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/usecase"
	"medcare-portal/pkg/response"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

// GetDashboard renders the view matching the viewer's profile role.
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	dashboard, err := h.dashboardUsecase.ResolveDashboard(r.Context(), identity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

// GetDashboardForRole renders the view named in the path for the viewer.
func (h *DashboardHandler) GetDashboardForRole(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	role, ok := entity.LookupRole(mux.Vars(r)["role"])
	if !ok {
		response.NotFound(w, "Dashboard not found")
		return
	}

	dashboard, err := h.dashboardUsecase.ForcedDashboard(r.Context(), identity, role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		response.NotFound(w, "Profile not found")
	case errors.Is(err, usecase.ErrDashboardForbidden):
		response.Forbidden(w, "You do not have access to this dashboard")
	default:
		captureError(r, err)
		response.InternalServerError(w, "Failed to load dashboard")
	}
}

// captureError reports to Sentry when the request carries a hub.
func captureError(r *http.Request, err error) {
	if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
		hub.CaptureException(err)
	}
}
