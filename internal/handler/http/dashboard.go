package http

import (
	"net/http"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/dashboard"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetMyMetrics returns the caller's weekly metrics and pie chart
	GetMyMetrics(w http.ResponseWriter, r *http.Request)
	// GetMyWorkHours returns the caller's daily work hours for a week
	GetMyWorkHours(w http.ResponseWriter, r *http.Request)
	// GetUserMetrics returns weekly metrics of any user (manager)
	GetUserMetrics(w http.ResponseWriter, r *http.Request)
	// GetUserWorkHours returns daily work hours of any user (manager)
	GetUserWorkHours(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	service dashboard.DashboardService
}

func NewDashboardHandler(service dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{service: service}
}

// GetMyMetrics handles GET /dashboard/me
// Query params:
//   - week: any date of the week, YYYY-MM-DD (default: today)
func (h *dashboardHandlerImpl) GetMyMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMyMetrics(r.Context(), r.URL.Query().Get("week"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetMyWorkHours handles GET /dashboard/me/work-hours
func (h *dashboardHandlerImpl) GetMyWorkHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMyWorkHoursChart(r.Context(), r.URL.Query().Get("week"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetUserMetrics handles GET /dashboard/users/{userID}
func (h *dashboardHandlerImpl) GetUserMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetUserMetrics(r.Context(), chi.URLParam(r, "userID"), r.URL.Query().Get("week"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetUserWorkHours handles GET /dashboard/users/{userID}/work-hours
func (h *dashboardHandlerImpl) GetUserWorkHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetUserWorkHoursChart(r.Context(), chi.URLParam(r, "userID"), r.URL.Query().Get("week"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
