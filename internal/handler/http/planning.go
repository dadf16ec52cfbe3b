package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PlanningHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	// Manager routes
	ListForUser(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type planningHandlerImpl struct {
	service planning.PlanningService
}

func NewPlanningHandler(service planning.PlanningService) PlanningHandler {
	return &planningHandlerImpl{service: service}
}

func parsePlanningFilter(r *http.Request) planning.PlanningFilter {
	var filter planning.PlanningFilter
	q := r.URL.Query()

	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if p := q.Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := q.Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}
	return filter
}

// Create handles POST /plannings
func (h *planningHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req planning.CreatePlanningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePlanning decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Planning created", result)
}

// ListMine handles GET /plannings/me
// Query params:
//   - start_date, end_date: YYYY-MM-DD, inclusive
//   - status: PENDING, APPROVED, REJECTED
//   - page, limit
func (h *planningHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListMine(r.Context(), parsePlanningFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Plannings, response.Paginated(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Cancel handles DELETE /plannings/{id}
func (h *planningHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Cancel(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Planning cancelled", nil)
}

// ListForUser handles GET /users/{userID}/plannings
func (h *planningHandlerImpl) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	result, err := h.service.ListForUser(r.Context(), userID, parsePlanningFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Plannings, response.Paginated(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// decodeReview reads an optional body; an empty body is a review without note.
func decodeReview(r *http.Request) (planning.ReviewPlanningRequest, error) {
	var req planning.ReviewPlanningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	req.ID = chi.URLParam(r, "id")
	return req, nil
}

// Approve handles POST /plannings/{id}/approve
func (h *planningHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		slog.Error("ApprovePlanning decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Planning approved", result)
}

// Reject handles POST /plannings/{id}/reject
func (h *planningHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReview(r)
	if err != nil {
		slog.Error("RejectPlanning decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.service.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Planning rejected", result)
}
