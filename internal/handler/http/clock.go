package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/handler/http/response"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timesheet"
	"github.com/go-chi/chi/v5"
)

type ClockHandler interface {
	// Toggle clocks the caller in or out depending on the current state
	Toggle(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetMySessions(w http.ResponseWriter, r *http.Request)
	// ExportMine downloads the caller's sessions as an xlsx timesheet
	ExportMine(w http.ResponseWriter, r *http.Request)

	// Manager routes
	ListForUser(w http.ResponseWriter, r *http.Request)
	GetUserSessions(w http.ResponseWriter, r *http.Request)
	ExportForUser(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type clockHandlerImpl struct {
	service clock.ClockService
}

func NewClockHandler(service clock.ClockService) ClockHandler {
	return &clockHandlerImpl{service: service}
}

// parseClockFilter reads start_date, end_date, page and limit.
func parseClockFilter(q url.Values) clock.ClockFilter {
	var filter clock.ClockFilter
	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
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

// Toggle handles POST /clocks
func (h *clockHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Toggle(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clock recorded", result)
}

// ClockIn handles POST /clocks/in
func (h *clockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ClockIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in", result)
}

// ClockOut handles POST /clocks/out
func (h *clockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ClockOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked out", result)
}

// GetStatus handles GET /clocks/status
func (h *clockHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListMine handles GET /clocks/me
// Query params:
//   - start_date, end_date: YYYY-MM-DD, inclusive (default: last 7 days)
//   - page, limit
func (h *clockHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListMine(r.Context(), parseClockFilter(r.URL.Query()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Clocks, response.Paginated(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// GetMySessions handles GET /clocks/me/sessions
func (h *clockHandlerImpl) GetMySessions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetSessions(r.Context(), "", parseClockFilter(r.URL.Query()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListForUser handles GET /users/{userID}/clocks
func (h *clockHandlerImpl) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	result, err := h.service.ListForUser(r.Context(), userID, parseClockFilter(r.URL.Query()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMeta(w, result.Clocks, response.Paginated(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// GetUserSessions handles GET /users/{userID}/clocks/sessions
func (h *clockHandlerImpl) GetUserSessions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	result, err := h.service.GetSessions(r.Context(), userID, parseClockFilter(r.URL.Query()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ExportMine handles GET /clocks/me/export
func (h *clockHandlerImpl) ExportMine(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "")
}

// ExportForUser handles GET /users/{userID}/clocks/export
func (h *clockHandlerImpl) ExportForUser(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, chi.URLParam(r, "userID"))
}

func (h *clockHandlerImpl) export(w http.ResponseWriter, r *http.Request, userID string) {
	result, err := h.service.GetSessions(r.Context(), userID, parseClockFilter(r.URL.Query()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	sheet := newTimesheet(result)
	if err := timesheet.Write(&buf, sheet); err != nil {
		slog.Error("Export timesheet error", "error", err, "user_id", result.UserID)
		response.InternalServerError(w, "Failed to export timesheet")
		return
	}

	response.File(w, timesheet.ContentType, sheet.Filename(), buf.Bytes())
}

// newTimesheet keeps the wall-clock offsets the sessions were rendered with.
func newTimesheet(result clock.SessionsResponse) timesheet.Sheet {
	sheet := timesheet.Sheet{
		UserID:       result.UserID,
		From:         result.StartDate,
		To:           result.EndDate,
		Rows:         make([]timesheet.Row, 0, len(result.Sessions)),
		TotalSeconds: result.TotalWorkedSeconds,
	}
	for _, sess := range result.Sessions {
		start, err := time.Parse(time.RFC3339, sess.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, sess.End)
		if err != nil {
			continue
		}
		sheet.Rows = append(sheet.Rows, timesheet.Row{
			Date:    start.Format(time.DateOnly),
			Start:   start.Format("15:04"),
			End:     end.Format("15:04"),
			Seconds: sess.DurationSeconds,
		})
	}
	if result.OpenSession != nil {
		sheet.OpenSince = result.OpenSession.Start
	}
	return sheet
}

// Delete handles DELETE /clocks/{id}
func (h *clockHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clock record deleted", nil)
}
