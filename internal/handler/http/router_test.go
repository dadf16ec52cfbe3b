package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/dashboard"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/jwt"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "0190b3a4-0000-7000-8000-000000000001"
	managerID  = "0190b3a4-0000-7000-8000-000000000002"
)

type stubClockService struct {
	clock.ClockService
	toggleErr error
	deleted   string
}

func (s *stubClockService) Toggle(ctx context.Context) (clock.ClockResponse, error) {
	if s.toggleErr != nil {
		return clock.ClockResponse{}, s.toggleErr
	}
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return clock.ClockResponse{}, err
	}
	return clock.ClockResponse{ID: "c1", UserID: userID, Kind: "IN"}, nil
}

func (s *stubClockService) ClockOut(context.Context) (clock.ClockResponse, error) {
	return clock.ClockResponse{}, clock.ErrNotClockedIn
}

func (s *stubClockService) ListMine(_ context.Context, filter clock.ClockFilter) (clock.ListClockResponse, error) {
	if err := filter.Validate(); err != nil {
		return clock.ListClockResponse{}, err
	}
	return clock.ListClockResponse{
		Clocks:     []clock.ClockResponse{{ID: "c1"}},
		TotalCount: 1,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 1,
	}, nil
}

func (s *stubClockService) GetSessions(ctx context.Context, userID string, _ clock.ClockFilter) (clock.SessionsResponse, error) {
	if userID == "" {
		userID, _ = jwt.UserIDFromContext(ctx)
	}
	return clock.SessionsResponse{
		UserID:    userID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
		Sessions: []clock.SessionResponse{
			{Start: "2024-01-01T09:00:00+01:00", End: "2024-01-01T17:00:00+01:00", DurationSeconds: 28800},
		},
		OpenSession:        &clock.OpenSessionResponse{Start: "2024-01-02T08:55:00+01:00"},
		TotalWorkedSeconds: 28800,
		WorkHours:          "8h 0m",
	}, nil
}

func (s *stubClockService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return nil
}

type stubPlanningService struct {
	planning.PlanningService
	review planning.ReviewPlanningRequest
}

func (s *stubPlanningService) Create(_ context.Context, req planning.CreatePlanningRequest) (planning.PlanningResponse, error) {
	if err := req.Validate(); err != nil {
		return planning.PlanningResponse{}, err
	}
	return planning.PlanningResponse{ID: "p1", Date: req.Date, Period: req.Period, Status: "PENDING"}, nil
}

func (s *stubPlanningService) Approve(_ context.Context, req planning.ReviewPlanningRequest) (planning.PlanningResponse, error) {
	s.review = req
	return planning.PlanningResponse{ID: req.ID, Status: "APPROVED"}, nil
}

func (s *stubPlanningService) Reject(context.Context, planning.ReviewPlanningRequest) (planning.PlanningResponse, error) {
	return planning.PlanningResponse{}, planning.ErrPlanningAlreadyReviewed
}

type stubDashboardService struct {
	dashboard.DashboardService
}

func (stubDashboardService) GetMyMetrics(ctx context.Context, weekOf string) (*dashboard.MetricsResponse, error) {
	if weekOf == "bad" {
		return nil, dashboard.ErrInvalidWeek
	}
	userID, _ := jwt.UserIDFromContext(ctx)
	return &dashboard.MetricsResponse{
		UserID:  userID,
		Metrics: timemetrics.TimeMetrics{PresencePct: 49},
	}, nil
}

func (stubDashboardService) GetUserMetrics(_ context.Context, userID, _ string) (*dashboard.MetricsResponse, error) {
	return &dashboard.MetricsResponse{UserID: userID}, nil
}

type testServer struct {
	router    http.Handler
	jwt       jwt.Service
	clocks    *stubClockService
	plannings *stubPlanningService
}

func newTestServer() *testServer {
	ts := &testServer{
		jwt:       jwt.NewJWTService("router-test-secret", "1h"),
		clocks:    &stubClockService{},
		plannings: &stubPlanningService{},
	}
	ts.router = NewRouter(
		ts.jwt,
		NewClockHandler(ts.clocks),
		NewPlanningHandler(ts.plannings),
		NewDashboardHandler(stubDashboardService{}),
		RouterOptions{Env: "test", FrontendURL: "http://localhost:3000"},
	)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string, userID string, role user.Role) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		token, _, err := ts.jwt.GenerateAccessToken(userID, userID+"@example.com", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestRouter_Heartbeat(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(t, http.MethodGet, "/", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	ts := newTestServer()

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/clocks", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, payload["success"])
}

func TestRouter_Toggle(t *testing.T) {
	ts := newTestServer()

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/clocks", "", employeeID, user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := payload["data"].(map[string]any)
	assert.Equal(t, employeeID, data["user_id"])
	assert.Equal(t, "IN", data["kind"])
}

func TestRouter_ClockErrorsMapToConflict(t *testing.T) {
	ts := newTestServer()
	ts.clocks.toggleErr = clock.ErrAlreadyClockedIn

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/clocks", "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", payload["error"].(map[string]any)["code"])

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/clocks/out", "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_ListMinePagination(t *testing.T) {
	ts := newTestServer()

	rec, payload := ts.do(t, http.MethodGet, "/api/v1/clocks/me?page=2&limit=10", "", employeeID, user.RoleEmployee)
	require.Equal(t, http.StatusOK, rec.Code)

	meta := payload["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(10), meta["limit"])

	rec, payload = ts.do(t, http.MethodGet, "/api/v1/clocks/me?start_date=2024-13-01", "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "start_date")
}

func TestRouter_ManagerRoutes(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(t, http.MethodDelete, "/api/v1/clocks/"+employeeID, "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, ts.clocks.deleted)

	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/clocks/"+employeeID, "", managerID, user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, employeeID, ts.clocks.deleted)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/dashboard/users/"+employeeID, "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, payload := ts.do(t, http.MethodGet, "/api/v1/dashboard/users/"+employeeID, "", managerID, user.RoleManager)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, employeeID, payload["data"].(map[string]any)["user_id"])
}

func TestRouter_CreatePlanning(t *testing.T) {
	ts := newTestServer()

	rec, payload := ts.do(t, http.MethodPost, "/api/v1/plannings", `{"date":"2024-01-10","period":"pm"}`, employeeID, user.RoleEmployee)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "PM", payload["data"].(map[string]any)["period"])

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/plannings", `{"date":`, employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, payload = ts.do(t, http.MethodPost, "/api/v1/plannings", `{"date":"10/01/2024","period":"NIGHT"}`, employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	details := payload["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "date")
	assert.Contains(t, details, "period")
}

func TestRouter_ReviewPlanning(t *testing.T) {
	ts := newTestServer()
	id := "0190b3a4-0000-7000-8000-0000000000aa"

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/plannings/"+id+"/approve", "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/plannings/"+id+"/approve", `{"note":"ok"}`, managerID, user.RoleManager)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, ts.plannings.review.ID)
	require.NotNil(t, ts.plannings.review.Note)
	assert.Equal(t, "ok", *ts.plannings.review.Note)

	// no body is fine
	rec, _ = ts.do(t, http.MethodPost, "/api/v1/plannings/"+id+"/approve", "", managerID, user.RoleManager)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/plannings/"+id+"/reject", "", managerID, user.RoleManager)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_DashboardInvalidWeek(t *testing.T) {
	ts := newTestServer()

	rec, payload := ts.do(t, http.MethodGet, "/api/v1/dashboard/me?week=bad", "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", payload["error"].(map[string]any)["code"])

	rec, payload = ts.do(t, http.MethodGet, "/api/v1/dashboard/me", "", employeeID, user.RoleEmployee)
	require.Equal(t, http.StatusOK, rec.Code)
	metrics := payload["data"].(map[string]any)["metrics"].(map[string]any)
	assert.Equal(t, float64(49), metrics["presence_pct"])
}

func TestRouter_ExportTimesheet(t *testing.T) {
	ts := newTestServer()

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/clocks/me/export", "", employeeID, user.RoleEmployee)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, timesheet.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timesheet_2024-01-01_2024-01-07.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/users/"+employeeID+"/clocks/export", "", employeeID, user.RoleEmployee)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNewTimesheet(t *testing.T) {
	sheet := newTimesheet(clock.SessionsResponse{
		UserID:    employeeID,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-07",
		Sessions: []clock.SessionResponse{
			{Start: "2024-01-01T23:00:00+01:00", End: "2024-01-02T01:00:00+01:00", DurationSeconds: 7200},
			{Start: "garbage", End: "2024-01-02T01:00:00+01:00", DurationSeconds: 1},
		},
		TotalWorkedSeconds: 7200,
	})

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, timesheet.Row{Date: "2024-01-01", Start: "23:00", End: "01:00", Seconds: 7200}, sheet.Rows[0])
	assert.Empty(t, sheet.OpenSince)
	assert.Equal(t, int64(7200), sheet.TotalSeconds)
}

func TestRouter_ExpiredToken(t *testing.T) {
	ts := newTestServer()

	expired := jwt.NewJWTService("router-test-secret", "-1h")
	token, _, err := expired.GenerateAccessToken(employeeID, "e@example.com", user.RoleEmployee)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clocks/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired")
}

func TestRouter_RejectsNonAccessToken(t *testing.T) {
	ts := newTestServer()

	_, token, err := ts.jwt.JWTAuth().Encode(map[string]any{"user_id": employeeID, "type": "refresh"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clocks/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}
