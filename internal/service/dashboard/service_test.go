package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/dashboard"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "0190b3a4-0000-7000-8000-000000000001"
	managerID  = "0190b3a4-0000-7000-8000-000000000002"
)

// Only the range queries are used by the dashboard.
type fakeClockRepo struct {
	clock.ClockRepository
	clocks []clock.Clock
	err    error
}

func (f *fakeClockRepo) ListInRange(_ context.Context, userID string, from, to time.Time) ([]clock.Clock, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []clock.Clock
	for _, c := range f.clocks {
		if c.UserID == userID && !c.At.Before(from) && c.At.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakePlanningRepo struct {
	planning.PlanningRepository
	plannings []planning.Planning
}

func (f *fakePlanningRepo) ListInRange(_ context.Context, userID string, from, to time.Time) ([]planning.Planning, error) {
	var out []planning.Planning
	for _, p := range f.plannings {
		if p.UserID == userID && !p.Date.Before(from) && p.Date.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	user.UserRepository
}

func (fakeUserRepo) Exists(_ context.Context, id string) (bool, error) {
	return id == employeeID || id == managerID, nil
}

func authContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ta.Encode(map[string]any{"user_id": userID, "role": string(role)})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
	require.NoError(t, err)
	return v
}

// newWeekFixture builds the week of 2024-01-01: 8h Monday, 3h30 Tuesday
// split in two sessions, a late 8h Wednesday and an approved full-day
// absence on Friday. "Now" is Tuesday afternoon.
func newWeekFixture(t *testing.T) *DashboardServiceImpl {
	t.Helper()
	var clocks []clock.Clock
	add := func(kind clock.Kind, at string) {
		clocks = append(clocks, clock.Clock{UserID: employeeID, Kind: kind, At: ts(t, at)})
	}
	add(clock.KindIn, "2024-01-01T09:00")
	add(clock.KindOut, "2024-01-01T17:00")
	add(clock.KindIn, "2024-01-02T08:45")
	add(clock.KindOut, "2024-01-02T09:15")
	add(clock.KindIn, "2024-01-02T09:30")
	add(clock.KindOut, "2024-01-02T12:30")
	add(clock.KindIn, "2024-01-03T10:00")
	add(clock.KindOut, "2024-01-03T18:00")
	// previous week, ignored
	add(clock.KindIn, "2023-12-29T09:00")
	add(clock.KindOut, "2023-12-29T17:00")

	plannings := []planning.Planning{
		{UserID: employeeID, Date: ts(t, "2024-01-05T00:00"), Period: planning.PeriodFullDay, Status: planning.StatusApproved},
		{UserID: employeeID, Date: ts(t, "2024-01-04T00:00"), Period: planning.PeriodAM, Status: planning.StatusRejected},
	}

	return &DashboardServiceImpl{
		clockRepo:    &fakeClockRepo{clocks: clocks},
		planningRepo: &fakePlanningRepo{plannings: plannings},
		userRepo:     fakeUserRepo{},
		loc:          time.UTC,
		now:          func() time.Time { return ts(t, "2024-01-02T15:00") },
	}
}

func TestDashboardService_GetMyMetrics(t *testing.T) {
	svc := newWeekFixture(t)

	resp, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "")
	require.NoError(t, err)

	assert.Equal(t, employeeID, resp.UserID)
	assert.Equal(t, "2024-01-01", resp.WeekStart)
	assert.Equal(t, "2024-01-07", resp.WeekEnd)
	assert.Equal(t, "2024-01-02", resp.Today)

	assert.Equal(t, int64(12600), resp.Metrics.BaseTodaySeconds)
	assert.Equal(t, int64(70200), resp.Metrics.TotalWorkedSeconds)
	assert.Equal(t, 1, resp.Metrics.LateDays)
	assert.Equal(t, 8.0, resp.Metrics.AbsenceHours)
	assert.Equal(t, 49, resp.Metrics.PresencePct)
	assert.Equal(t, 20, resp.Metrics.AbsencePct)
	assert.Equal(t, 20, resp.Metrics.LatenessPct)

	assert.Equal(t, "3h 30m", resp.TodayHours)
	assert.Equal(t, "19h 30m", resp.WeekHours)
	assert.False(t, resp.OnTheClock)

	assert.Equal(t, 49, resp.Chart.Presence)
	assert.Equal(t, 20, resp.Chart.Absence)
	assert.Equal(t, 31, resp.Chart.Lateness)
	assert.Equal(t, []int{49, 31, 20}, resp.Chart.Series)
}

func TestDashboardService_GetMyMetrics_OtherWeek(t *testing.T) {
	svc := newWeekFixture(t)

	resp, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "2023-12-27")
	require.NoError(t, err)

	assert.Equal(t, "2023-12-25", resp.WeekStart)
	assert.Equal(t, int64(28800), resp.Metrics.TotalWorkedSeconds)
	// today is outside the requested week
	assert.Zero(t, resp.Metrics.BaseTodaySeconds)
}

func newSundayFixture(t *testing.T, in, out string) *DashboardServiceImpl {
	t.Helper()
	clocks := []clock.Clock{
		{UserID: employeeID, Kind: clock.KindIn, At: ts(t, in)},
		{UserID: employeeID, Kind: clock.KindOut, At: ts(t, out)},
	}
	return &DashboardServiceImpl{
		clockRepo:    &fakeClockRepo{clocks: clocks},
		planningRepo: &fakePlanningRepo{},
		userRepo:     fakeUserRepo{},
		loc:          time.UTC,
		now:          func() time.Time { return ts(t, "2024-01-02T15:00") },
	}
}

func TestDashboardService_PreviousWeekSessionIsNotLate(t *testing.T) {
	svc := newSundayFixture(t, "2023-12-31T10:00", "2023-12-31T14:00")

	resp, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "")
	require.NoError(t, err)

	assert.Zero(t, resp.Metrics.TotalWorkedSeconds)
	assert.Zero(t, resp.Metrics.LateDays)
	assert.Zero(t, resp.Metrics.LatenessPct)

	chart, err := svc.GetMyWorkHoursChart(authContext(t, employeeID, user.RoleEmployee), "")
	require.NoError(t, err)
	for _, day := range chart.DailyWorkHours {
		assert.False(t, day.Late, day.Date)
	}
}

func TestDashboardService_NightShiftIntoWeek(t *testing.T) {
	svc := newSundayFixture(t, "2023-12-31T22:00", "2024-01-01T06:00")

	resp, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "")
	require.NoError(t, err)

	// only the hours after Monday midnight count
	assert.Equal(t, int64(21600), resp.Metrics.TotalWorkedSeconds)
	assert.Zero(t, resp.Metrics.LateDays)
}

func TestDashboardService_InvalidWeek(t *testing.T) {
	svc := newWeekFixture(t)

	_, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "next week")
	assert.ErrorIs(t, err, dashboard.ErrInvalidWeek)
}

func TestDashboardService_OnTheClock(t *testing.T) {
	svc := newWeekFixture(t)
	repo := svc.clockRepo.(*fakeClockRepo)
	repo.clocks = append(repo.clocks, clock.Clock{UserID: employeeID, Kind: clock.KindIn, At: ts(t, "2024-01-03T19:00")})

	resp, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "")
	require.NoError(t, err)

	assert.True(t, resp.OnTheClock)
	// the open session is not counted yet
	assert.Equal(t, int64(12600), resp.Metrics.BaseTodaySeconds)
}

func TestDashboardService_RepositoryError(t *testing.T) {
	svc := newWeekFixture(t)
	svc.clockRepo.(*fakeClockRepo).err = errors.New("connection reset")

	_, err := svc.GetMyMetrics(authContext(t, employeeID, user.RoleEmployee), "")
	assert.ErrorContains(t, err, "connection reset")
}

func TestDashboardService_GetUserMetrics(t *testing.T) {
	svc := newWeekFixture(t)

	_, err := svc.GetUserMetrics(authContext(t, employeeID, user.RoleEmployee), employeeID, "")
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	_, err = svc.GetUserMetrics(authContext(t, managerID, user.RoleManager), "0190b3a4-0000-7000-8000-00000000ffff", "")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = svc.GetUserMetrics(authContext(t, managerID, user.RoleManager), "bogus", "")
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	resp, err := svc.GetUserMetrics(authContext(t, managerID, user.RoleManager), employeeID, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, int64(70200), resp.Metrics.TotalWorkedSeconds)
}

func TestDashboardService_GetMyWorkHoursChart(t *testing.T) {
	svc := newWeekFixture(t)

	resp, err := svc.GetMyWorkHoursChart(authContext(t, employeeID, user.RoleEmployee), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", resp.WeekStart)
	assert.Equal(t, int64(70200), resp.TotalWorkSeconds)
	assert.Equal(t, "19h 30m", resp.TotalWorkHours)
	require.Len(t, resp.DailyWorkHours, 7)

	monday := resp.DailyWorkHours[0]
	assert.Equal(t, "2024-01-01", monday.Date)
	assert.Equal(t, "Monday", monday.DayName)
	assert.Equal(t, int64(28800), monday.WorkSeconds)
	assert.False(t, monday.Late)

	tuesday := resp.DailyWorkHours[1]
	assert.Equal(t, int64(12600), tuesday.WorkSeconds)
	assert.Equal(t, "3h 30m", tuesday.WorkHours)
	assert.False(t, tuesday.Late)

	wednesday := resp.DailyWorkHours[2]
	assert.True(t, wednesday.Late)

	sunday := resp.DailyWorkHours[6]
	assert.Equal(t, "Sunday", sunday.DayName)
	assert.Zero(t, sunday.WorkSeconds)
}

func TestDashboardService_GetUserWorkHoursChart(t *testing.T) {
	svc := newWeekFixture(t)

	_, err := svc.GetUserWorkHoursChart(authContext(t, employeeID, user.RoleEmployee), managerID, "")
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	resp, err := svc.GetUserWorkHoursChart(authContext(t, managerID, user.RoleManager), employeeID, "")
	require.NoError(t, err)
	assert.Equal(t, employeeID, resp.UserID)
}
