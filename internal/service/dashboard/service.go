package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/dashboard"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/jwt"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	clockRepo    clock.ClockRepository
	planningRepo planning.PlanningRepository
	userRepo     user.UserRepository
	loc          *time.Location
	now          func() time.Time
}

func NewDashboardService(
	clockRepo clock.ClockRepository,
	planningRepo planning.PlanningRepository,
	userRepo user.UserRepository,
	loc *time.Location,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		clockRepo:    clockRepo,
		planningRepo: planningRepo,
		userRepo:     userRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// weekData is everything the dashboard needs about one user and one week.
type weekData struct {
	week     timemetrics.TimeRange
	today    timemetrics.DayKey
	analysis timemetrics.SessionAnalysis
	events   []timemetrics.PlanningEvent
}

// parseWeekOf resolves weekOf (YYYY-MM-DD, default today) to its Monday-based week.
func (s *DashboardServiceImpl) parseWeekOf(weekOf string) (timemetrics.TimeRange, error) {
	if weekOf == "" {
		return timemetrics.WeekRange(s.now().In(s.loc)), nil
	}
	day, ok := timemetrics.DayKey(weekOf).Parse(s.loc)
	if !ok {
		return timemetrics.TimeRange{}, dashboard.ErrInvalidWeek
	}
	return timemetrics.WeekRange(day), nil
}

func (s *DashboardServiceImpl) load(ctx context.Context, userID, weekOf string) (weekData, error) {
	week, err := s.parseWeekOf(weekOf)
	if err != nil {
		return weekData{}, err
	}

	var (
		clocks    []clock.Clock
		plannings []planning.Planning
	)

	g, gCtx := errgroup.WithContext(ctx)

	// Clocks from the day before so a night shift crossing Monday 00:00 is kept.
	g.Go(func() error {
		data, err := s.clockRepo.ListInRange(gCtx, userID, week.From.Add(-24*time.Hour), week.To)
		if err != nil {
			return fmt.Errorf("failed to list clock records: %w", err)
		}
		clocks = data
		return nil
	})

	g.Go(func() error {
		data, err := s.planningRepo.ListInRange(gCtx, userID, week.From, week.To)
		if err != nil {
			return fmt.Errorf("failed to list plannings: %w", err)
		}
		plannings = data
		return nil
	})

	if err := g.Wait(); err != nil {
		return weekData{}, err
	}

	return weekData{
		week:     week,
		today:    timemetrics.DayKeyOf(s.now().In(s.loc)),
		analysis: timemetrics.BuildSessions(clock.Records(clocks, s.loc)),
		events:   planning.Events(plannings),
	}, nil
}

// startedIn keeps the sessions starting inside r. Sessions carried over from
// the day before still count as worked time through their overlap.
func startedIn(sessions []timemetrics.ClockSession, r timemetrics.TimeRange) []timemetrics.ClockSession {
	out := make([]timemetrics.ClockSession, 0, len(sessions))
	for _, sess := range sessions {
		if r.Contains(sess.Start) {
			out = append(out, sess)
		}
	}
	return out
}

// resolveUser checks that a manager may read userID.
func (s *DashboardServiceImpl) resolveUser(ctx context.Context, userID string) error {
	if jwt.RoleFromContext(ctx) != user.RoleManager {
		return user.ErrManagerAccessRequired
	}
	if _, err := uuid.Parse(userID); err != nil {
		return user.ErrUserNotFound
	}
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return user.ErrUserNotFound
	}
	return nil
}

// GetMyMetrics implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetMyMetrics(ctx context.Context, weekOf string) (*dashboard.MetricsResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.metrics(ctx, userID, weekOf)
}

// GetUserMetrics implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetUserMetrics(ctx context.Context, userID, weekOf string) (*dashboard.MetricsResponse, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.metrics(ctx, userID, weekOf)
}

func (s *DashboardServiceImpl) metrics(ctx context.Context, userID, weekOf string) (*dashboard.MetricsResponse, error) {
	data, err := s.load(ctx, userID, weekOf)
	if err != nil {
		return nil, err
	}

	m := timemetrics.ComputeTimeMetrics(data.analysis.Sessions, data.events, data.week, data.today)
	// Lateness only looks at days of the week itself.
	inWeek := timemetrics.ComputeTimeMetrics(startedIn(data.analysis.Sessions, data.week), nil, data.week, data.today)
	m.LateDays, m.LatenessPct = inWeek.LateDays, inWeek.LatenessPct
	chart := timemetrics.NormalizeChartData(m.PresencePct, m.AbsencePct, m.LatenessPct)

	return &dashboard.MetricsResponse{
		UserID:     userID,
		WeekStart:  string(timemetrics.DayKeyOf(data.week.From)),
		WeekEnd:    string(timemetrics.DayKeyOf(data.week.To.AddDate(0, 0, -1))),
		Today:      string(data.today),
		Metrics:    m,
		TodayHours: timemetrics.FormatHours(m.BaseTodaySeconds),
		WeekHours:  timemetrics.FormatHours(m.TotalWorkedSeconds),
		OnTheClock: data.analysis.OpenSession != nil,
		Chart: dashboard.ChartResponse{
			Presence: chart[0],
			Lateness: chart[1],
			Absence:  chart[2],
			Series:   chart[:],
		},
	}, nil
}

// GetMyWorkHoursChart implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetMyWorkHoursChart(ctx context.Context, weekOf string) (*dashboard.WorkHoursChartResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.workHoursChart(ctx, userID, weekOf)
}

// GetUserWorkHoursChart implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetUserWorkHoursChart(ctx context.Context, userID, weekOf string) (*dashboard.WorkHoursChartResponse, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.workHoursChart(ctx, userID, weekOf)
}

func (s *DashboardServiceImpl) workHoursChart(ctx context.Context, userID, weekOf string) (*dashboard.WorkHoursChartResponse, error) {
	data, err := s.load(ctx, userID, weekOf)
	if err != nil {
		return nil, err
	}

	firstStarts := timemetrics.FirstStartPerDay(startedIn(data.analysis.Sessions, data.week))
	daily := timemetrics.DailyWorkedSeconds(data.analysis.Sessions, data.week)

	items := make([]dashboard.DailyWorkHourItem, 0, len(daily))
	var total int64
	for _, d := range daily {
		day, _ := d.Day.Parse(s.loc)
		first, started := firstStarts[d.Day]
		items = append(items, dashboard.DailyWorkHourItem{
			Date:        string(d.Day),
			DayName:     day.Weekday().String(),
			WorkHours:   timemetrics.FormatHours(d.Seconds),
			WorkSeconds: d.Seconds,
			Late:        started && timemetrics.IsLate(first),
		})
		total += d.Seconds
	}

	return &dashboard.WorkHoursChartResponse{
		UserID:           userID,
		WeekStart:        string(timemetrics.DayKeyOf(data.week.From)),
		TotalWorkHours:   timemetrics.FormatHours(total),
		TotalWorkSeconds: total,
		DailyWorkHours:   items,
	}, nil
}
