package clock

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/user"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/database"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/jwt"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/repository/postgresql"
	"github.com/google/uuid"
)

type ClockServiceImpl struct {
	clock.ClockRepository
	user.UserRepository

	withTx         postgresql.TxFunc
	loc            *time.Location
	autoCloseAfter time.Duration
	now            func() time.Time
}

func NewClockService(
	db *database.DB,
	clockRepo clock.ClockRepository,
	userRepo user.UserRepository,
	loc *time.Location,
	autoCloseAfter time.Duration,
) clock.ClockService {
	return &ClockServiceImpl{
		ClockRepository: clockRepo,
		UserRepository:  userRepo,
		withTx:          postgresql.Transactor(db),
		loc:             loc,
		autoCloseAfter:  autoCloseAfter,
		now:             time.Now,
	}
}

// Toggle implements clock.ClockService.
func (s *ClockServiceImpl) Toggle(ctx context.Context) (clock.ClockResponse, error) {
	return s.record(ctx, "")
}

// ClockIn implements clock.ClockService.
func (s *ClockServiceImpl) ClockIn(ctx context.Context) (clock.ClockResponse, error) {
	return s.record(ctx, clock.KindIn)
}

// ClockOut implements clock.ClockService.
func (s *ClockServiceImpl) ClockOut(ctx context.Context) (clock.ClockResponse, error) {
	return s.record(ctx, clock.KindOut)
}

// record stores the next clock event of the caller. An empty want picks the
// kind that alternates with the latest record.
func (s *ClockServiceImpl) record(ctx context.Context, want clock.Kind) (clock.ClockResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return clock.ClockResponse{}, err
	}

	var created clock.Clock
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if err := s.ClockRepository.LockUser(txCtx, userID); err != nil {
			return err
		}

		latest, err := s.ClockRepository.GetLatest(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get latest clock record: %w", err)
		}
		open := latest != nil && latest.Kind == clock.KindIn

		kind := want
		switch {
		case kind == "" && open:
			kind = clock.KindOut
		case kind == "":
			kind = clock.KindIn
		case kind == clock.KindIn && open:
			return clock.ErrAlreadyClockedIn
		case kind == clock.KindOut && !open:
			return clock.ErrNotClockedIn
		}

		created, err = s.ClockRepository.Create(txCtx, clock.Clock{
			UserID: userID,
			Kind:   kind,
			At:     s.now().UTC(),
			Source: clock.SourceBadge,
		})
		return err
	})
	if err != nil {
		return clock.ClockResponse{}, err
	}

	slog.InfoContext(ctx, "clock recorded", "user_id", userID, "kind", created.Kind, "clock_id", created.ID)
	return clock.NewClockResponse(created, s.loc), nil
}

// GetStatus implements clock.ClockService.
func (s *ClockServiceImpl) GetStatus(ctx context.Context) (clock.StatusResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return clock.StatusResponse{}, err
	}

	// Same source of truth as record, so status and toggle always agree.
	latest, err := s.ClockRepository.GetLatest(ctx, userID)
	if err != nil {
		return clock.StatusResponse{}, fmt.Errorf("failed to get latest clock record: %w", err)
	}

	resp := clock.StatusResponse{UserID: userID}
	if latest == nil {
		return resp, nil
	}

	last := clock.NewClockResponse(*latest, s.loc)
	resp.LastClock = &last

	if latest.Kind == clock.KindIn {
		since := latest.At.In(s.loc).Format(time.RFC3339)
		resp.OnTheClock = true
		resp.Since = &since
		resp.ElapsedSeconds = max(int64(s.now().Sub(latest.At)/time.Second), 0)
	}
	return resp, nil
}

// ListMine implements clock.ClockService.
func (s *ClockServiceImpl) ListMine(ctx context.Context, filter clock.ClockFilter) (clock.ListClockResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return clock.ListClockResponse{}, err
	}
	return s.list(ctx, userID, filter)
}

// ListForUser implements clock.ClockService.
func (s *ClockServiceImpl) ListForUser(ctx context.Context, userID string, filter clock.ClockFilter) (clock.ListClockResponse, error) {
	if err := s.authorizeUser(ctx, userID); err != nil {
		return clock.ListClockResponse{}, err
	}
	return s.list(ctx, userID, filter)
}

func (s *ClockServiceImpl) list(ctx context.Context, userID string, filter clock.ClockFilter) (clock.ListClockResponse, error) {
	if err := filter.Validate(); err != nil {
		return clock.ListClockResponse{}, err
	}

	rng := filter.Range(s.now(), s.loc)
	clocks, total, err := s.ClockRepository.List(ctx, userID, rng, filter.Page, filter.Limit)
	if err != nil {
		return clock.ListClockResponse{}, fmt.Errorf("failed to list clock records: %w", err)
	}

	responses := make([]clock.ClockResponse, 0, len(clocks))
	for _, c := range clocks {
		responses = append(responses, clock.NewClockResponse(c, s.loc))
	}

	return clock.ListClockResponse{
		Clocks:     responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetSessions implements clock.ClockService.
func (s *ClockServiceImpl) GetSessions(ctx context.Context, userID string, filter clock.ClockFilter) (clock.SessionsResponse, error) {
	callerID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return clock.SessionsResponse{}, err
	}
	if userID == "" {
		userID = callerID
	}
	if userID != callerID {
		if err := s.authorizeUser(ctx, userID); err != nil {
			return clock.SessionsResponse{}, err
		}
	}
	if err := filter.Validate(); err != nil {
		return clock.SessionsResponse{}, err
	}

	rng := filter.Range(s.now(), s.loc)

	// A session may have started the day before the range.
	clocks, err := s.ClockRepository.ListInRange(ctx, userID, rng.From.Add(-24*time.Hour), rng.To)
	if err != nil {
		return clock.SessionsResponse{}, fmt.Errorf("failed to list clock records: %w", err)
	}
	analysis := timemetrics.BuildSessions(clock.Records(clocks, s.loc))

	sessions := make([]clock.SessionResponse, 0, len(analysis.Sessions))
	for _, sess := range analysis.Sessions {
		if timemetrics.OverlapSeconds(sess.Start, sess.End, rng) == 0 {
			continue
		}
		sessions = append(sessions, clock.SessionResponse{
			Start:           sess.Start.Format(time.RFC3339),
			End:             sess.End.Format(time.RFC3339),
			DurationSeconds: int64(sess.Duration() / time.Second),
		})
	}

	total := timemetrics.TotalOverlapSeconds(analysis.Sessions, rng)
	resp := clock.SessionsResponse{
		UserID:             userID,
		StartDate:          string(timemetrics.DayKeyOf(rng.From)),
		EndDate:            string(timemetrics.DayKeyOf(rng.To.AddDate(0, 0, -1))),
		Sessions:           sessions,
		TotalWorkedSeconds: total,
		WorkHours:          timemetrics.FormatHours(total),
	}
	if open := analysis.OpenSession; open != nil && open.Start.Before(rng.To) {
		resp.OpenSession = &clock.OpenSessionResponse{Start: open.Start.Format(time.RFC3339)}
	}
	return resp, nil
}

// Delete implements clock.ClockService.
func (s *ClockServiceImpl) Delete(ctx context.Context, id string) error {
	if jwt.RoleFromContext(ctx) != user.RoleManager {
		return user.ErrManagerAccessRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return clock.ErrClockNotFound
	}
	if err := s.ClockRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "clock record deleted", "clock_id", id)
	return nil
}

// AutoCloseStale implements clock.ClockService.
func (s *ClockServiceImpl) AutoCloseStale(ctx context.Context) (int, error) {
	if s.autoCloseAfter <= 0 {
		return 0, nil
	}

	cutoff := s.now().Add(-s.autoCloseAfter)
	stale, err := s.ClockRepository.ListStaleOpen(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale sessions: %w", err)
	}

	closed := 0
	for _, open := range stale {
		_, err := s.ClockRepository.Create(ctx, clock.Clock{
			UserID: open.UserID,
			Kind:   clock.KindOut,
			At:     open.In.Add(s.autoCloseAfter),
			Source: clock.SourceAutoClose,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to auto-close session", "user_id", open.UserID, "error", err)
			continue
		}
		closed++
	}
	return closed, nil
}

// authorizeUser requires a manager caller and an existing target user.
func (s *ClockServiceImpl) authorizeUser(ctx context.Context, userID string) error {
	if jwt.RoleFromContext(ctx) != user.RoleManager {
		return user.ErrManagerAccessRequired
	}
	if _, err := uuid.Parse(userID); err != nil {
		return user.ErrUserNotFound
	}
	exists, err := s.UserRepository.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return user.ErrUserNotFound
	}
	return nil
}
