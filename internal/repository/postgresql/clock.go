package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/clock"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/database"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type clockRepositoryImpl struct {
	db *database.DB
}

func NewClockRepository(db *database.DB) clock.ClockRepository {
	return &clockRepositoryImpl{db: db}
}

const clockColumns = `id, user_id, kind, at, source, created_at`

func scanClock(row pgx.Row) (clock.Clock, error) {
	var c clock.Clock
	err := row.Scan(&c.ID, &c.UserID, &c.Kind, &c.At, &c.Source, &c.CreatedAt)
	return c, err
}

func collectClocks(rows pgx.Rows) ([]clock.Clock, error) {
	defer rows.Close()

	clocks := make([]clock.Clock, 0)
	for rows.Next() {
		c, err := scanClock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock record: %w", err)
		}
		clocks = append(clocks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clocks, nil
}

// Create implements clock.ClockRepository.
func (r *clockRepositoryImpl) Create(ctx context.Context, c clock.Clock) (clock.Clock, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return clock.Clock{}, fmt.Errorf("failed to generate clock id: %w", err)
	}
	c.ID = id.String()
	if c.Source == "" {
		c.Source = clock.SourceBadge
	}

	query := `
		INSERT INTO clock_records (id, user_id, kind, at, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query, c.ID, c.UserID, string(c.Kind), c.At, string(c.Source)).Scan(&c.CreatedAt)
	if err != nil {
		return clock.Clock{}, fmt.Errorf("failed to create clock record: %w", err)
	}

	return c, nil
}

// GetByID implements clock.ClockRepository.
func (r *clockRepositoryImpl) GetByID(ctx context.Context, id string) (clock.Clock, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clockColumns + ` FROM clock_records WHERE id = $1`

	c, err := scanClock(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return clock.Clock{}, clock.ErrClockNotFound
		}
		return clock.Clock{}, fmt.Errorf("failed to get clock record by ID: %w", err)
	}
	return c, nil
}

// GetLatest implements clock.ClockRepository.
func (r *clockRepositoryImpl) GetLatest(ctx context.Context, userID string) (*clock.Clock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = $1
		ORDER BY at DESC, created_at DESC
		LIMIT 1
	`

	c, err := scanClock(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest clock record: %w", err)
	}
	return &c, nil
}

// ListInRange implements clock.ClockRepository.
func (r *clockRepositoryImpl) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]clock.Clock, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = $1
		  AND at >= $2 AND at < $3
		ORDER BY at ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock records: %w", err)
	}
	return collectClocks(rows)
}

// List implements clock.ClockRepository.
func (r *clockRepositoryImpl) List(ctx context.Context, userID string, rng timemetrics.TimeRange, page, limit int) ([]clock.Clock, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `SELECT COUNT(*) FROM clock_records WHERE user_id = $1 AND at >= $2 AND at < $3`
	if err := q.QueryRow(ctx, countQuery, userID, rng.From, rng.To).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clock records: %w", err)
	}

	if limit <= 0 {
		limit = 50
	}
	page = max(page, 1)
	offset := (page - 1) * limit

	query := `
		SELECT ` + clockColumns + `
		FROM clock_records
		WHERE user_id = $1
		  AND at >= $2 AND at < $3
		ORDER BY at DESC, created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, userID, rng.From, rng.To, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query clock records: %w", err)
	}
	clocks, err := collectClocks(rows)
	if err != nil {
		return nil, 0, err
	}
	return clocks, total, nil
}

// ListStaleOpen implements clock.ClockRepository.
func (r *clockRepositoryImpl) ListStaleOpen(ctx context.Context, cutoff time.Time) ([]clock.StaleOpen, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, at
		FROM (
			SELECT DISTINCT ON (user_id) user_id, kind, at
			FROM clock_records
			ORDER BY user_id, at DESC, created_at DESC
		) latest
		WHERE latest.kind = 'IN'
		  AND latest.at < $1
		ORDER BY latest.at ASC
	`

	rows, err := q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale open sessions: %w", err)
	}
	defer rows.Close()

	var stale []clock.StaleOpen
	for rows.Next() {
		var s clock.StaleOpen
		if err := rows.Scan(&s.UserID, &s.In); err != nil {
			return nil, fmt.Errorf("failed to scan stale open session: %w", err)
		}
		stale = append(stale, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stale, nil
}

// Delete implements clock.ClockRepository.
func (r *clockRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clock_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete clock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return clock.ErrClockNotFound
	}
	return nil
}

// LockUser implements clock.ClockRepository.
func (r *clockRepositoryImpl) LockUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return fmt.Errorf("failed to lock clock records: %w", err)
	}
	return nil
}
