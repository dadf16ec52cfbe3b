package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/domain/planning"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type planningRepositoryImpl struct {
	db *database.DB
}

func NewPlanningRepository(db *database.DB) planning.PlanningRepository {
	return &planningRepositoryImpl{db: db}
}

const planningColumns = `id, user_id, date, period, status, reason, review_note, reviewed_by, reviewed_at, created_at, updated_at`

func scanPlanning(row pgx.Row) (planning.Planning, error) {
	var p planning.Planning
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Date,
		&p.Period,
		&p.Status,
		&p.Reason,
		&p.ReviewNote,
		&p.ReviewedBy,
		&p.ReviewedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func collectPlannings(rows pgx.Rows) ([]planning.Planning, error) {
	defer rows.Close()

	plannings := make([]planning.Planning, 0)
	for rows.Next() {
		p, err := scanPlanning(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planning: %w", err)
		}
		plannings = append(plannings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plannings, nil
}

// Create implements planning.PlanningRepository.
func (r *planningRepositoryImpl) Create(ctx context.Context, p planning.Planning) (planning.Planning, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return planning.Planning{}, fmt.Errorf("failed to generate planning id: %w", err)
	}
	p.ID = id.String()
	if p.Status == "" {
		p.Status = planning.StatusPending
	}

	query := `
		INSERT INTO plannings (id, user_id, date, period, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		p.ID,
		p.UserID,
		p.Date,
		string(p.Period),
		string(p.Status),
		p.Reason,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return planning.Planning{}, fmt.Errorf("failed to create planning: %w", err)
	}

	return p, nil
}

// GetByID implements planning.PlanningRepository.
func (r *planningRepositoryImpl) GetByID(ctx context.Context, id string) (planning.Planning, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate implements planning.PlanningRepository.
func (r *planningRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (planning.Planning, error) {
	return r.getByID(ctx, id, true)
}

func (r *planningRepositoryImpl) getByID(ctx context.Context, id string, lock bool) (planning.Planning, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planningColumns + ` FROM plannings WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	p, err := scanPlanning(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return planning.Planning{}, planning.ErrPlanningNotFound
		}
		return planning.Planning{}, fmt.Errorf("failed to get planning by ID: %w", err)
	}
	return p, nil
}

// ListByUserAndDate implements planning.PlanningRepository.
func (r *planningRepositoryImpl) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]planning.Planning, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + planningColumns + `
		FROM plannings
		WHERE user_id = $1 AND date = $2 AND status <> 'REJECTED'
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query plannings by date: %w", err)
	}
	return collectPlannings(rows)
}

// ListInRange implements planning.PlanningRepository.
func (r *planningRepositoryImpl) ListInRange(ctx context.Context, userID string, from, to time.Time) ([]planning.Planning, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + planningColumns + `
		FROM plannings
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date ASC, period ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query plannings in range: %w", err)
	}
	return collectPlannings(rows)
}

// List implements planning.PlanningRepository.
func (r *planningRepositoryImpl) List(ctx context.Context, userID string, filter planning.PlanningFilter) ([]planning.Planning, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"user_id = $1"}
	args := []any{userID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM plannings ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count plannings: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT %s
		FROM plannings
		%s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, planningColumns, whereClause, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query plannings: %w", err)
	}
	plannings, err := collectPlannings(rows)
	if err != nil {
		return nil, 0, err
	}
	return plannings, total, nil
}

// UpdateReview implements planning.PlanningRepository.
func (r *planningRepositoryImpl) UpdateReview(ctx context.Context, p planning.Planning) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE plannings
		SET status = $1, review_note = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
		WHERE id = $5
	`
	tag, err := q.Exec(ctx, query, string(p.Status), p.ReviewNote, p.ReviewedBy, p.ReviewedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update planning review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrPlanningNotFound
	}
	return nil
}

// Delete implements planning.PlanningRepository.
func (r *planningRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM plannings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete planning: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return planning.ErrPlanningNotFound
	}
	return nil
}

// LockUser implements planning.PlanningRepository.
func (r *planningRepositoryImpl) LockUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	// Keyed apart from the clock lock of the same user.
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('planning:' || $1))`, userID); err != nil {
		return fmt.Errorf("failed to lock plannings: %w", err)
	}
	return nil
}
