package planning

import (
	"context"
	"time"
)

// PlanningRepository defines data access for the plannings table.
type PlanningRepository interface {
	Create(ctx context.Context, p Planning) (Planning, error)

	// GetByID returns ErrPlanningNotFound when missing.
	GetByID(ctx context.Context, id string) (Planning, error)

	// GetByIDForUpdate locks the row; call inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Planning, error)

	// ListByUserAndDate returns the non-rejected plannings of a user on one day.
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]Planning, error)

	// ListInRange returns plannings with from <= date < to, any status.
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]Planning, error)

	// List returns a page of plannings for the filter plus the total count.
	List(ctx context.Context, userID string, filter PlanningFilter) ([]Planning, int64, error)

	UpdateReview(ctx context.Context, p Planning) error
	Delete(ctx context.Context, id string) error

	// LockUser serializes planning requests of one user until the
	// surrounding transaction ends.
	LockUser(ctx context.Context, userID string) error
}
