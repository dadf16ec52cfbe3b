package clock

import (
	"context"
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
)

// ClockRepository defines data access for clock_records.
type ClockRepository interface {
	// Create stores a record and fills ID and CreatedAt.
	Create(ctx context.Context, c Clock) (Clock, error)

	// GetByID returns ErrClockNotFound when missing.
	GetByID(ctx context.Context, id string) (Clock, error)

	// GetLatest returns the most recent record of the user, or nil.
	GetLatest(ctx context.Context, userID string) (*Clock, error)

	// ListInRange returns every record of the user with from <= at < to, ordered by at.
	ListInRange(ctx context.Context, userID string, from, to time.Time) ([]Clock, error)

	// List returns a page of the records inside rng, newest first, plus the
	// total count of the range.
	List(ctx context.Context, userID string, rng timemetrics.TimeRange, page, limit int) ([]Clock, int64, error)

	// ListStaleOpen returns users whose latest record is an IN before cutoff.
	ListStaleOpen(ctx context.Context, cutoff time.Time) ([]StaleOpen, error)

	Delete(ctx context.Context, id string) error

	// LockUser serializes clock writes of one user until the surrounding
	// transaction ends.
	LockUser(ctx context.Context, userID string) error
}
