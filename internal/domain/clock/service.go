package clock

import "context"

// ClockService defines clock-in/clock-out operations for the authenticated user
// and read access for managers.
type ClockService interface {
	// Toggle clocks the caller out when a session is open, in otherwise.
	Toggle(ctx context.Context) (ClockResponse, error)

	ClockIn(ctx context.Context) (ClockResponse, error)
	ClockOut(ctx context.Context) (ClockResponse, error)

	// GetStatus reports whether the caller is currently on the clock.
	GetStatus(ctx context.Context) (StatusResponse, error)

	ListMine(ctx context.Context, filter ClockFilter) (ListClockResponse, error)
	ListForUser(ctx context.Context, userID string, filter ClockFilter) (ListClockResponse, error)

	// GetSessions rebuilds work sessions for a user over the filter's date range.
	GetSessions(ctx context.Context, userID string, filter ClockFilter) (SessionsResponse, error)

	// Delete removes a record (manager correction).
	Delete(ctx context.Context, id string) error

	// AutoCloseStale inserts an OUT for sessions left open longer than the given limit.
	AutoCloseStale(ctx context.Context) (int, error)
}
