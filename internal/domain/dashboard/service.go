package dashboard

import "context"

// DashboardService defines the interface for time-tracking dashboard operations
type DashboardService interface {
	// GetMyMetrics returns the caller's metrics for the week containing weekOf
	// weekOf format: "YYYY-MM-DD" (default: today)
	GetMyMetrics(ctx context.Context, weekOf string) (*MetricsResponse, error)

	// GetUserMetrics returns metrics of any user (manager)
	GetUserMetrics(ctx context.Context, userID, weekOf string) (*MetricsResponse, error)

	// GetMyWorkHoursChart returns the caller's daily work hours for a week
	GetMyWorkHoursChart(ctx context.Context, weekOf string) (*WorkHoursChartResponse, error)

	// GetUserWorkHoursChart returns daily work hours of any user (manager)
	GetUserWorkHoursChart(ctx context.Context, userID, weekOf string) (*WorkHoursChartResponse, error)
}
