package dashboard

import "github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"

// ========== METRICS (Top Cards + Pie Chart) ==========

// MetricsResponse is the weekly time-tracking summary of one user
type MetricsResponse struct {
	UserID     string                  `json:"user_id"`
	WeekStart  string                  `json:"week_start"` // Monday, "2006-01-02"
	WeekEnd    string                  `json:"week_end"`   // Sunday, "2006-01-02"
	Today      string                  `json:"today"`
	Metrics    timemetrics.TimeMetrics `json:"metrics"`
	TodayHours string                  `json:"today_hours"` // Format: "7h 30m"
	WeekHours  string                  `json:"week_hours"`  // Format: "32h 10m"
	OnTheClock bool                    `json:"on_the_clock"`
	Chart      ChartResponse           `json:"chart"`
}

// ChartResponse holds the normalized pie chart values, summing to at most 100
type ChartResponse struct {
	Presence int   `json:"presence"`
	Lateness int   `json:"lateness"`
	Absence  int   `json:"absence"`
	Series   []int `json:"series"` // [presence, lateness, absence]
}

// ========== WORK HOURS CHART (Bar Chart) ==========

// WorkHoursChartResponse represents daily work hours for a week
type WorkHoursChartResponse struct {
	UserID           string              `json:"user_id"`
	WeekStart        string              `json:"week_start"`
	TotalWorkHours   string              `json:"total_work_hours"`   // Format: "40h 12m"
	TotalWorkSeconds int64               `json:"total_work_seconds"` // Total seconds
	DailyWorkHours   []DailyWorkHourItem `json:"daily_work_hours"`
}

// DailyWorkHourItem represents work hours for a single day
type DailyWorkHourItem struct {
	Date        string `json:"date"`     // Format: "2006-01-02"
	DayName     string `json:"day_name"` // "Monday", "Tuesday", etc
	WorkHours   string `json:"work_hours"`
	WorkSeconds int64  `json:"work_seconds"`
	Late        bool   `json:"late"`
}
