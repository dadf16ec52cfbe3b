package clock

import (
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Kind      string `json:"kind"`
	At        string `json:"at"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

func NewClockResponse(c Clock, loc *time.Location) ClockResponse {
	return ClockResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Kind:      string(c.Kind),
		At:        c.At.In(loc).Format(time.RFC3339),
		Source:    string(c.Source),
		CreatedAt: c.CreatedAt.In(loc).Format(time.RFC3339),
	}
}

type ListClockResponse struct {
	Clocks     []ClockResponse `json:"clocks"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type StatusResponse struct {
	UserID         string         `json:"user_id"`
	OnTheClock     bool           `json:"on_the_clock"`
	Since          *string        `json:"since,omitempty"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	LastClock      *ClockResponse `json:"last_clock,omitempty"`
}

type SessionResponse struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type OpenSessionResponse struct {
	Start string `json:"start"`
}

type SessionsResponse struct {
	UserID             string               `json:"user_id"`
	StartDate          string               `json:"start_date"`
	EndDate            string               `json:"end_date"`
	Sessions           []SessionResponse    `json:"sessions"`
	OpenSession        *OpenSessionResponse `json:"open_session,omitempty"`
	TotalWorkedSeconds int64                `json:"total_worked_seconds"`
	WorkHours          string               `json:"work_hours"`
}

// ClockFilter selects records by inclusive local date range.
type ClockFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultRangeDays is the window used when no start date is given.
const DefaultRangeDays = 7

func (f *ClockFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 500",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range resolves the filter into a half-open range in loc. The end date is
// inclusive; missing bounds default to the DefaultRangeDays days ending today.
func (f *ClockFilter) Range(now time.Time, loc *time.Location) timemetrics.TimeRange {
	today := timemetrics.DayKeyOf(now.In(loc))
	todayStart, _ := today.Parse(loc)

	to := todayStart.AddDate(0, 0, 1)
	if f.EndDate != nil && *f.EndDate != "" {
		if end, ok := timemetrics.DayKey(*f.EndDate).Parse(loc); ok {
			to = end.AddDate(0, 0, 1)
		}
	}

	from := to.AddDate(0, 0, -DefaultRangeDays)
	if f.StartDate != nil && *f.StartDate != "" {
		if start, ok := timemetrics.DayKey(*f.StartDate).Parse(loc); ok {
			from = start
		}
	}
	return timemetrics.TimeRange{From: from, To: to}
}
