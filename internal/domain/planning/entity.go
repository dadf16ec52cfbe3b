package planning

import (
	"time"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
)

type Period = timemetrics.Period

const (
	PeriodAM      = timemetrics.PeriodAM
	PeriodPM      = timemetrics.PeriodPM
	PeriodFullDay = timemetrics.PeriodFullDay
)

type Status = timemetrics.ApprovalStatus

const (
	StatusPending  = timemetrics.StatusPending
	StatusApproved = timemetrics.StatusApproved
	StatusRejected = timemetrics.StatusRejected
)

// Planning is an absence request for a day or a half day.
type Planning struct {
	ID         string
	UserID     string
	Date       time.Time
	Period     Period
	Status     Status
	Reason     *string
	ReviewNote *string
	ReviewedBy *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DayKey returns the planned date as YYYY-MM-DD.
func (p Planning) DayKey() timemetrics.DayKey {
	return timemetrics.DayKey(p.Date.Format("2006-01-02"))
}

// Event converts the row into the engine's input type.
func (p Planning) Event() timemetrics.PlanningEvent {
	status := p.Status
	return timemetrics.PlanningEvent{
		Date:   p.DayKey(),
		Period: p.Period,
		Status: &status,
	}
}

// Events converts rows into engine input.
func Events(plannings []Planning) []timemetrics.PlanningEvent {
	events := make([]timemetrics.PlanningEvent, 0, len(plannings))
	for _, p := range plannings {
		events = append(events, p.Event())
	}
	return events
}

// Overlaps reports whether two periods on the same day collide.
func Overlaps(a, b Period) bool {
	return a == b || a == PeriodFullDay || b == PeriodFullDay
}
