// Package timemetrics rebuilds work sessions from raw clock events and derives
// presence, lateness and absence figures from them.
//
// Every function in this package is pure: inputs are never mutated and the
// current time is never read, so callers pass the day and week they care about.
package timemetrics

import "time"

const (
	// LatenessThresholdMinutes is 09:05 expressed in minutes after midnight.
	LatenessThresholdMinutes = 9*60 + 5

	// HoursPerDay is the number of expected work hours in a weekday.
	HoursPerDay = 8

	dayKeyLayout = "2006-01-02"
)

type ClockKind string

const (
	ClockIn  ClockKind = "IN"
	ClockOut ClockKind = "OUT"
)

// ClockRecord is a single badge event.
type ClockRecord struct {
	ID   string
	Kind ClockKind
	At   time.Time
}

// ClockSession is a closed work interval, Start <= End.
type ClockSession struct {
	Start time.Time
	End   time.Time
}

// Duration returns the session length.
func (s ClockSession) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// OpenSession is an IN with no later OUT.
type OpenSession struct {
	Start time.Time
}

// DayKey identifies a calendar day as "YYYY-MM-DD".
type DayKey string

// DayKeyOf returns the day key of t in t's own location.
func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// Parse returns local midnight of the key in loc.
func (k DayKey) Parse(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dayKeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Range returns [midnight, next midnight) for the key in loc.
func (k DayKey) Range(loc *time.Location) (TimeRange, bool) {
	start, ok := k.Parse(loc)
	if !ok {
		return TimeRange{}, false
	}
	return TimeRange{From: start, To: start.AddDate(0, 0, 1)}, true
}

// SessionAnalysis is the output of BuildSessions.
type SessionAnalysis struct {
	Sessions      []ClockSession
	OpenSession   *OpenSession
	FirstInPerDay map[DayKey]time.Time
}

// TimeRange is the half-open interval [From, To).
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t lies in [From, To).
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.To)
}

// Location is the location used to interpret day keys against the range.
func (r TimeRange) Location() *time.Location {
	return r.From.Location()
}

type Period string

const (
	PeriodAM      Period = "AM"
	PeriodPM      Period = "PM"
	PeriodFullDay Period = "FULL_DAY"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

// PlanningEvent is a planned absence for a whole day or a half day.
// A nil Status counts as approved.
type PlanningEvent struct {
	Date   DayKey
	Period Period
	Status *ApprovalStatus
}

// TimeMetrics is the aggregate produced by ComputeTimeMetrics.
type TimeMetrics struct {
	BaseTodaySeconds   int64   `json:"base_today_seconds"`
	TotalWorkedSeconds int64   `json:"total_worked_seconds"`
	LateDays           int     `json:"late_days"`
	AbsenceHours       float64 `json:"absence_hours"`
	PresencePct        int     `json:"presence_pct"`
	AbsencePct         int     `json:"absence_pct"`
	LatenessPct        int     `json:"lateness_pct"`
}
