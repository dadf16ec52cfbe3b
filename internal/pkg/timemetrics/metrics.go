package timemetrics

import (
	"math"
	"time"
)

// ComputeTimeMetrics aggregates worked time, lateness and absence for a week.
//
// todayKey is resolved in the location of weekRange.From. An unparseable
// todayKey yields BaseTodaySeconds = 0.
func ComputeTimeMetrics(sessions []ClockSession, absenceEvents []PlanningEvent, weekRange TimeRange, todayKey DayKey) TimeMetrics {
	var m TimeMetrics

	if today, ok := todayKey.Range(weekRange.Location()); ok {
		m.BaseTodaySeconds = TotalOverlapSeconds(sessions, today)
	}
	m.TotalWorkedSeconds = TotalOverlapSeconds(sessions, weekRange)
	m.LateDays = CountLateDays(FirstStartPerDay(sessions))
	m.AbsenceHours = ComputeAbsenceHours(absenceEvents, weekRange)

	weekDays := CountWeekdays(weekRange)
	expectedHours := float64(weekDays * HoursPerDay)

	if expectedHours > 0 {
		m.PresencePct = ClampPct(float64(m.TotalWorkedSeconds) / 3600 / expectedHours * 100)
		m.AbsencePct = ClampPct(m.AbsenceHours / expectedHours * 100)
	}
	if weekDays > 0 {
		m.LatenessPct = ClampPct(float64(m.LateDays) / float64(weekDays) * 100)
	}
	return m
}

// CountWeekdays counts Monday to Friday calendar days in [From, To).
func CountWeekdays(r TimeRange) int {
	if !r.To.After(r.From) {
		return 0
	}
	loc := r.Location()
	count := 0
	day := time.Date(r.From.Year(), r.From.Month(), r.From.Day(), 0, 0, 0, 0, loc)
	if day.Before(r.From) {
		day = day.AddDate(0, 0, 1)
	}
	for ; day.Before(r.To); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// ClampPct rounds v to the nearest integer inside [0, 100]. NaN and
// infinities become 0.
func ClampPct(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}

// WeekRange returns [Monday 00:00, next Monday 00:00) of the week holding t,
// in t's location.
func WeekRange(t time.Time) TimeRange {
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return TimeRange{From: monday, To: monday.AddDate(0, 0, 7)}
}
