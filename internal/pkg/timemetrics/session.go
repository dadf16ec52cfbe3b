package timemetrics

import (
	"slices"
	"time"
)

// BuildSessions pairs clock events into sessions.
//
// Records are sorted on a copy. An IN replaces any IN still waiting for its OUT,
// and an OUT with nothing open is dropped. FirstInPerDay keeps the earliest IN of
// each day whether or not that IN was ever closed.
func BuildSessions(records []ClockRecord) SessionAnalysis {
	analysis := SessionAnalysis{
		Sessions:      make([]ClockSession, 0, len(records)/2),
		FirstInPerDay: make(map[DayKey]time.Time),
	}
	if len(records) == 0 {
		return analysis
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b ClockRecord) int {
		return a.At.Compare(b.At)
	})

	var openStart *time.Time
	for _, rec := range sorted {
		switch rec.Kind {
		case ClockIn:
			at := rec.At
			openStart = &at

			day := DayKeyOf(rec.At)
			if first, ok := analysis.FirstInPerDay[day]; !ok || rec.At.Before(first) {
				analysis.FirstInPerDay[day] = rec.At
			}
		case ClockOut:
			if openStart == nil {
				continue
			}
			analysis.Sessions = append(analysis.Sessions, ClockSession{Start: *openStart, End: rec.At})
			openStart = nil
		}
	}

	if openStart != nil {
		analysis.OpenSession = &OpenSession{Start: *openStart}
	}
	return analysis
}

// FirstStartPerDay returns the earliest session start of each day.
func FirstStartPerDay(sessions []ClockSession) map[DayKey]time.Time {
	first := make(map[DayKey]time.Time, len(sessions))
	for _, s := range sessions {
		day := DayKeyOf(s.Start)
		if cur, ok := first[day]; !ok || s.Start.Before(cur) {
			first[day] = s.Start
		}
	}
	return first
}
