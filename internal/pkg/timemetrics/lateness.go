package timemetrics

import "time"

// CountLateDays counts the days whose first clock-in is after 09:05 local time.
func CountLateDays(firstInPerDay map[DayKey]time.Time) int {
	late := 0
	for _, at := range firstInPerDay {
		if IsLate(at) {
			late++
		}
	}
	return late
}

// IsLate reports whether t's wall-clock minute is past the lateness threshold.
func IsLate(t time.Time) bool {
	return t.Hour()*60+t.Minute() > LatenessThresholdMinutes
}
