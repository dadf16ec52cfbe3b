package timemetrics

import (
	"fmt"
	"time"
)

// OverlapSeconds returns how many whole seconds [start, end) shares with r.
func OverlapSeconds(start, end time.Time, r TimeRange) int64 {
	effectiveStart := start
	if r.From.After(effectiveStart) {
		effectiveStart = r.From
	}
	effectiveEnd := end
	if r.To.Before(effectiveEnd) {
		effectiveEnd = r.To
	}
	if !effectiveEnd.After(effectiveStart) {
		return 0
	}
	return int64(effectiveEnd.Sub(effectiveStart) / time.Second)
}

// TotalOverlapSeconds sums OverlapSeconds over every session.
func TotalOverlapSeconds(sessions []ClockSession, r TimeRange) int64 {
	var total int64
	for _, s := range sessions {
		total += OverlapSeconds(s.Start, s.End, r)
	}
	return total
}

// DailyWorkedSeconds splits r into calendar days and returns the worked
// seconds of each one, in order.
func DailyWorkedSeconds(sessions []ClockSession, r TimeRange) []DailyWorked {
	var days []DailyWorked
	loc := r.Location()
	for day := r.From; day.Before(r.To); {
		next := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
		if next.After(r.To) {
			next = r.To
		}
		bucket := TimeRange{From: day, To: next}
		days = append(days, DailyWorked{
			Day:     DayKeyOf(day),
			Seconds: TotalOverlapSeconds(sessions, bucket),
		})
		day = next
	}
	return days
}

// DailyWorked is the worked time of one day.
type DailyWorked struct {
	Day     DayKey
	Seconds int64
}

// FormatHours renders seconds as "Xh Ym".
func FormatHours(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
