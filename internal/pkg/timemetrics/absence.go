package timemetrics

// ComputeAbsenceHours converts the approved planning events falling inside r
// into hours. Half days count for 0.5 day, anything else for a full day.
// Dates that do not parse are skipped.
func ComputeAbsenceHours(events []PlanningEvent, r TimeRange) float64 {
	loc := r.Location()
	units := 0.0
	for _, ev := range events {
		date, ok := ev.Date.Parse(loc)
		if !ok || !r.Contains(date) {
			continue
		}
		if ev.Status != nil && *ev.Status != StatusApproved {
			continue
		}
		units += absenceUnits(ev.Period)
	}
	return units * HoursPerDay
}

func absenceUnits(p Period) float64 {
	switch p {
	case PeriodAM, PeriodPM:
		return 0.5
	default:
		return 1.0
	}
}
