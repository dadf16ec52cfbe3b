package timemetrics

import "math"

// NormalizeChartData scales the three percentages down when they add up to
// more than 100 and returns them as [presence, lateness, absence].
//
// Presence and absence are rounded; lateness takes whatever is left so the
// triple never exceeds 100.
func NormalizeChartData(presencePct, absencePct, latenessPct int) [3]int {
	p := float64(presencePct)
	a := float64(absencePct)
	l := float64(latenessPct)

	if sum := p + a + l; sum > 100 {
		scale := 100 / sum
		p *= scale
		a *= scale
	}

	presence := int(math.Round(p))
	absence := int(math.Round(a))
	lateness := max(0, 100-presence-absence)

	return [3]int{presence, lateness, absence}
}
