package stats

import "math"

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns part/whole*100 rounded to the nearest integer and clamped to
// [0, 100]. A non-positive whole yields 0.
func Percent(part, whole float64) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	p := int(math.Round(part / whole * 100))
	return min(max(p, 0), 100)
}
