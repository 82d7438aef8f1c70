// Package timefmt converts between logged seconds and the "<H>h <M>m" display
// strings used by worklog reports.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSeconds renders a duration as "0h", "{H}h" or "{H}h {M}m".
// Seconds inside the last minute are truncated.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	if hours == 0 && minutes == 0 {
		return "0h"
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// ParseHours converts a display string back into fractional hours.
// Unparsable components count as zero, so garbage yields 0 rather than an error.
// The conversion is lossy: seconds within a minute were dropped by FormatSeconds.
func ParseHours(display string) float64 {
	h, m := split(display)
	return float64(h) + float64(m)/60
}

// SumDisplay adds display strings together and renders the total as
// "{H}h {M}m", carrying whole hours out of the minute column.
func SumDisplay(values []string) string {
	var hours, minutes int
	for _, v := range values {
		h, m := split(v)
		hours += h
		minutes += m
	}
	hours += minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func split(display string) (int, int) {
	s := strings.ToLower(strings.TrimSpace(display))
	if s == "" {
		return 0, 0
	}

	hourPart, minutePart := "", s
	if idx := strings.Index(s, "h"); idx >= 0 {
		hourPart = s[:idx]
		minutePart = s[idx+1:]
	} else if !strings.Contains(s, "m") {
		// A bare number is read as hours.
		hourPart, minutePart = s, ""
	}

	minutePart = strings.TrimSuffix(strings.TrimSpace(minutePart), "m")
	return leadingInt(hourPart), leadingInt(minutePart)
}

// leadingInt parses the integer prefix of s, returning 0 when there is none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
