// Package daterange holds the inclusive reporting window and the calendar
// helpers that every report shares: day keys, working days and zone parsing.
package daterange

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the canonical calendar-day format used in requests and day keys.
const DayLayout = "2006-01-02"

var (
	// ErrInvalidDay is returned when a calendar day is not in YYYY-MM-DD form.
	ErrInvalidDay = errors.New("invalid calendar day")
	// ErrInverted is returned when the start day falls after the end day.
	ErrInverted = errors.New("start day is after end day")
)

// Range is an inclusive reporting window. Start is midnight of the first day
// and End is the last millisecond of the final day, both in Location.
type Range struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// Parse builds a Range from two YYYY-MM-DD strings interpreted in loc.
func Parse(start, end string, loc *time.Location) (Range, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := time.ParseInLocation(DayLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: start %q", ErrInvalidDay, start)
	}
	e, err := time.ParseInLocation(DayLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return Range{}, fmt.Errorf("%w: end %q", ErrInvalidDay, end)
	}
	if s.After(e) {
		return Range{}, fmt.Errorf("%w: %s > %s", ErrInverted, start, end)
	}
	return Normalize(s, e, loc), nil
}

// Normalize pins start to midnight and end to 23:59:59.999 of their days in loc.
func Normalize(start, end time.Time, loc *time.Location) Range {
	if loc == nil {
		loc = time.UTC
	}
	s := start.In(loc)
	e := end.In(loc)
	return Range{
		Start:    time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc),
		End:      time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, int(999*time.Millisecond), loc),
		Location: loc,
	}
}

// Contains reports whether t falls inside the window, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartDay returns the first day as YYYY-MM-DD.
func (r Range) StartDay() string { return r.Start.Format(DayLayout) }

// EndDay returns the last day as YYYY-MM-DD.
func (r Range) EndDay() string { return r.End.Format(DayLayout) }

// DayKey returns the calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}

// CountWorkingDays counts Monday to Friday days in the range. It never
// returns less than 1 so callers can divide by it.
func CountWorkingDays(r Range) int {
	count := 0
	r.eachDay(func(d time.Time) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	})
	if count == 0 {
		return 1
	}
	return count
}

// CalendarDays counts every day in the range, never less than 1.
func CalendarDays(r Range) int {
	count := 0
	r.eachDay(func(time.Time) { count++ })
	if count == 0 {
		return 1
	}
	return count
}

func (r Range) eachDay(fn func(time.Time)) {
	if r.Start.IsZero() || r.End.Before(r.Start) {
		return
	}
	loc := r.Location
	if loc == nil {
		loc = r.Start.Location()
	}
	s := r.Start.In(loc)
	e := r.End.In(loc)
	last := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, loc)
	for d := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, loc); !d.After(last); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// ParseZone resolves "UTC", "Local", a fixed "+HH:MM"/"-HH:MM" offset or an
// IANA zone name.
func ParseZone(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "UTC", "Z":
		return time.UTC, nil
	case "LOCAL":
		return time.Local, nil
	}

	if s[0] == '+' || s[0] == '-' {
		hh, mm, ok := strings.Cut(s[1:], ":")
		if !ok && len(s[1:]) == 4 {
			hh, mm = s[1:3], s[3:]
		} else if !ok {
			mm = "0"
		}
		if !isDigits(hh) || !isDigits(mm) {
			return nil, fmt.Errorf("invalid zone offset %q", s)
		}
		h, err := strconv.Atoi(hh)
		if err != nil || h > 14 {
			return nil, fmt.Errorf("invalid zone offset %q", s)
		}
		m, err := strconv.Atoi(mm)
		if err != nil || m > 59 {
			return nil, fmt.Errorf("invalid zone offset %q", s)
		}
		offset := h*3600 + m*60
		if s[0] == '-' {
			offset = -offset
		}
		return time.FixedZone("UTC"+s, offset), nil
	}

	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", s, err)
	}
	return loc, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
