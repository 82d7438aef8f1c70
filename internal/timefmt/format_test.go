package timefmt

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0h"},
		{59, "0h"},
		{60, "0h 1m"},
		{3600, "1h"},
		{3659, "1h"},
		{5400, "1h 30m"},
		{9000, "2h 30m"},
		{36000, "10h"},
		{-120, "0h"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1h 30m", 1.5},
		{"2h", 2},
		{"0h", 0},
		{"45m", 0.75},
		{"", 0},
		{"garbage", 0},
		{"xh ym", 0},
		{"3h junk", 3},
		{"  2h  15m ", 2.25},
		{"12abc", 12},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseHours(tt.input); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseHours(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSumDisplay(t *testing.T) {
	got := SumDisplay([]string{"1h 45m", "2h 30m", "0h", "20m"})
	if got != "4h 35m" {
		t.Errorf("SumDisplay() = %q, want %q", got, "4h 35m")
	}
	if got := SumDisplay(nil); got != "0h 0m" {
		t.Errorf("SumDisplay(nil) = %q, want %q", got, "0h 0m")
	}
}

func TestRoundTripWholeMinutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minutes := rapid.IntRange(0, 100000).Draw(t, "minutes")
		back := ParseHours(FormatSeconds(minutes*60)) * 60
		if math.Abs(back-float64(minutes)) > 1e-6 {
			t.Fatalf("round trip of %d minutes gave %v", minutes, back)
		}
	})
}
