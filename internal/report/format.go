package report

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Display caps applied during assembly.
const (
	projectHoursLimit     = 15
	projectHoursNameWidth = 25
	allocationLimit       = 10
	allocationNameWidth   = 20
	resourceNameWidth     = 15
)

// truncate shortens s to width runes and appends "..." when it was cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width]) + "..."
}

func newKey() string {
	return uuid.NewString()
}

func hoursCell(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func percentCell(p int) string {
	return fmt.Sprintf("%d%%", p)
}
