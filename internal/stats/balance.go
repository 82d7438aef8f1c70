package stats

import (
	"time"

	"worklog-insights/internal/daterange"
	"worklog-insights/internal/worklog"
)

// DefaultWorkdayHours is the standard workday used when none is configured.
const DefaultWorkdayHours = 8.0

// Classification is the outcome of comparing a day's hours to the workday.
type Classification int

const (
	Neither Classification = iota
	Overtime
	Undertime
)

func (c Classification) String() string {
	switch c {
	case Overtime:
		return "overtime"
	case Undertime:
		return "undertime"
	default:
		return "neither"
	}
}

// Classify places a day's total against threshold. Exactly the threshold, or
// no hours at all, is neither.
func Classify(hours, threshold float64) Classification {
	switch {
	case hours > threshold:
		return Overtime
	case hours > 0 && hours < threshold:
		return Undertime
	default:
		return Neither
	}
}

// OvertimeRecord is one actor-day above the workday threshold.
type OvertimeRecord struct {
	Actor       string  `json:"resource"`
	Date        string  `json:"date"`
	ExcessHours float64 `json:"overtimeHours"`
	TotalHours  float64 `json:"totalHours"`
}

// UndertimeRecord is one actor-day below the workday threshold.
type UndertimeRecord struct {
	Actor        string  `json:"resource"`
	Date         string  `json:"date"`
	DeficitHours float64 `json:"undertimeHours"`
	TotalHours   float64 `json:"totalHours"`
}

// DailyBalance holds the actor-days that missed the workday either way.
type DailyBalance struct {
	Overtime  []OvertimeRecord
	Undertime []UndertimeRecord
}

// OvertimeParams configures DailyHoursBalance.
type OvertimeParams struct {
	Threshold float64
	Actor     worklog.ActorFunc
	Location  *time.Location
}

// DailyHoursBalance sums hours per (day, actor) and classifies each group.
// Records come out in the order their group was first seen.
func DailyHoursBalance(entries []worklog.Entry, p OvertimeParams) DailyBalance {
	if p.Threshold <= 0 {
		p.Threshold = DefaultWorkdayHours
	}
	if p.Actor == nil {
		p.Actor = worklog.ByUpdater
	}

	type group struct {
		day, actor string
		hours      float64
	}
	idx := make(map[[2]string]int)
	var groups []group

	for _, e := range entries {
		key := [2]string{daterange.DayKey(e.LoggedAt, p.Location), p.Actor(e)}
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, group{day: key[0], actor: key[1]})
		}
		groups[i].hours += e.Hours()
	}

	res := DailyBalance{Overtime: []OvertimeRecord{}, Undertime: []UndertimeRecord{}}
	for _, g := range groups {
		switch Classify(g.hours, p.Threshold) {
		case Overtime:
			res.Overtime = append(res.Overtime, OvertimeRecord{
				Actor: g.actor, Date: g.day, ExcessHours: g.hours - p.Threshold, TotalHours: g.hours,
			})
		case Undertime:
			res.Undertime = append(res.Undertime, UndertimeRecord{
				Actor: g.actor, Date: g.day, DeficitHours: p.Threshold - g.hours, TotalHours: g.hours,
			})
		}
	}
	return res
}
