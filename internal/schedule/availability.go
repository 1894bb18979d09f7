package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blockedby/dispatch-os/internal/models"
)

// Window is the effective working window for a technician on a date.
// Times are minutes from midnight; lunch is optional (both -1 when unset).
type Window struct {
	Start      int `json:"start"`
	End        int `json:"end"`
	LunchStart int `json:"lunch_start"`
	LunchEnd   int `json:"lunch_end"`
}

// HasLunch reports whether the window carries a lunch break.
func (w Window) HasLunch() bool {
	return w.LunchStart >= 0 && w.LunchEnd >= 0
}

// ParseClock parses a "HH:MM" time-of-day into minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return h*60 + m, nil
}

// clockOrDefault parses a clock string, falling back when empty or invalid.
func clockOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	m, err := ParseClock(s)
	if err != nil {
		return def
	}
	return m
}

// defaultWindow is the station working window used when a technician
// carries no template at all.
var defaultWindow = Window{
	Start:      WorkingHourFloor * 60,
	End:        WorkingHourCeiling * 60,
	LunchStart: -1,
	LunchEnd:   -1,
}

// OnLeave reports whether the technician has a leave range covering the
// date. Leave endpoints are inclusive.
func OnLeave(tech *models.Technician, date time.Time) bool {
	for _, l := range tech.Meta.Leaves {
		if l.Contains(date) {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether a technician can take work on a date under
// the given view. A full-day-off override or a covering leave range always
// removes the day. Weekends only count as non-working when the view hides
// them and the technician has no override for that weekday; an explicit
// enabled override wins over the view's weekend setting.
func IsWorkingDay(tech *models.Technician, date time.Time, view CalendarView) bool {
	if ov, ok := tech.Meta.Days[date.Weekday()]; ok && ov.Enabled {
		if ov.FullDayOff {
			return false
		}
		if OnLeave(tech, date) {
			return false
		}
		return true
	}
	if OnLeave(tech, date) {
		return false
	}
	if !view.IncludeWeekends && isWeekend(date) {
		return false
	}
	return true
}

// WorkingWindow returns the effective working window for a technician on
// a date: the weekday override when one is enabled, otherwise the
// metadata working-hours override, otherwise the directory template. A
// full-day-off override yields a zero-length window.
func WorkingWindow(tech *models.Technician, date time.Time) Window {
	base := defaultWindow
	if tech.WorkingHours.Start != "" {
		base.Start = clockOrDefault(tech.WorkingHours.Start, base.Start)
		base.End = clockOrDefault(tech.WorkingHours.End, base.End)
	}
	if wh := tech.Meta.WorkingHours; wh != nil {
		base.Start = clockOrDefault(wh.Start, base.Start)
		base.End = clockOrDefault(wh.End, base.End)
	}

	ov, ok := tech.Meta.Days[date.Weekday()]
	if !ok || !ov.Enabled {
		return base
	}
	if ov.FullDayOff {
		return Window{Start: base.Start, End: base.Start, LunchStart: -1, LunchEnd: -1}
	}

	w := Window{
		Start:      clockOrDefault(ov.Start, base.Start),
		End:        clockOrDefault(ov.End, base.End),
		LunchStart: -1,
		LunchEnd:   -1,
	}
	if ov.LunchStart != "" && ov.LunchEnd != "" {
		w.LunchStart = clockOrDefault(ov.LunchStart, -1)
		w.LunchEnd = clockOrDefault(ov.LunchEnd, -1)
		if w.LunchStart < 0 || w.LunchEnd < 0 {
			w.LunchStart, w.LunchEnd = -1, -1
		}
	}
	return w
}
