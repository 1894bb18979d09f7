package schedule

import (
	"time"
)

// ZoomLevel selects the density of the calendar grid.
type ZoomLevel string

const (
	ZoomXS  ZoomLevel = "xs"
	ZoomS   ZoomLevel = "s"
	ZoomM   ZoomLevel = "m"
	ZoomL   ZoomLevel = "l"
	ZoomXL  ZoomLevel = "xl"
	ZoomXXL ZoomLevel = "xxl"
)

// LabelMode controls how dense the hour labels render at a zoom level.
type LabelMode string

const (
	LabelNone   LabelMode = "none"
	LabelSparse LabelMode = "sparse"
	LabelFull   LabelMode = "full"
)

// Dimensions holds the pixel geometry for one zoom level.
type Dimensions struct {
	DayColumnWidth  int       `json:"day_column_width"`
	HourColumnWidth int       `json:"hour_column_width"`
	LabelMode       LabelMode `json:"label_mode"`
}

// zoomDimensions maps each zoom level to its grid geometry. The day column
// spans the working window (10 hours), so DayColumnWidth = 10*HourColumnWidth.
var zoomDimensions = map[ZoomLevel]Dimensions{
	ZoomXS:  {DayColumnWidth: 200, HourColumnWidth: 20, LabelMode: LabelNone},
	ZoomS:   {DayColumnWidth: 300, HourColumnWidth: 30, LabelMode: LabelSparse},
	ZoomM:   {DayColumnWidth: 400, HourColumnWidth: 40, LabelMode: LabelSparse},
	ZoomL:   {DayColumnWidth: 600, HourColumnWidth: 60, LabelMode: LabelFull},
	ZoomXL:  {DayColumnWidth: 800, HourColumnWidth: 80, LabelMode: LabelFull},
	ZoomXXL: {DayColumnWidth: 1200, HourColumnWidth: 120, LabelMode: LabelFull},
}

// GridDimensions returns the pixel dimensions for a zoom level. Unknown
// levels fall back to medium.
func GridDimensions(zoom ZoomLevel) Dimensions {
	if d, ok := zoomDimensions[zoom]; ok {
		return d
	}
	return zoomDimensions[ZoomM]
}

// Working-hour window of the grid. Jobs can exist outside it; the grid
// clamps them when rendering.
const (
	WorkingHourFloor   = 8
	WorkingHourCeiling = 18
)

// CalendarView is the grid configuration a console renders with.
type CalendarView struct {
	Zoom            ZoomLevel `json:"zoom"`
	DayWindow       int       `json:"day_window"`
	DayOffset       int       `json:"day_offset"`
	IncludeWeekends bool      `json:"include_weekends"`
}

// DefaultCalendarView returns the reference console configuration: a
// 3-day window at medium zoom, weekends hidden.
func DefaultCalendarView() CalendarView {
	return CalendarView{
		Zoom:            ZoomM,
		DayWindow:       3,
		DayOffset:       0,
		IncludeWeekends: false,
	}
}

// Days returns the visible day sequence starting from base shifted by the
// view's offset. Weekends are skipped when the view excludes them.
func (v CalendarView) Days(base time.Time) []time.Time {
	days := make([]time.Time, 0, v.DayWindow)
	d := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	d = d.AddDate(0, 0, v.DayOffset)
	for len(days) < v.DayWindow {
		if v.IncludeWeekends || !isWeekend(d) {
			days = append(days, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MinRenderWidth is the floor for a rendered job block, so very short jobs
// stay clickable.
const MinRenderWidth = 20

// BlockGeometry is a job block's horizontal placement inside a day column.
type BlockGeometry struct {
	Left  int `json:"left"`
	Width int `json:"width"`
}

// BlockFor computes the pixel placement of a scheduled block within its
// technician/day column. Starts before the working-hour floor clamp to
// zero offset; this is a rendering clamp only and does not constrain
// scheduling, so an out-of-window job renders at the column edge rather
// than disappearing.
func BlockFor(start time.Time, durationMinutes int, dims Dimensions) BlockGeometry {
	minutes := start.Hour()*60 + start.Minute()
	offsetHours := float64(minutes)/60.0 - WorkingHourFloor
	if offsetHours < 0 {
		offsetHours = 0
	}
	left := int(offsetHours * float64(dims.HourColumnWidth))

	width := int(float64(durationMinutes) / 60.0 * float64(dims.HourColumnWidth))
	if width < MinRenderWidth {
		width = MinRenderWidth
	}
	return BlockGeometry{Left: left, Width: width}
}
