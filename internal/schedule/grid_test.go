package schedule

import (
	"testing"
	"time"
)

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		zoom      ZoomLevel
		hourWidth int
		label     LabelMode
	}{
		{ZoomXS, 20, LabelNone},
		{ZoomS, 30, LabelSparse},
		{ZoomM, 40, LabelSparse},
		{ZoomL, 60, LabelFull},
		{ZoomXL, 80, LabelFull},
		{ZoomXXL, 120, LabelFull},
	}

	for _, tt := range tests {
		d := GridDimensions(tt.zoom)
		if d.HourColumnWidth != tt.hourWidth {
			t.Errorf("zoom %s: hour width = %d, want %d", tt.zoom, d.HourColumnWidth, tt.hourWidth)
		}
		if d.LabelMode != tt.label {
			t.Errorf("zoom %s: label mode = %s, want %s", tt.zoom, d.LabelMode, tt.label)
		}
		if d.DayColumnWidth != d.HourColumnWidth*(WorkingHourCeiling-WorkingHourFloor) {
			t.Errorf("zoom %s: day width %d does not span the working window", tt.zoom, d.DayColumnWidth)
		}
	}
}

func TestGridDimensions_UnknownFallsBackToMedium(t *testing.T) {
	if got := GridDimensions("giant"); got != GridDimensions(ZoomM) {
		t.Errorf("unknown zoom = %+v, want medium", got)
	}
}

func TestBlockFor(t *testing.T) {
	dims := GridDimensions(ZoomM) // 40px per hour

	tests := []struct {
		name     string
		start    time.Time
		duration int
		left     int
		width    int
	}{
		{
			name:     "nine o'clock, one hour past floor",
			start:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local),
			duration: 180,
			left:     40,
			width:    120,
		},
		{
			name:     "half hour offset",
			start:    time.Date(2024, 6, 10, 10, 30, 0, 0, time.Local),
			duration: 60,
			left:     100,
			width:    40,
		},
		{
			name:     "before working floor clamps to zero",
			start:    time.Date(2024, 6, 10, 6, 0, 0, 0, time.Local),
			duration: 120,
			left:     0,
			width:    80,
		},
		{
			name:     "short job gets minimum render width",
			start:    time.Date(2024, 6, 10, 8, 0, 0, 0, time.Local),
			duration: 15,
			left:     0,
			width:    MinRenderWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BlockFor(tt.start, tt.duration, dims)
			if got.Left != tt.left || got.Width != tt.width {
				t.Errorf("BlockFor() = %+v, want left=%d width=%d", got, tt.left, tt.width)
			}
		})
	}
}

func TestCalendarView_Days(t *testing.T) {
	// Monday 2024-06-10
	base := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

	v := DefaultCalendarView()
	days := v.Days(base)
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	if days[0].Day() != 10 || days[2].Day() != 12 {
		t.Errorf("days = %v, want Mon..Wed", days)
	}

	// Friday start skips the weekend when weekends are hidden
	fri := time.Date(2024, 6, 14, 0, 0, 0, 0, time.Local)
	days = v.Days(fri)
	if days[1].Weekday() != time.Monday {
		t.Errorf("second visible day = %s, want Monday", days[1].Weekday())
	}

	v.IncludeWeekends = true
	days = v.Days(fri)
	if days[1].Weekday() != time.Saturday {
		t.Errorf("with weekends, second day = %s, want Saturday", days[1].Weekday())
	}
}
