package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
)

func testTech() *models.Technician {
	return &models.Technician{
		ID:        uuid.New(),
		FirstName: "Iris",
		LastName:  "Tanaka",
		Status:    models.TechStatusAvailable,
		WorkingHours: models.WorkingHours{
			Start: "08:00", End: "17:00",
		},
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"17:30", 1050, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8", 0, true},
		{"aa:bb", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIsWorkingDay_Weekends(t *testing.T) {
	tech := testTech()
	view := DefaultCalendarView() // weekends hidden

	sat := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)
	mon := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	if IsWorkingDay(tech, sat, view) {
		t.Error("saturday should be non-working when the view hides weekends")
	}
	if !IsWorkingDay(tech, mon, view) {
		t.Error("monday should be a working day")
	}

	// an explicit enabled override wins over the weekend setting
	tech.Meta.Days = map[time.Weekday]models.DayOverride{
		time.Saturday: {Enabled: true, Start: "10:00", End: "14:00"},
	}
	if !IsWorkingDay(tech, sat, view) {
		t.Error("saturday override should make the day working")
	}

	view.IncludeWeekends = true
	tech.Meta.Days = nil
	if !IsWorkingDay(tech, sat, view) {
		t.Error("saturday should be working when the view shows weekends")
	}
}

func TestIsWorkingDay_FullDayOffAndLeave(t *testing.T) {
	tech := testTech()
	view := DefaultCalendarView()
	mon := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	tech.Meta.Days = map[time.Weekday]models.DayOverride{
		time.Monday: {Enabled: true, Start: "09:00", End: "15:00", FullDayOff: true},
	}
	if IsWorkingDay(tech, mon, view) {
		t.Error("full day off must remove the day regardless of override hours")
	}

	tech.Meta.Days = nil
	tech.Meta.Leaves = []models.LeaveRange{
		{
			Start: time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local),
			End:   time.Date(2024, 6, 12, 0, 0, 0, 0, time.Local),
			Type:  models.LeaveVacation,
		},
	}
	if IsWorkingDay(tech, mon, view) {
		t.Error("leave range start day should be non-working")
	}
	// inclusive end
	wed := time.Date(2024, 6, 12, 23, 0, 0, 0, time.Local)
	if IsWorkingDay(tech, wed, view) {
		t.Error("leave range end day should be non-working")
	}
	thu := time.Date(2024, 6, 13, 0, 0, 0, 0, time.Local)
	if !IsWorkingDay(tech, thu, view) {
		t.Error("day after leave should be working")
	}
}

func TestWorkingWindow(t *testing.T) {
	tech := testTech()
	mon := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)

	// template fallback
	w := WorkingWindow(tech, mon)
	if w.Start != 480 || w.End != 1020 {
		t.Errorf("template window = %+v, want 480..1020", w)
	}
	if w.HasLunch() {
		t.Error("template window should carry no lunch")
	}

	// weekday override with lunch
	tech.Meta.Days = map[time.Weekday]models.DayOverride{
		time.Monday: {
			Enabled: true,
			Start:   "09:00", End: "15:00",
			LunchStart: "12:00", LunchEnd: "12:30",
		},
	}
	w = WorkingWindow(tech, mon)
	if w.Start != 540 || w.End != 900 {
		t.Errorf("override window = %+v, want 540..900", w)
	}
	if !w.HasLunch() || w.LunchStart != 720 || w.LunchEnd != 750 {
		t.Errorf("lunch = %d..%d, want 720..750", w.LunchStart, w.LunchEnd)
	}

	// other weekdays keep the template
	tue := mon.AddDate(0, 0, 1)
	w = WorkingWindow(tech, tue)
	if w.Start != 480 || w.End != 1020 {
		t.Errorf("tuesday window = %+v, want template", w)
	}

	// full day off yields a zero-length window
	tech.Meta.Days[time.Monday] = models.DayOverride{Enabled: true, FullDayOff: true}
	w = WorkingWindow(tech, mon)
	if w.Start != w.End {
		t.Errorf("full day off window = %+v, want zero length", w)
	}

	// metadata working-hours override beats the directory template
	tech.Meta.Days = nil
	tech.Meta.WorkingHours = &models.WorkingHours{Start: "07:00", End: "12:00"}
	w = WorkingWindow(tech, mon)
	if w.Start != 420 || w.End != 720 {
		t.Errorf("meta window = %+v, want 420..720", w)
	}
}
