package models

import (
	"time"

	"github.com/google/uuid"
)

// TechnicianStatus represents a technician's dispatch availability state.
type TechnicianStatus string

const (
	TechStatusAvailable    TechnicianStatus = "AVAILABLE"
	TechStatusBusy         TechnicianStatus = "BUSY"
	TechStatusOffline      TechnicianStatus = "OFFLINE"
	TechStatusOnLeave      TechnicianStatus = "ON_LEAVE"
	TechStatusNotWorking   TechnicianStatus = "NOT_WORKING"
	TechStatusOverCapacity TechnicianStatus = "OVER_CAPACITY"
)

// WorkingHours is a daily working window template. Times are local
// time-of-day strings in "HH:MM" form.
type WorkingHours struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// DayOverride customizes a single weekday's working window for one
// technician. A FullDayOff override removes the day entirely, regardless
// of the override's start/end.
type DayOverride struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Start      string `json:"start,omitempty" yaml:"start,omitempty"`
	End        string `json:"end,omitempty" yaml:"end,omitempty"`
	LunchStart string `json:"lunch_start,omitempty" yaml:"lunch_start,omitempty"`
	LunchEnd   string `json:"lunch_end,omitempty" yaml:"lunch_end,omitempty"`
	FullDayOff bool   `json:"full_day_off" yaml:"full_day_off"`
}

// LeaveType classifies a leave range.
type LeaveType string

const (
	LeaveVacation LeaveType = "VACATION"
	LeaveSick     LeaveType = "SICK"
	LeaveTraining LeaveType = "TRAINING"
	LeaveOther    LeaveType = "OTHER"
)

// LeaveRange is a date interval during which a technician is unavailable.
// Both endpoints are inclusive.
type LeaveRange struct {
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Reason string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Type   LeaveType `json:"type" yaml:"type"`
}

// Contains reports whether the given date falls inside the range.
// Comparison is by calendar day, so a leave ending today still covers
// any time on that day.
func (l LeaveRange) Contains(date time.Time) bool {
	d := truncateDay(date)
	return !d.Before(truncateDay(l.Start)) && !d.After(truncateDay(l.End))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TechnicianMeta is the mutable per-technician scheduling metadata blob,
// addressed by technician id.
type TechnicianMeta struct {
	ScheduleNote string                       `json:"schedule_note,omitempty" yaml:"schedule_note,omitempty"`
	Status       *TechnicianStatus            `json:"status,omitempty" yaml:"status,omitempty"`
	WorkingHours *WorkingHours                `json:"working_hours,omitempty" yaml:"working_hours,omitempty"`
	Days         map[time.Weekday]DayOverride `json:"days,omitempty" yaml:"days,omitempty"`
	Leaves       []LeaveRange                 `json:"leaves,omitempty" yaml:"leaves,omitempty"`
}

// Technician represents a dispatchable field-service worker.
type Technician struct {
	ID        uuid.UUID        `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Contact   string           `json:"contact"`
	Skills    []string         `json:"skills"`
	Status    TechnicianStatus `json:"status"`

	// default daily template; per-day overrides live in Meta
	WorkingHours WorkingHours `json:"working_hours"`

	Meta TechnicianMeta `json:"meta"`
}

// FullName returns the technician's display name.
func (t *Technician) FullName() string {
	return t.FirstName + " " + t.LastName
}

// EffectiveStatus returns the metadata status override if present,
// otherwise the directory status.
func (t *Technician) EffectiveStatus() TechnicianStatus {
	if t.Meta.Status != nil {
		return *t.Meta.Status
	}
	return t.Status
}
