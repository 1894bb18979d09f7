package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/blockedby/dispatch-os/internal/models"
)

// Roster is the YAML seed file: the technician directory plus the
// service orders and their jobs.
type Roster struct {
	Technicians   []RosterTechnician  `yaml:"technicians"`
	ServiceOrders []RosterServiceOrder `yaml:"service_orders"`
}

// RosterTechnician is one technician entry in the seed file.
type RosterTechnician struct {
	ID           string                        `yaml:"id"`
	FirstName    string                        `yaml:"first_name"`
	LastName     string                        `yaml:"last_name"`
	Contact      string                        `yaml:"contact"`
	Skills       []string                      `yaml:"skills"`
	Status       string                        `yaml:"status"`
	WorkingHours models.WorkingHours           `yaml:"working_hours"`
	ScheduleNote string                        `yaml:"schedule_note"`
	Days         map[string]models.DayOverride `yaml:"days"`
	Leaves       []models.LeaveRange           `yaml:"leaves"`
}

// RosterServiceOrder is one service order entry with its jobs.
type RosterServiceOrder struct {
	ID       string      `yaml:"id"`
	Title    string      `yaml:"title"`
	Priority string      `yaml:"priority"`
	Jobs     []RosterJob `yaml:"jobs"`
}

// RosterJob is one job entry under a service order.
type RosterJob struct {
	ID                string   `yaml:"id"`
	Title             string   `yaml:"title"`
	Description       string   `yaml:"description"`
	RequiredSkills    []string `yaml:"required_skills"`
	Priority          string   `yaml:"priority"`
	EstimatedDuration int      `yaml:"estimated_duration_minutes"`
}

// weekdayNames maps seed-file day keys to time.Weekday.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseRoster parses roster YAML.
func ParseRoster(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return &r, nil
}

// LoadRoster reads and parses a roster file, then seeds the store.
func LoadRoster(path string, mem *Memory) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read roster %s: %w", path, err)
	}
	r, err := ParseRoster(data)
	if err != nil {
		return err
	}
	return r.Seed(mem)
}

// Seed inserts the roster's technicians, orders and jobs into the store.
func (r *Roster) Seed(mem *Memory) error {
	for i := range r.Technicians {
		t, err := r.Technicians[i].toModel()
		if err != nil {
			return err
		}
		mem.AddTechnician(t)
	}
	for i := range r.ServiceOrders {
		so := &r.ServiceOrders[i]
		orderID, err := parseOrNewID(so.ID)
		if err != nil {
			return fmt.Errorf("service order %q: %w", so.Title, err)
		}
		mem.AddServiceOrder(&models.ServiceOrder{
			ID:       orderID,
			Title:    so.Title,
			Priority: parsePriority(so.Priority),
		})
		for _, rj := range so.Jobs {
			jobID, err := parseOrNewID(rj.ID)
			if err != nil {
				return fmt.Errorf("job %q: %w", rj.Title, err)
			}
			mem.AddJob(&models.Job{
				ID:                jobID,
				ServiceOrderID:    orderID,
				Title:             rj.Title,
				Description:       rj.Description,
				RequiredSkills:    rj.RequiredSkills,
				Priority:          parsePriority(rj.Priority),
				EstimatedDuration: rj.EstimatedDuration,
				Status:            models.JobStatusUnassigned,
			})
		}
	}
	return nil
}

func (rt *RosterTechnician) toModel() (*models.Technician, error) {
	id, err := parseOrNewID(rt.ID)
	if err != nil {
		return nil, fmt.Errorf("technician %q: %w", rt.LastName, err)
	}

	t := &models.Technician{
		ID:           id,
		FirstName:    rt.FirstName,
		LastName:     rt.LastName,
		Contact:      rt.Contact,
		Skills:       rt.Skills,
		Status:       parseTechStatus(rt.Status),
		WorkingHours: rt.WorkingHours,
		Meta: models.TechnicianMeta{
			ScheduleNote: rt.ScheduleNote,
			Leaves:       rt.Leaves,
		},
	}

	if len(rt.Days) > 0 {
		t.Meta.Days = make(map[time.Weekday]models.DayOverride, len(rt.Days))
		for name, ov := range rt.Days {
			wd, ok := weekdayNames[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("technician %q: unknown weekday %q", rt.LastName, name)
			}
			t.Meta.Days[wd] = ov
		}
	}
	return t, nil
}

func parseOrNewID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.New(), nil
	}
	return uuid.Parse(s)
}

func parsePriority(s string) models.JobPriority {
	switch strings.ToUpper(s) {
	case "LOW":
		return models.PriorityLow
	case "HIGH":
		return models.PriorityHigh
	case "URGENT":
		return models.PriorityUrgent
	default:
		return models.PriorityMedium
	}
}

func parseTechStatus(s string) models.TechnicianStatus {
	switch strings.ToUpper(s) {
	case "BUSY":
		return models.TechStatusBusy
	case "OFFLINE":
		return models.TechStatusOffline
	case "ON_LEAVE":
		return models.TechStatusOnLeave
	case "NOT_WORKING":
		return models.TechStatusNotWorking
	case "OVER_CAPACITY":
		return models.TechStatusOverCapacity
	default:
		return models.TechStatusAvailable
	}
}
