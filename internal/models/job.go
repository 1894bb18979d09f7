package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the scheduling lifecycle state of a job.
type JobStatus string

// JobStatus constants define the possible states of a dispatchable job.
const (
	JobStatusUnassigned JobStatus = "UNASSIGNED"
	JobStatusAssigned   JobStatus = "ASSIGNED"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusCancelled  JobStatus = "CANCELLED"
)

// JobPriority is an ordered priority enum.
type JobPriority string

const (
	PriorityLow    JobPriority = "LOW"
	PriorityMedium JobPriority = "MEDIUM"
	PriorityHigh   JobPriority = "HIGH"
	PriorityUrgent JobPriority = "URGENT"
)

// priorityRank orders priorities for sorting the unassigned pool.
var priorityRank = map[JobPriority]int{
	PriorityLow:    0,
	PriorityMedium: 1,
	PriorityHigh:   2,
	PriorityUrgent: 3,
}

// Rank returns the sort rank of a priority. Unknown priorities rank lowest.
func (p JobPriority) Rank() int {
	return priorityRank[p]
}

// Job represents a unit of dispatchable work belonging to a service order.
type Job struct {
	ID             uuid.UUID `json:"id"`
	ServiceOrderID uuid.UUID `json:"service_order_id"`

	// descriptive
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	RequiredSkills    []string    `json:"required_skills"`
	Priority          JobPriority `json:"priority"`
	EstimatedDuration int         `json:"estimated_duration_minutes"`

	// scheduling state; technician/start/end are set and cleared together
	Status         JobStatus  `json:"status"`
	TechnicianID   *uuid.UUID `json:"technician_id,omitempty"`
	ScheduledStart *time.Time `json:"scheduled_start,omitempty"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
	IsLocked       bool       `json:"is_locked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsScheduled reports whether the job carries a technician/time binding.
func (j *Job) IsScheduled() bool {
	return j.TechnicianID != nil && j.ScheduledStart != nil && j.ScheduledEnd != nil
}

// ScheduledDuration returns the scheduled duration, or zero if unscheduled.
func (j *Job) ScheduledDuration() time.Duration {
	if j.ScheduledStart == nil || j.ScheduledEnd == nil {
		return 0
	}
	return j.ScheduledEnd.Sub(*j.ScheduledStart)
}

// Valid checks internal consistency: a locked job must be assigned with a
// concrete time range, and technician/start/end are either all set or all
// clear.
func (j *Job) Valid() bool {
	set := 0
	if j.TechnicianID != nil {
		set++
	}
	if j.ScheduledStart != nil {
		set++
	}
	if j.ScheduledEnd != nil {
		set++
	}
	if set != 0 && set != 3 {
		return false
	}
	if j.IsLocked && (j.Status != JobStatusAssigned || set != 3) {
		return false
	}
	return true
}
