package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/logger"
	"github.com/blockedby/dispatch-os/internal/models"
)

// MinSlotDuration is the shortest schedulable job block.
const MinSlotDuration = 15 * time.Minute

// Store is the engine's view of the job table. All scheduling mutations
// funnel through the engine; nothing else writes these fields.
type Store interface {
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	SaveJob(ctx context.Context, job *models.Job) error
	ListJobs(ctx context.Context) ([]*models.Job, error)
	GetTechnician(ctx context.Context, id uuid.UUID) (*models.Technician, error)
	ListTechnicians(ctx context.Context) ([]*models.Technician, error)
	ListServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error)
}

// schedule mutation event types
const (
	EventJobAssigned   = "job.assigned"
	EventJobLocked     = "job.locked"
	EventJobResized    = "job.resized"
	EventJobUnassigned = "job.unassigned"
)

// Event describes a committed schedule mutation.
type Event struct {
	Type string     `json:"type"`
	Job  models.Job `json:"job"`
}

// EventSink receives committed mutation events (WebSocket hub, NATS).
type EventSink interface {
	ScheduleEvent(ctx context.Context, ev Event)
}

// Engine is the job assignment state machine. Operations on the same job
// are serialized through a per-job mutex so two near-simultaneous calls
// cannot interleave their read-modify-write cycles.
type Engine struct {
	store Store
	sinks []EventSink
	log   *logger.Logger

	mu      sync.Mutex
	jobLock map[uuid.UUID]*sync.Mutex
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{
		store:   store,
		log:     logger.Component("engine"),
		jobLock: make(map[uuid.UUID]*sync.Mutex),
	}
}

// AddSink registers an event sink. Not safe to call after serving starts.
func (e *Engine) AddSink(s EventSink) {
	e.sinks = append(e.sinks, s)
}

// lockJob returns the held per-job mutex; the caller must Unlock it.
func (e *Engine) lockJob(id uuid.UUID) *sync.Mutex {
	e.mu.Lock()
	l, ok := e.jobLock[id]
	if !ok {
		l = &sync.Mutex{}
		e.jobLock[id] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l
}

func (e *Engine) emit(ctx context.Context, typ string, job *models.Job) {
	ev := Event{Type: typ, Job: *job}
	for _, s := range e.sinks {
		s.ScheduleEvent(ctx, ev)
	}
}

// Assign binds a job to a technician and time range. Valid from
// Unassigned or Assigned (re-assignment moves the block); a locked job
// must be unassigned first. Assign with identical parameters is
// idempotent. The lock flag is always cleared on assignment.
func (e *Engine) Assign(ctx context.Context, jobID, techID uuid.UUID, start, end time.Time) error {
	l := e.lockJob(jobID)
	defer l.Unlock()

	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	if job == nil {
		return fmt.Errorf("assign job %s: %w", jobID, ErrNotFound)
	}
	if job.IsLocked {
		return fmt.Errorf("assign job %s: job is locked, unassign first: %w", jobID, ErrInvalidTransition)
	}
	if job.Status != models.JobStatusUnassigned && job.Status != models.JobStatusAssigned {
		return fmt.Errorf("assign job %s from %s: %w", jobID, job.Status, ErrInvalidTransition)
	}
	if !end.After(start) || end.Sub(start) < MinSlotDuration {
		return fmt.Errorf("assign job %s: %w", jobID, ErrInvalidDuration)
	}

	tech, err := e.store.GetTechnician(ctx, techID)
	if err != nil {
		return fmt.Errorf("assign: %w", err)
	}
	if tech == nil {
		return fmt.Errorf("assign: technician %s: %w", techID, ErrNotFound)
	}

	job.Status = models.JobStatusAssigned
	job.TechnicianID = &techID
	job.ScheduledStart = &start
	job.ScheduledEnd = &end
	job.IsLocked = false

	if err := e.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("assign job %s: %w", jobID, err)
	}

	e.log.Info().
		Str("job_id", jobID.String()).
		Str("technician_id", techID.String()).
		Time("start", start).
		Time("end", end).
		Msg("job assigned")

	e.emit(ctx, EventJobAssigned, job)
	return nil
}

// Lock marks an assigned job as confirmed, protecting it from drag and
// resize. Locking an already-locked job is a no-op.
func (e *Engine) Lock(ctx context.Context, jobID uuid.UUID) error {
	l := e.lockJob(jobID)
	defer l.Unlock()

	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("lock: %w", err)
	}
	if job == nil {
		return fmt.Errorf("lock job %s: %w", jobID, ErrNotFound)
	}
	if job.IsLocked {
		return nil
	}
	if job.Status != models.JobStatusAssigned {
		return fmt.Errorf("lock job %s from %s: %w", jobID, job.Status, ErrInvalidTransition)
	}
	if !job.IsScheduled() {
		return fmt.Errorf("lock job %s without scheduled time: %w", jobID, ErrPreconditionFailed)
	}

	job.IsLocked = true
	if err := e.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("lock job %s: %w", jobID, err)
	}

	e.log.Info().Str("job_id", jobID.String()).Msg("job locked")
	e.emit(ctx, EventJobLocked, job)
	return nil
}

// ResizeResult reports the outcome of a Resize call. A locked job yields
// Committed=false with a Notice rather than an error.
type ResizeResult struct {
	Committed bool   `json:"committed"`
	Notice    string `json:"notice,omitempty"`
	Job       *models.Job
}

// Resize moves a job's scheduled end. The resulting duration must be at
// least MinSlotDuration. Resizing a locked job is a soft no-op: the
// caller gets a notice to surface, not an error.
func (e *Engine) Resize(ctx context.Context, jobID uuid.UUID, newEnd time.Time) (*ResizeResult, error) {
	l := e.lockJob(jobID)
	defer l.Unlock()

	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("resize job %s: %w", jobID, ErrNotFound)
	}
	if job.IsLocked {
		return &ResizeResult{
			Committed: false,
			Notice:    "job is locked; unlock it before resizing",
			Job:       job,
		}, nil
	}
	if !job.IsScheduled() {
		return nil, fmt.Errorf("resize job %s without schedule: %w", jobID, ErrPreconditionFailed)
	}
	if newEnd.Sub(*job.ScheduledStart) < MinSlotDuration {
		return nil, fmt.Errorf("resize job %s to %s: %w", jobID, newEnd.Format(time.RFC3339), ErrInvalidDuration)
	}

	job.ScheduledEnd = &newEnd
	if err := e.store.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("resize job %s: %w", jobID, err)
	}

	e.log.Info().
		Str("job_id", jobID.String()).
		Time("end", newEnd).
		Msg("job resized")

	e.emit(ctx, EventJobResized, job)
	return &ResizeResult{Committed: true, Job: job}, nil
}

// Unassign returns a job to the pool. Permitted from any state, locked
// included; clears technician, schedule and lock.
func (e *Engine) Unassign(ctx context.Context, jobID uuid.UUID) error {
	l := e.lockJob(jobID)
	defer l.Unlock()

	job, err := e.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("unassign: %w", err)
	}
	if job == nil {
		return fmt.Errorf("unassign job %s: %w", jobID, ErrNotFound)
	}

	job.Status = models.JobStatusUnassigned
	job.TechnicianID = nil
	job.ScheduledStart = nil
	job.ScheduledEnd = nil
	job.IsLocked = false

	if err := e.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("unassign job %s: %w", jobID, err)
	}

	e.log.Info().Str("job_id", jobID.String()).Msg("job unassigned")
	e.emit(ctx, EventJobUnassigned, job)
	return nil
}
