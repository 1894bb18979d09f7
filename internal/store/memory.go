// Package store owns the mutable scheduling tables. All schedule state
// lives here behind a single lock; the scheduling engine is the only
// writer of job scheduling fields.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/logger"
	"github.com/blockedby/dispatch-os/internal/models"
)

// ErrTechnicianNotFound is returned by mutations addressing an unknown
// technician id.
var ErrTechnicianNotFound = errors.New("technician not found")

// Persister receives committed mutations for durable storage. Memory
// calls it outside its own lock; a nil persister disables persistence.
type Persister interface {
	PersistJob(ctx context.Context, job *models.Job) error
	PersistTechnicianMeta(ctx context.Context, id uuid.UUID, meta models.TechnicianMeta) error
}

// Memory is the in-process store for jobs, technicians and service
// orders. Reads return copies; callers never see interior pointers.
type Memory struct {
	mu     sync.RWMutex
	jobs   map[uuid.UUID]*models.Job
	techs  map[uuid.UUID]*models.Technician
	orders map[uuid.UUID]*models.ServiceOrder

	persister Persister
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		jobs:   make(map[uuid.UUID]*models.Job),
		techs:  make(map[uuid.UUID]*models.Technician),
		orders: make(map[uuid.UUID]*models.ServiceOrder),
	}
}

// SetPersister attaches a durable backend. Call before serving traffic.
func (m *Memory) SetPersister(p Persister) {
	m.persister = p
}

// GetJob returns a copy of a job, or nil if unknown.
func (m *Memory) GetJob(_ context.Context, id uuid.UUID) (*models.Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}
	return cloneJob(j), nil
}

// SaveJob upserts a job and stamps UpdatedAt, then forwards the committed
// row to the persister if one is attached. The in-memory table is the
// source of truth; snapshot persistence is best-effort and a persister
// failure is logged, never surfaced, so callers see the same committed
// state that reads already return.
func (m *Memory) SaveJob(ctx context.Context, job *models.Job) error {
	c := cloneJob(job)
	c.UpdatedAt = time.Now()

	m.mu.Lock()
	m.jobs[c.ID] = c
	m.mu.Unlock()

	job.UpdatedAt = c.UpdatedAt
	if m.persister != nil {
		if err := m.persister.PersistJob(ctx, cloneJob(c)); err != nil {
			logger.Get().Error().Err(err).Str("job_id", c.ID.String()).Msg("persist job failed")
		}
	}
	return nil
}

// ListJobs returns copies of all jobs, ordered by creation time.
func (m *Memory) ListJobs(_ context.Context) ([]*models.Job, error) {
	m.mu.RLock()
	out := make([]*models.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, cloneJob(j))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.Before(out[k].CreatedAt) })
	return out, nil
}

// GetTechnician returns a copy of a technician, or nil if unknown.
func (m *Memory) GetTechnician(_ context.Context, id uuid.UUID) (*models.Technician, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.techs[id]
	if !ok {
		return nil, nil
	}
	return cloneTechnician(t), nil
}

// ListTechnicians returns copies of all technicians sorted by name.
func (m *Memory) ListTechnicians(_ context.Context) ([]*models.Technician, error) {
	m.mu.RLock()
	out := make([]*models.Technician, 0, len(m.techs))
	for _, t := range m.techs {
		out = append(out, cloneTechnician(t))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, k int) bool {
		if out[i].LastName != out[k].LastName {
			return out[i].LastName < out[k].LastName
		}
		return out[i].FirstName < out[k].FirstName
	})
	return out, nil
}

// SetTechnicianMeta replaces a technician's scheduling metadata blob.
// Returns ErrTechnicianNotFound for an unknown id. Persistence follows
// the same best-effort policy as SaveJob.
func (m *Memory) SetTechnicianMeta(ctx context.Context, id uuid.UUID, meta models.TechnicianMeta) error {
	m.mu.Lock()
	t, ok := m.techs[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("set technician meta %s: %w", id, ErrTechnicianNotFound)
	}
	t.Meta = cloneMeta(meta)
	m.mu.Unlock()

	if m.persister != nil {
		if err := m.persister.PersistTechnicianMeta(ctx, id, cloneMeta(meta)); err != nil {
			logger.Get().Error().Err(err).Str("technician_id", id.String()).Msg("persist technician meta failed")
		}
	}
	return nil
}

// GetServiceOrder returns a copy of a service order, or nil if unknown.
func (m *Memory) GetServiceOrder(_ context.Context, id uuid.UUID) (*models.ServiceOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	return &c, nil
}

// ListServiceOrders returns copies of all service orders sorted by title.
func (m *Memory) ListServiceOrders(_ context.Context) ([]*models.ServiceOrder, error) {
	m.mu.RLock()
	out := make([]*models.ServiceOrder, 0, len(m.orders))
	for _, o := range m.orders {
		c := *o
		out = append(out, &c)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, k int) bool { return out[i].Title < out[k].Title })
	return out, nil
}

// AddTechnician inserts a technician. Seeding only.
func (m *Memory) AddTechnician(t *models.Technician) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.techs[t.ID] = cloneTechnician(t)
}

// AddServiceOrder inserts a service order. Seeding only.
func (m *Memory) AddServiceOrder(o *models.ServiceOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *o
	m.orders[o.ID] = &c
}

// AddJob inserts a job. Seeding only; stamps CreatedAt/UpdatedAt if zero.
func (m *Memory) AddJob(j *models.Job) {
	c := cloneJob(j)
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[c.ID] = c
}

func cloneJob(j *models.Job) *models.Job {
	c := *j
	c.RequiredSkills = append([]string(nil), j.RequiredSkills...)
	if j.TechnicianID != nil {
		id := *j.TechnicianID
		c.TechnicianID = &id
	}
	if j.ScheduledStart != nil {
		t := *j.ScheduledStart
		c.ScheduledStart = &t
	}
	if j.ScheduledEnd != nil {
		t := *j.ScheduledEnd
		c.ScheduledEnd = &t
	}
	return &c
}

func cloneTechnician(t *models.Technician) *models.Technician {
	c := *t
	c.Skills = append([]string(nil), t.Skills...)
	c.Meta = cloneMeta(t.Meta)
	return &c
}

func cloneMeta(m models.TechnicianMeta) models.TechnicianMeta {
	c := m
	if m.Status != nil {
		s := *m.Status
		c.Status = &s
	}
	if m.WorkingHours != nil {
		wh := *m.WorkingHours
		c.WorkingHours = &wh
	}
	if m.Days != nil {
		c.Days = make(map[time.Weekday]models.DayOverride, len(m.Days))
		for k, v := range m.Days {
			c.Days[k] = v
		}
	}
	c.Leaves = append([]models.LeaveRange(nil), m.Leaves...)
	return c
}
