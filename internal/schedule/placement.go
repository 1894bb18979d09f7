package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
)

const (
	// PayloadTypeJob is the only transfer type the drop protocol accepts.
	PayloadTypeJob = "job"

	// PayloadMaxAge guards against drops from abandoned drag sessions.
	PayloadMaxAge = 30 * time.Second

	// DefaultDropDuration is the block length a drop assigns. The console
	// has always used a fixed three-hour block here, independent of the
	// job's own estimated duration; keep that behavior.
	DefaultDropDuration = 3 * time.Hour
)

// DropPayload is the transfer object carried by a drag gesture.
type DropPayload struct {
	Type      string      `json:"type"`
	Item      *models.Job `json:"item"`
	Timestamp time.Time   `json:"timestamp"`
}

// DropTarget identifies the grid cell a payload was released over.
type DropTarget struct {
	TechnicianID uuid.UUID `json:"technician_id"`
	Date         time.Time `json:"date"`
	Hour         int       `json:"hour"`
}

// DropResult reports a completed drop. Ignored drops (disabled cells)
// carry a notice and leave all state untouched.
type DropResult struct {
	Job     *models.Job `json:"job,omitempty"`
	Ignored bool        `json:"ignored"`
	Notice  string      `json:"notice,omitempty"`
}

// Placement resolves drag-and-drop gestures into assignments.
type Placement struct {
	engine *Engine
	store  Store

	// now is swappable for tests
	now func() time.Time
}

// NewPlacement creates a placement resolver over the engine.
func NewPlacement(engine *Engine, store Store) *Placement {
	return &Placement{engine: engine, store: store, now: time.Now}
}

// ValidatePayload checks a drag payload's shape and freshness.
func (p *Placement) ValidatePayload(payload DropPayload) error {
	if payload.Type != PayloadTypeJob || payload.Item == nil {
		return ErrMalformedPayload
	}
	if p.now().Sub(payload.Timestamp) > PayloadMaxAge {
		return ErrStalePayload
	}
	return nil
}

// ResolveSlot derives the concrete time range for a target cell: the
// cell's top-of-hour start plus the default drop duration.
func (p *Placement) ResolveSlot(target DropTarget) (start, end time.Time) {
	d := target.Date
	start = time.Date(d.Year(), d.Month(), d.Day(), target.Hour, 0, 0, 0, d.Location())
	return start, start.Add(DefaultDropDuration)
}

// Drop runs the full placement protocol: payload validation, cell
// eligibility, slot resolution and assignment. Cells the view disables
// (weekends, leave, full-day-off) never reach the resolver; the drop is
// reported as ignored with a notice. On any error nothing is mutated.
func (p *Placement) Drop(ctx context.Context, payload DropPayload, target DropTarget, view CalendarView) (*DropResult, error) {
	if err := p.ValidatePayload(payload); err != nil {
		return nil, fmt.Errorf("drop: %w", err)
	}

	tech, err := p.store.GetTechnician(ctx, target.TechnicianID)
	if err != nil {
		return nil, fmt.Errorf("drop: %w", err)
	}
	if tech == nil {
		return nil, fmt.Errorf("drop: technician %s: %w", target.TechnicianID, ErrNotFound)
	}

	if !IsWorkingDay(tech, target.Date, view) {
		return &DropResult{
			Ignored: true,
			Notice:  fmt.Sprintf("%s is not working on %s", tech.FullName(), target.Date.Format("2006-01-02")),
		}, nil
	}

	start, end := p.ResolveSlot(target)
	if err := p.engine.Assign(ctx, payload.Item.ID, target.TechnicianID, start, end); err != nil {
		return nil, err
	}

	job, err := p.store.GetJob(ctx, payload.Item.ID)
	if err != nil {
		return nil, fmt.Errorf("drop: %w", err)
	}
	return &DropResult{Job: job}, nil
}
