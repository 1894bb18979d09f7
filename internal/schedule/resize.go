package schedule

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
)

// gesture tuning
const (
	// SnapInterval is the resize granularity.
	SnapInterval = 15 * time.Minute

	// BodyDragThresholdPx is the vertical movement needed before a
	// body-drag becomes a resize gesture.
	BodyDragThresholdPx = 8.0

	// BodyDragPxPerStep converts vertical travel to snap steps: 20px per
	// 15 minutes.
	BodyDragPxPerStep = 20.0

	// BodyDragDefaultDuration is the candidate a body-drag starts from.
	BodyDragDefaultDuration = 60 * time.Minute
)

// GestureState is the phase of a pointer gesture on a job block.
type GestureState string

const (
	GestureIdle         GestureState = "idle"
	GesturePending      GestureState = "pending"
	GestureEdgeResizing GestureState = "edge_resizing"
	GestureBodyResizing GestureState = "body_resizing"
)

// Pointer is a pointer position in grid pixel coordinates.
type Pointer struct {
	X float64
	Y float64
}

// PreviewSink is the transient projection of an in-progress resize. It is
// UI-local rendering state keyed by job id and never reaches the engine.
type PreviewSink interface {
	Preview(jobID uuid.UUID, end time.Time)
	ClearPreview(jobID uuid.UUID)
}

// Committer commits a finished gesture. *Engine satisfies it.
type Committer interface {
	Resize(ctx context.Context, jobID uuid.UUID, newEnd time.Time) (*ResizeResult, error)
}

// Gesture tracks one pointer interaction with a job block, from
// pointer-down to release or cancel. Pointer moves are coalesced: Move
// only records the latest position, Tick applies it. At most one commit
// happens per completed gesture.
type Gesture struct {
	state GestureState

	jobID     uuid.UUID
	start     time.Time
	origEnd   time.Time
	hourWidth float64

	downX, downY float64
	bodyBaseY    float64

	pending   *Pointer
	candidate *time.Time

	suppressClick bool
	preview       PreviewSink
}

// StartGesture begins tracking a pointer-down on a rendered job block.
// edge marks a hit on the trailing edge (immediate duration-change
// gesture); anywhere else starts pending until movement disambiguates.
// Locked or unscheduled jobs take no gesture at all: returns nil.
func StartGesture(job *models.Job, dims Dimensions, edge bool, p Pointer, preview PreviewSink) *Gesture {
	if job == nil || job.IsLocked || !job.IsScheduled() {
		return nil
	}
	g := &Gesture{
		state:     GesturePending,
		jobID:     job.ID,
		start:     *job.ScheduledStart,
		origEnd:   *job.ScheduledEnd,
		hourWidth: float64(dims.HourColumnWidth),
		downX:     p.X,
		downY:     p.Y,
		preview:   preview,
	}
	if edge {
		g.state = GestureEdgeResizing
	}
	return g
}

// State returns the gesture's current phase.
func (g *Gesture) State() GestureState {
	if g == nil {
		return GestureIdle
	}
	return g.state
}

// SuppressClick reports whether the click following pointer-up should be
// swallowed. True once a body-drag has qualified, so releasing the drag
// does not also open the job detail dialog.
func (g *Gesture) SuppressClick() bool {
	return g != nil && g.suppressClick
}

// Move records a pointer position. Only the latest position per tick is
// kept; call Tick to apply it.
func (g *Gesture) Move(p Pointer) {
	if g == nil || g.state == GestureIdle {
		return
	}
	g.pending = &p
}

// Tick applies the most recent pointer position, advancing the gesture
// state machine and publishing any valid candidate to the preview sink.
func (g *Gesture) Tick() {
	if g == nil || g.pending == nil {
		return
	}
	p := *g.pending
	g.pending = nil

	switch g.state {
	case GestureEdgeResizing:
		g.edgeMove(p)
	case GesturePending:
		dx := math.Abs(p.X - g.downX)
		dy := math.Abs(p.Y - g.downY)
		if dy > BodyDragThresholdPx && dy > dx {
			g.state = GestureBodyResizing
			g.bodyBaseY = p.Y
			g.suppressClick = true
			g.setCandidate(g.start.Add(BodyDragDefaultDuration))
		}
	case GestureBodyResizing:
		g.bodyMove(p)
	}
}

func (g *Gesture) edgeMove(p Pointer) {
	deltaPx := p.X - g.downX
	rawMinutes := deltaPx / g.hourWidth * 60
	snapped := snapMinutes(rawMinutes)
	candidate := g.origEnd.Add(time.Duration(snapped) * time.Minute)
	if candidate.Sub(g.start) >= MinSlotDuration {
		g.setCandidate(candidate)
	}
}

func (g *Gesture) bodyMove(p Pointer) {
	steps := math.Round((p.Y - g.bodyBaseY) / BodyDragPxPerStep)
	candidate := g.start.Add(BodyDragDefaultDuration + time.Duration(steps)*SnapInterval)
	if candidate.Sub(g.start) >= MinSlotDuration {
		g.setCandidate(candidate)
	}
}

func (g *Gesture) setCandidate(end time.Time) {
	g.candidate = &end
	if g.preview != nil {
		g.preview.Preview(g.jobID, end)
	}
}

// Release ends the gesture on pointer-up. The last valid candidate, if
// any, is committed exactly once; a gesture that never produced one
// commits nothing. The preview projection is cleared either way.
func (g *Gesture) Release(ctx context.Context, c Committer) (*ResizeResult, error) {
	if g == nil {
		return nil, nil
	}
	defer g.finish()

	if g.candidate == nil || g.state == GesturePending || g.state == GestureIdle {
		return nil, nil
	}
	return c.Resize(ctx, g.jobID, *g.candidate)
}

// Cancel ends the gesture without committing: pointer left without a
// qualifying release, or listener teardown.
func (g *Gesture) Cancel() {
	if g == nil {
		return
	}
	g.finish()
}

func (g *Gesture) finish() {
	g.state = GestureIdle
	g.pending = nil
	g.candidate = nil
	if g.preview != nil {
		g.preview.ClearPreview(g.jobID)
	}
}

// snapMinutes rounds raw minutes to the nearest snap interval.
func snapMinutes(raw float64) int {
	step := SnapInterval.Minutes()
	return int(math.Round(raw/step) * step)
}
