package web

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/logger"
	"github.com/blockedby/dispatch-os/internal/models"
	"github.com/blockedby/dispatch-os/internal/schedule"
)

// Inbound gesture message types. Consoles stream pointer events for an
// in-progress resize; previews fan back out through the hub.
const (
	EventGestureStart   = "gesture.start"
	EventGestureMove    = "gesture.move"
	EventGestureRelease = "gesture.release"
	EventGestureCancel  = "gesture.cancel"
)

// GestureStartPayload opens a gesture on a rendered job block.
type GestureStartPayload struct {
	JobID uuid.UUID          `json:"job_id"`
	Zoom  schedule.ZoomLevel `json:"zoom"`
	Edge  bool               `json:"edge"`
	X     float64            `json:"x"`
	Y     float64            `json:"y"`
}

// GestureMovePayload is a pointer position in grid pixel coordinates.
type GestureMovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// JobGetter is the controller's read access to the job table.
type JobGetter interface {
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// GestureController drives the resize gesture state machine from console
// pointer events arriving over the WebSocket. Previews go through the
// preview sink only; a commit happens on release through the committer.
type GestureController struct {
	jobs      JobGetter
	committer schedule.Committer
	preview   schedule.PreviewSink
}

// NewGestureController creates a controller over the job table, the
// commit path and the preview transport.
func NewGestureController(jobs JobGetter, committer schedule.Committer, preview schedule.PreviewSink) *GestureController {
	return &GestureController{jobs: jobs, committer: committer, preview: preview}
}

// newSession creates the per-connection gesture state. One connection
// drives at most one gesture at a time.
func (gc *GestureController) newSession() *gestureSession {
	return &gestureSession{ctrl: gc}
}

type gestureSession struct {
	ctrl *GestureController

	mu sync.Mutex
	g  *schedule.Gesture
}

// Handle applies one inbound console message. Malformed or out-of-order
// messages are dropped; pointer input is advisory and never fails the
// connection.
func (s *gestureSession) Handle(ctx context.Context, raw []byte) {
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case EventGestureStart:
		var p GestureStartPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		// a new pointer-down supersedes any gesture still open
		if s.g != nil {
			s.g.Cancel()
		}
		job, err := s.ctrl.jobs.GetJob(ctx, p.JobID)
		if err != nil {
			logger.Get().Error().Err(err).Str("job_id", p.JobID.String()).Msg("gesture start lookup failed")
			return
		}
		s.g = schedule.StartGesture(job, schedule.GridDimensions(p.Zoom), p.Edge,
			schedule.Pointer{X: p.X, Y: p.Y}, s.ctrl.preview)

	case EventGestureMove:
		var p GestureMovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		s.g.Move(schedule.Pointer{X: p.X, Y: p.Y})
		s.g.Tick()

	case EventGestureRelease:
		if _, err := s.g.Release(ctx, s.ctrl.committer); err != nil {
			logger.Get().Error().Err(err).Msg("gesture commit failed")
		}
		s.g = nil

	case EventGestureCancel:
		s.g.Cancel()
		s.g = nil
	}
}

// Close cancels any gesture the connection left open; connection
// teardown must clear the preview projection.
func (s *gestureSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.g != nil {
		s.g.Cancel()
		s.g = nil
	}
}
