package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/schedule"
)

// WebSocket event types. Mutation events mirror the engine's; preview
// events carry the transient resize projection and never correspond to a
// store write.
const (
	EventResizePreview = "resize.preview"
	EventResizeClear   = "resize.clear"
)

// WSEvent is the envelope for every hub message.
type WSEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// PreviewPayload is the payload for EventResizePreview.
type PreviewPayload struct {
	JobID string    `json:"job_id"`
	End   time.Time `json:"end"`
}

// ClearPayload is the payload for EventResizeClear.
type ClearPayload struct {
	JobID string `json:"job_id"`
}

// ScheduleSink broadcasts committed schedule mutations over the hub.
// Implements schedule.EventSink.
type ScheduleSink struct {
	hub *Hub
}

// NewScheduleSink wraps a hub as an engine event sink.
func NewScheduleSink(hub *Hub) *ScheduleSink {
	return &ScheduleSink{hub: hub}
}

// ScheduleEvent forwards a committed mutation to all clients.
func (s *ScheduleSink) ScheduleEvent(_ context.Context, ev schedule.Event) {
	b, _ := json.Marshal(WSEvent{Type: ev.Type, Payload: ev.Job})
	s.hub.Broadcast(b)
}

// PreviewBroadcaster publishes resize preview frames over the hub.
// Implements schedule.PreviewSink; it is the preview channel's transport
// and deliberately has no path into the engine.
type PreviewBroadcaster struct {
	hub *Hub
}

// NewPreviewBroadcaster wraps a hub as a preview sink.
func NewPreviewBroadcaster(hub *Hub) *PreviewBroadcaster {
	return &PreviewBroadcaster{hub: hub}
}

// Preview broadcasts the current resize candidate for a job.
func (p *PreviewBroadcaster) Preview(jobID uuid.UUID, end time.Time) {
	b, _ := json.Marshal(WSEvent{
		Type:    EventResizePreview,
		Payload: PreviewPayload{JobID: jobID.String(), End: end},
	})
	p.hub.Broadcast(b)
}

// ClearPreview broadcasts the end of a gesture so consoles drop the
// projection.
func (p *PreviewBroadcaster) ClearPreview(jobID uuid.UUID) {
	b, _ := json.Marshal(WSEvent{
		Type:    EventResizeClear,
		Payload: ClearPayload{JobID: jobID.String()},
	})
	p.hub.Broadcast(b)
}
