// Package publisher forwards committed schedule mutations to NATS so
// other console instances and downstream consumers can follow along.
package publisher

import (
	"context"
	"fmt"

	"github.com/blockedby/dispatch-os/internal/logger"
	"github.com/blockedby/dispatch-os/internal/schedule"
)

// StreamName is the jetstream stream holding schedule events.
const StreamName = "SCHEDULE"

// StreamSubjects are the subjects the stream captures.
var StreamSubjects = []string{"schedule.>"}

// NATSClient interface to allow mocking
type NATSClient interface {
	Publish(ctx context.Context, subject string, data any) error
}

// NATSPublisher implements schedule.EventSink over NATS jetstream. Event
// types map directly to subjects: job.assigned becomes schedule.assigned.
type NATSPublisher struct {
	client NATSClient
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(client NATSClient) *NATSPublisher {
	return &NATSPublisher{client: client}
}

// ScheduleEvent publishes a committed mutation. Publish failures are
// logged, not propagated: the mutation already committed and event
// delivery is best-effort.
func (p *NATSPublisher) ScheduleEvent(ctx context.Context, ev schedule.Event) {
	subject := subjectFor(ev.Type)
	if err := p.client.Publish(ctx, subject, ev); err != nil {
		logger.Get().Error().Err(err).Str("subject", subject).Msg("publish schedule event")
	}
}

func subjectFor(eventType string) string {
	switch eventType {
	case schedule.EventJobAssigned:
		return "schedule.assigned"
	case schedule.EventJobLocked:
		return "schedule.locked"
	case schedule.EventJobResized:
		return "schedule.resized"
	case schedule.EventJobUnassigned:
		return "schedule.unassigned"
	default:
		return fmt.Sprintf("schedule.%s", eventType)
	}
}
