package publisher

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
	"github.com/blockedby/dispatch-os/internal/schedule"
)

type recordingClient struct {
	subjects []string
	err      error
}

func (c *recordingClient) Publish(_ context.Context, subject string, _ any) error {
	c.subjects = append(c.subjects, subject)
	return c.err
}

func TestNATSPublisher_SubjectMapping(t *testing.T) {
	client := &recordingClient{}
	p := NewNATSPublisher(client)

	job := models.Job{ID: uuid.New()}
	events := []struct {
		typ  string
		want string
	}{
		{schedule.EventJobAssigned, "schedule.assigned"},
		{schedule.EventJobLocked, "schedule.locked"},
		{schedule.EventJobResized, "schedule.resized"},
		{schedule.EventJobUnassigned, "schedule.unassigned"},
	}

	for _, ev := range events {
		p.ScheduleEvent(context.Background(), schedule.Event{Type: ev.typ, Job: job})
	}

	if len(client.subjects) != len(events) {
		t.Fatalf("published %d events, want %d", len(client.subjects), len(events))
	}
	for i, ev := range events {
		if client.subjects[i] != ev.want {
			t.Errorf("event %s published to %s, want %s", ev.typ, client.subjects[i], ev.want)
		}
	}
}

func TestNATSPublisher_PublishFailureIsSwallowed(t *testing.T) {
	client := &recordingClient{err: errors.New("nats down")}
	p := NewNATSPublisher(client)

	// delivery is best-effort; a broker failure must not panic or block
	p.ScheduleEvent(context.Background(), schedule.Event{
		Type: schedule.EventJobAssigned,
		Job:  models.Job{ID: uuid.New()},
	})

	if len(client.subjects) != 1 {
		t.Fatalf("publish attempts = %d, want 1", len(client.subjects))
	}
}
