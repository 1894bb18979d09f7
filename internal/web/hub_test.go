package web

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/blockedby/dispatch-os/internal/models"
	"github.com/blockedby/dispatch-os/internal/schedule"
)

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
	hub.register <- client1

	client2 := &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
	hub.register <- client2

	// Wait for registration
	time.Sleep(10 * time.Millisecond)

	msg := []byte(`{"type":"job.assigned"}`)
	hub.Broadcast(msg)

	select {
	case received := <-client1.send:
		assert.Equal(t, msg, received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client 1 did not receive message")
	}

	select {
	case received := <-client2.send:
		assert.Equal(t, msg, received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client 2 did not receive message")
	}

	// Unregister client 1; only client 2 should see the next message
	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	msg2 := []byte(`{"type":"job.locked"}`)
	hub.Broadcast(msg2)

	select {
	case received := <-client2.send:
		assert.Equal(t, msg2, received)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client 2 did not receive second message")
	}
}

func TestScheduleSink_ForwardsEngineEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 256)}
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	sink := NewScheduleSink(hub)
	job := models.Job{ID: uuid.New(), Title: "Boiler inspection", Status: models.JobStatusAssigned}
	sink.ScheduleEvent(t.Context(), schedule.Event{Type: schedule.EventJobAssigned, Job: job})

	select {
	case raw := <-client.send:
		var ev WSEvent
		assert.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, schedule.EventJobAssigned, ev.Type)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no event received")
	}
}

func TestPreviewBroadcaster_PreviewAndClear(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 256)}
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	pb := NewPreviewBroadcaster(hub)
	jobID := uuid.New()
	end := time.Date(2024, 6, 10, 12, 15, 0, 0, time.UTC)

	pb.Preview(jobID, end)
	pb.ClearPreview(jobID)

	var got []WSEvent
	for len(got) < 2 {
		select {
		case raw := <-client.send:
			var ev WSEvent
			assert.NoError(t, json.Unmarshal(raw, &ev))
			got = append(got, ev)
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("received %d events, want 2", len(got))
		}
	}

	assert.Equal(t, EventResizePreview, got[0].Type)
	assert.Equal(t, EventResizeClear, got[1].Type)
}
