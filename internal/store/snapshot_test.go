package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	snap, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("OpenSnapshot() error = %v", err)
	}

	techID := uuid.New()
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	end := start.Add(3 * time.Hour)
	job := &models.Job{
		ID:             uuid.New(),
		ServiceOrderID: uuid.New(),
		Title:          "Replace compressor",
		Status:         models.JobStatusAssigned,
		TechnicianID:   &techID,
		ScheduledStart: &start,
		ScheduledEnd:   &end,
	}
	if err := snap.PersistJob(ctx, job); err != nil {
		t.Fatalf("PersistJob() error = %v", err)
	}

	meta := models.TechnicianMeta{ScheduleNote: "on call this week"}
	if err := snap.PersistTechnicianMeta(ctx, techID, meta); err != nil {
		t.Fatalf("PersistTechnicianMeta() error = %v", err)
	}

	// Fresh store seeded with the technician only; restore overlays the
	// job and the metadata.
	mem := NewMemory()
	mem.AddTechnician(&models.Technician{ID: techID, FirstName: "Jo", LastName: "Fixit"})

	restored, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("reopen snapshot: %v", err)
	}
	if err := restored.Restore(ctx, mem); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	got, err := mem.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob() error = %v", err)
	}
	if got == nil {
		t.Fatal("restored job not found")
	}
	if got.Status != models.JobStatusAssigned {
		t.Errorf("Status = %q, want %q", got.Status, models.JobStatusAssigned)
	}
	if got.TechnicianID == nil || *got.TechnicianID != techID {
		t.Errorf("TechnicianID = %v, want %v", got.TechnicianID, techID)
	}
	if got.ScheduledEnd == nil || !got.ScheduledEnd.Equal(end) {
		t.Errorf("ScheduledEnd = %v, want %v", got.ScheduledEnd, end)
	}

	tech, err := mem.GetTechnician(ctx, techID)
	if err != nil {
		t.Fatalf("GetTechnician() error = %v", err)
	}
	if tech.Meta.ScheduleNote != "on call this week" {
		t.Errorf("ScheduleNote = %q, want %q", tech.Meta.ScheduleNote, "on call this week")
	}
}

func TestSnapshot_RestoreSkipsStaleTechnicianMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	snap, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("OpenSnapshot() error = %v", err)
	}
	if err := snap.PersistTechnicianMeta(ctx, uuid.New(), models.TechnicianMeta{ScheduleNote: "gone"}); err != nil {
		t.Fatalf("PersistTechnicianMeta() error = %v", err)
	}

	// the technician was removed from the roster since the snapshot
	mem := NewMemory()
	if err := snap.Restore(ctx, mem); err != nil {
		t.Fatalf("Restore() error = %v, want stale meta skipped", err)
	}
}

func TestSnapshot_PersistOverwritesRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	snap, err := OpenSnapshot(path)
	if err != nil {
		t.Fatalf("OpenSnapshot() error = %v", err)
	}

	job := &models.Job{ID: uuid.New(), Title: "Inspect boiler", Status: models.JobStatusUnassigned}
	if err := snap.PersistJob(ctx, job); err != nil {
		t.Fatalf("PersistJob() error = %v", err)
	}

	job.Title = "Inspect boiler and flue"
	if err := snap.PersistJob(ctx, job); err != nil {
		t.Fatalf("PersistJob() second write error = %v", err)
	}

	mem := NewMemory()
	if err := snap.Restore(ctx, mem); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}

	jobs, err := mem.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs() error = %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("len(jobs) = %d, want 1", len(jobs))
	}
	if jobs[0].Title != "Inspect boiler and flue" {
		t.Errorf("Title = %q, want the updated title", jobs[0].Title)
	}
}
