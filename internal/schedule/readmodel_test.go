package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
	"github.com/blockedby/dispatch-os/internal/store"
)

func TestReadModels_JobsForTechnicianAndDay(t *testing.T) {
	mem, job, tech := seedStore(t)
	eng := NewEngine(mem)
	views := NewReadModels(mem)
	ctx := context.Background()

	other := &models.Job{
		ID:             uuid.New(),
		ServiceOrderID: job.ServiceOrderID,
		Title:          "Other job",
		Status:         models.JobStatusUnassigned,
	}
	mem.AddJob(other)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	s1 := day.Add(13 * time.Hour)
	s2 := day.Add(9 * time.Hour)
	if err := eng.Assign(ctx, job.ID, tech.ID, s1, s1.Add(2*time.Hour)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := eng.Assign(ctx, other.ID, tech.ID, s2, s2.Add(time.Hour)); err != nil {
		t.Fatalf("assign other: %v", err)
	}

	jobs, err := views.JobsForTechnicianAndDay(ctx, tech.ID, day)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	// ordered by start
	if jobs[0].ID != other.ID || jobs[1].ID != job.ID {
		t.Error("jobs not ordered by scheduled start")
	}

	// neighboring day is empty
	jobs, err = views.JobsForTechnicianAndDay(ctx, tech.ID, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("next day: got %d jobs, want 0", len(jobs))
	}

	// different technician sees nothing
	jobs, err = views.JobsForTechnicianAndDay(ctx, uuid.New(), day)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("unknown tech: got %d jobs, want 0", len(jobs))
	}
}

func TestReadModels_UnassignedGrouping(t *testing.T) {
	mem := store.NewMemory()
	views := NewReadModels(mem)
	ctx := context.Background()

	orderA := &models.ServiceOrder{ID: uuid.New(), Title: "Mall HVAC overhaul", Priority: models.PriorityHigh}
	orderB := &models.ServiceOrder{ID: uuid.New(), Title: "Harbor annual service", Priority: models.PriorityMedium}
	orderEmpty := &models.ServiceOrder{ID: uuid.New(), Title: "Warehouse retrofit", Priority: models.PriorityLow}
	mem.AddServiceOrder(orderA)
	mem.AddServiceOrder(orderB)
	mem.AddServiceOrder(orderEmpty)

	mkJob := func(order uuid.UUID, title string, prio models.JobPriority, status models.JobStatus) *models.Job {
		j := &models.Job{
			ID:             uuid.New(),
			ServiceOrderID: order,
			Title:          title,
			Priority:       prio,
			Status:         status,
		}
		mem.AddJob(j)
		return j
	}

	mkJob(orderA.ID, "Replace condenser", models.PriorityMedium, models.JobStatusUnassigned)
	urgent := mkJob(orderA.ID, "Fix leak", models.PriorityUrgent, models.JobStatusUnassigned)
	mkJob(orderA.ID, "Assigned already", models.PriorityHigh, models.JobStatusAssigned)
	mkJob(orderB.ID, "Boiler inspection", models.PriorityLow, models.JobStatusUnassigned)

	groups, err := views.UnassignedJobsGroupedByServiceOrder(ctx, "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (empty group dropped)", len(groups))
	}
	for _, g := range groups {
		if g.Order.ID == orderA.ID {
			if len(g.Jobs) != 2 {
				t.Errorf("order A: got %d jobs, want 2 unassigned", len(g.Jobs))
			}
			if g.Jobs[0].ID != urgent.ID {
				t.Error("urgent job should sort first in its group")
			}
		}
	}

	// order title match keeps the whole group
	groups, err = views.UnassignedJobsGroupedByServiceOrder(ctx, "hvac")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(groups) != 1 || groups[0].Order.ID != orderA.ID || len(groups[0].Jobs) != 2 {
		t.Errorf("search 'hvac' = %d groups, want order A with both jobs", len(groups))
	}

	// job title match keeps only matching jobs
	groups, err = views.UnassignedJobsGroupedByServiceOrder(ctx, "BOILER")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(groups) != 1 || groups[0].Order.ID != orderB.ID || len(groups[0].Jobs) != 1 {
		t.Errorf("search 'BOILER' = %v, want order B with one job", groups)
	}

	// no match filters everything out
	groups, err = views.UnassignedJobsGroupedByServiceOrder(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("search miss: got %d groups, want 0", len(groups))
	}
}
