package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
	"github.com/blockedby/dispatch-os/internal/schedule"
)

// SchedulingEngine is the job assignment state machine surface.
type SchedulingEngine interface {
	Assign(ctx context.Context, jobID, techID uuid.UUID, start, end time.Time) error
	Lock(ctx context.Context, jobID uuid.UUID) error
	Resize(ctx context.Context, jobID uuid.UUID, newEnd time.Time) (*schedule.ResizeResult, error)
	Unassign(ctx context.Context, jobID uuid.UUID) error
}

// PlacementService resolves drag-and-drop payloads into assignments.
type PlacementService interface {
	Drop(ctx context.Context, payload schedule.DropPayload, target schedule.DropTarget, view schedule.CalendarView) (*schedule.DropResult, error)
}

// ReadModels serves the grid and unassigned-pool projections.
type ReadModels interface {
	JobsForTechnicianAndDay(ctx context.Context, techID uuid.UUID, date time.Time) ([]*models.Job, error)
	UnassignedJobsGroupedByServiceOrder(ctx context.Context, search string) ([]*schedule.OrderGroup, error)
}

// Directory is the technician and service-order read/metadata surface.
type Directory interface {
	GetTechnician(ctx context.Context, id uuid.UUID) (*models.Technician, error)
	ListTechnicians(ctx context.Context) ([]*models.Technician, error)
	SetTechnicianMeta(ctx context.Context, id uuid.UUID, meta models.TechnicianMeta) error
	ListServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error)
}
