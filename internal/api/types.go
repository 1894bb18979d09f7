package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/models"
	"github.com/blockedby/dispatch-os/internal/schedule"
)

// ============================================================================
// Common Types
// ============================================================================

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status" example:"ok" description:"Health status"`
	Version string `json:"version" example:"dev" description:"Application version"`
}

// ============================================================================
// Schedule Types
// ============================================================================

// DropRequest carries a drag payload and its target cell.
type DropRequest struct {
	Payload         schedule.DropPayload `json:"payload" description:"Drag transfer object: type, job item, drag timestamp"`
	TechnicianID    uuid.UUID            `json:"technician_id" description:"Target row technician"`
	Date            string               `json:"date" example:"2024-06-10" description:"Target day (YYYY-MM-DD)"`
	Hour            int                  `json:"hour" example:"9" description:"Target cell hour (0-23)"`
	IncludeWeekends bool                 `json:"include_weekends" description:"Whether the console view shows weekends"`
}

// DropResponse reports a completed or ignored drop.
type DropResponse struct {
	Job     *models.Job `json:"job,omitempty" description:"Job after assignment"`
	Ignored bool        `json:"ignored" description:"True when the target cell is disabled"`
	Notice  string      `json:"notice,omitempty" description:"User-facing notice for ignored drops"`
}

// AssignRequest binds a job to a technician and time range directly,
// bypassing the drop protocol.
type AssignRequest struct {
	TechnicianID uuid.UUID `json:"technician_id" description:"Technician to assign"`
	Start        time.Time `json:"start" description:"Scheduled start"`
	End          time.Time `json:"end" description:"Scheduled end"`
}

// ResizeRequest moves a job's scheduled end.
type ResizeRequest struct {
	End time.Time `json:"end" description:"New scheduled end"`
}

// ResizeResponse reports a resize outcome. A locked job yields
// committed=false with a notice.
type ResizeResponse struct {
	Committed bool        `json:"committed" description:"Whether the resize was applied"`
	Notice    string      `json:"notice,omitempty" description:"User-facing notice for soft no-ops"`
	Job       *models.Job `json:"job,omitempty" description:"Job after the call"`
}

// UnassignedResponse is the unassigned pool grouped by service order.
type UnassignedResponse struct {
	Groups []*schedule.OrderGroup `json:"groups" description:"Non-empty service-order groups"`
}

// TechniciansResponse lists the technician directory.
type TechniciansResponse struct {
	Technicians []*models.Technician `json:"technicians"`
}

// OrdersResponse lists service orders.
type OrdersResponse struct {
	Orders []*models.ServiceOrder `json:"orders"`
}

// TechnicianJobsResponse is one technician's schedule for a day.
type TechnicianJobsResponse struct {
	Jobs []*models.Job `json:"jobs"`
}

// WindowResponse is a technician's effective working window on a date.
type WindowResponse struct {
	Working bool            `json:"working" description:"Whether the technician works that day"`
	Window  schedule.Window `json:"window" description:"Effective window, minutes from midnight"`
}

// GridResponse is the pixel geometry for a zoom level.
type GridResponse struct {
	Zoom       schedule.ZoomLevel  `json:"zoom"`
	Dimensions schedule.Dimensions `json:"dimensions"`
}

// TechnicianMetaRequest replaces a technician's scheduling metadata.
type TechnicianMetaRequest struct {
	Meta models.TechnicianMeta `json:"meta"`
}
