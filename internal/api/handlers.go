// Package api provides HTTP handlers for the REST API.
package api

import (
	"errors"
	"time"

	"github.com/go-fuego/fuego"
	"github.com/google/uuid"

	"github.com/blockedby/dispatch-os/internal/schedule"
	"github.com/blockedby/dispatch-os/internal/store"
)

// ============================================================================
// Health
// ============================================================================

func (s *Server) healthCheck(_ fuego.ContextNoBody) (HealthResponse, error) {
	return HealthResponse{
		Status:  "ok",
		Version: "dev",
	}, nil
}

// ============================================================================
// Schedule Handlers
// ============================================================================

func (s *Server) listUnassigned(c fuego.ContextNoBody) (UnassignedResponse, error) {
	groups, err := s.deps.Views.UnassignedJobsGroupedByServiceOrder(c.Context(), c.QueryParam("q"))
	if err != nil {
		return UnassignedResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if groups == nil {
		groups = []*schedule.OrderGroup{}
	}
	return UnassignedResponse{Groups: groups}, nil
}

func (s *Server) drop(c fuego.ContextWithBody[DropRequest]) (DropResponse, error) {
	body, err := c.Body()
	if err != nil {
		return DropResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	date, err := time.ParseInLocation("2006-01-02", body.Date, time.Local)
	if err != nil {
		return DropResponse{}, fuego.BadRequestError{Detail: "Invalid date, want YYYY-MM-DD"}
	}
	if body.Hour < 0 || body.Hour > 23 {
		return DropResponse{}, fuego.BadRequestError{Detail: "Invalid hour"}
	}

	target := schedule.DropTarget{
		TechnicianID: body.TechnicianID,
		Date:         date,
		Hour:         body.Hour,
	}
	view := schedule.DefaultCalendarView()
	view.IncludeWeekends = body.IncludeWeekends

	res, err := s.deps.Placement.Drop(c.Context(), body.Payload, target, view)
	if err != nil {
		return DropResponse{}, scheduleError(err)
	}
	return DropResponse{Job: res.Job, Ignored: res.Ignored, Notice: res.Notice}, nil
}

func (s *Server) assignJob(c fuego.ContextWithBody[AssignRequest]) (any, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	body, err := c.Body()
	if err != nil {
		return nil, fuego.BadRequestError{Detail: err.Error()}
	}

	if err := s.deps.Engine.Assign(c.Context(), id, body.TechnicianID, body.Start, body.End); err != nil {
		return nil, scheduleError(err)
	}
	return map[string]string{"status": "assigned"}, nil
}

func (s *Server) lockJob(c fuego.ContextNoBody) (any, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	if err := s.deps.Engine.Lock(c.Context(), id); err != nil {
		return nil, scheduleError(err)
	}
	return map[string]string{"status": "locked"}, nil
}

func (s *Server) unassignJob(c fuego.ContextNoBody) (any, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	if err := s.deps.Engine.Unassign(c.Context(), id); err != nil {
		return nil, scheduleError(err)
	}
	return map[string]string{"status": "unassigned"}, nil
}

func (s *Server) resizeJob(c fuego.ContextWithBody[ResizeRequest]) (ResizeResponse, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return ResizeResponse{}, fuego.BadRequestError{Detail: "Invalid job ID"}
	}
	body, err := c.Body()
	if err != nil {
		return ResizeResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	res, err := s.deps.Engine.Resize(c.Context(), id, body.End)
	if err != nil {
		return ResizeResponse{}, scheduleError(err)
	}
	return ResizeResponse{Committed: res.Committed, Notice: res.Notice, Job: res.Job}, nil
}

// ============================================================================
// Technicians Handlers
// ============================================================================

func (s *Server) listTechnicians(c fuego.ContextNoBody) (TechniciansResponse, error) {
	techs, err := s.deps.Directory.ListTechnicians(c.Context())
	if err != nil {
		return TechniciansResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return TechniciansResponse{Technicians: techs}, nil
}

func (s *Server) technicianJobs(c fuego.ContextNoBody) (TechnicianJobsResponse, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return TechnicianJobsResponse{}, fuego.BadRequestError{Detail: "Invalid technician ID"}
	}
	date, err := parseDateParam(c.QueryParam("date"))
	if err != nil {
		return TechnicianJobsResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	jobs, err := s.deps.Views.JobsForTechnicianAndDay(c.Context(), id, date)
	if err != nil {
		return TechnicianJobsResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return TechnicianJobsResponse{Jobs: jobs}, nil
}

func (s *Server) technicianWindow(c fuego.ContextNoBody) (WindowResponse, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return WindowResponse{}, fuego.BadRequestError{Detail: "Invalid technician ID"}
	}
	date, err := parseDateParam(c.QueryParam("date"))
	if err != nil {
		return WindowResponse{}, fuego.BadRequestError{Detail: err.Error()}
	}

	tech, err := s.deps.Directory.GetTechnician(c.Context(), id)
	if err != nil {
		return WindowResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	if tech == nil {
		return WindowResponse{}, fuego.NotFoundError{Detail: "Technician not found"}
	}

	return WindowResponse{
		Working: schedule.IsWorkingDay(tech, date, schedule.DefaultCalendarView()),
		Window:  schedule.WorkingWindow(tech, date),
	}, nil
}

func (s *Server) setTechnicianMeta(c fuego.ContextWithBody[TechnicianMetaRequest]) (any, error) {
	id, err := uuid.Parse(c.PathParam("id"))
	if err != nil {
		return nil, fuego.BadRequestError{Detail: "Invalid technician ID"}
	}
	body, err := c.Body()
	if err != nil {
		return nil, fuego.BadRequestError{Detail: err.Error()}
	}

	tech, err := s.deps.Directory.GetTechnician(c.Context(), id)
	if err != nil {
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	if tech == nil {
		return nil, fuego.NotFoundError{Detail: "Technician not found"}
	}

	if err := s.deps.Directory.SetTechnicianMeta(c.Context(), id, body.Meta); err != nil {
		if errors.Is(err, store.ErrTechnicianNotFound) {
			return nil, fuego.NotFoundError{Detail: "Technician not found"}
		}
		return nil, fuego.InternalServerError{Detail: err.Error()}
	}
	return map[string]string{"status": "updated"}, nil
}

// ============================================================================
// Orders / Grid Handlers
// ============================================================================

func (s *Server) listOrders(c fuego.ContextNoBody) (OrdersResponse, error) {
	orders, err := s.deps.Directory.ListServiceOrders(c.Context())
	if err != nil {
		return OrdersResponse{}, fuego.InternalServerError{Detail: err.Error()}
	}
	return OrdersResponse{Orders: orders}, nil
}

func (s *Server) gridDimensions(c fuego.ContextNoBody) (GridResponse, error) {
	zoom := schedule.ZoomLevel(c.PathParam("zoom"))
	return GridResponse{Zoom: zoom, Dimensions: schedule.GridDimensions(zoom)}, nil
}

// ============================================================================
// Helpers
// ============================================================================

// scheduleError maps the scheduling error taxonomy onto HTTP responses.
func scheduleError(err error) error {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		return fuego.NotFoundError{Detail: err.Error()}
	case errors.Is(err, schedule.ErrMalformedPayload),
		errors.Is(err, schedule.ErrStalePayload),
		errors.Is(err, schedule.ErrInvalidDuration):
		return fuego.BadRequestError{Detail: err.Error()}
	case errors.Is(err, schedule.ErrInvalidTransition),
		errors.Is(err, schedule.ErrPreconditionFailed):
		return fuego.ConflictError{Detail: err.Error()}
	default:
		return fuego.InternalServerError{Detail: err.Error()}
	}
}

func parseDateParam(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, errors.New("invalid date, want YYYY-MM-DD")
	}
	return d, nil
}
