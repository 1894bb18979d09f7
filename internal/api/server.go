package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-fuego/fuego"
	"github.com/go-fuego/fuego/option"
)

// Server represents the Fuego API server. It is served mounted under
// the web server rather than on its own listener.
type Server struct {
	fuego *fuego.Server
	deps  *Dependencies
}

// Dependencies contains all service dependencies.
type Dependencies struct {
	Engine    SchedulingEngine
	Placement PlacementService
	Views     ReadModels
	Directory Directory
}

// Config holds API server configuration.
type Config struct {
	Port        int
	Title       string
	Description string
	Version     string
}

// NewServer creates a new Fuego API server.
func NewServer(cfg *Config, deps *Dependencies) *Server {
	s := fuego.NewServer(
		fuego.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		fuego.WithEngineOptions(
			fuego.WithOpenAPIConfig(fuego.OpenAPIConfig{
				PrettyFormatJSON: true,
				JSONFilePath:     "openapi.json",
				SwaggerURL:       "/docs",
				SpecURL:          "/openapi.json",
				UIHandler: func(specURL string) http.Handler {
					return ScalarHandler(specURL, cfg.Title, cfg.Description)
				},
			}),
		),
	)

	s.OpenAPI.Description().Info.Title = cfg.Title
	s.OpenAPI.Description().Info.Description = cfg.Description
	s.OpenAPI.Description().Info.Version = cfg.Version

	// Fuego is net/http compatible, so Chi middleware works directly
	fuego.Use(s, middleware.RequestID)
	fuego.Use(s, middleware.RealIP)
	fuego.Use(s, middleware.Recoverer)

	srv := &Server{
		fuego: s,
		deps:  deps,
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) registerRoutes() {
	fuego.Get(s.fuego, "/health", s.healthCheck,
		option.Summary("Health Check"),
		option.Description("Returns the health status of the API"),
		option.Tags("System"),
	)

	// Schedule API
	schedGroup := fuego.Group(s.fuego, "/api/v1/schedule",
		option.Tags("Schedule"),
	)

	fuego.Get(schedGroup, "/unassigned", s.listUnassigned,
		option.Summary("Unassigned Jobs"),
		option.Description("Returns unassigned jobs grouped by service order, empty groups dropped"),
		option.Query("q", "Case-insensitive filter against order id/title and job title"),
	)

	fuego.Post(schedGroup, "/drop", s.drop,
		option.Summary("Drop Job On Grid"),
		option.Description("Resolves a drag payload onto a (technician, date, hour) cell and assigns the job"),
	)

	fuego.Post(schedGroup, "/jobs/{id}/assign", s.assignJob,
		option.Summary("Assign Job"),
		option.Description("Binds a job to a technician and time range directly"),
	)

	fuego.Post(schedGroup, "/jobs/{id}/lock", s.lockJob,
		option.Summary("Lock Job"),
		option.Description("Confirms an assignment, protecting it from drag and resize"),
	)

	fuego.Post(schedGroup, "/jobs/{id}/unassign", s.unassignJob,
		option.Summary("Unassign Job"),
		option.Description("Returns a job to the unassigned pool; permitted from any state"),
	)

	fuego.Patch(schedGroup, "/jobs/{id}/resize", s.resizeJob,
		option.Summary("Resize Job"),
		option.Description("Moves a job's scheduled end; locked jobs report a no-op notice"),
	)

	// Technicians API
	techGroup := fuego.Group(s.fuego, "/api/v1/technicians",
		option.Tags("Technicians"),
	)

	fuego.Get(techGroup, "/", s.listTechnicians,
		option.Summary("List Technicians"),
		option.Description("Returns the technician directory with scheduling metadata"),
	)

	fuego.Get(techGroup, "/{id}/jobs", s.technicianJobs,
		option.Summary("Technician Day Schedule"),
		option.Description("Returns jobs scheduled for a technician on a date"),
		option.Query("date", "Day to read (YYYY-MM-DD, default today)"),
	)

	fuego.Get(techGroup, "/{id}/window", s.technicianWindow,
		option.Summary("Technician Working Window"),
		option.Description("Returns the effective working window for a technician on a date"),
		option.Query("date", "Day to read (YYYY-MM-DD, default today)"),
	)

	fuego.Put(techGroup, "/{id}/meta", s.setTechnicianMeta,
		option.Summary("Set Technician Metadata"),
		option.Description("Replaces a technician's schedule note, overrides and leave ranges"),
	)

	// Orders API
	fuego.Get(s.fuego, "/api/v1/orders", s.listOrders,
		option.Summary("List Service Orders"),
		option.Description("Returns the service orders jobs group under"),
		option.Tags("Orders"),
	)

	// Grid API
	fuego.Get(s.fuego, "/api/v1/grid/{zoom}", s.gridDimensions,
		option.Summary("Grid Dimensions"),
		option.Description("Returns the pixel geometry for a zoom level"),
		option.Tags("Grid"),
	)
}

// Mux returns the underlying ServeMux for mounting under the web server.
func (s *Server) Mux() *http.ServeMux {
	return s.fuego.Mux
}
