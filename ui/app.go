package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pitchgrid/app"
	"pitchgrid/domain/pitch"
	"pitchgrid/internal"
)

// App serves the analysis results over HTTP
type App struct {
	router  *chi.Mux
	service *app.SeasonService
	events  []pitch.Event
	logger  *internal.Logger
}

// NewApp creates a new UI application over an already-loaded event set.
// The event set is read-only; every request recomputes its answer from it.
func NewApp(events []pitch.Event, logger *internal.Logger) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: app.NewSeasonService(),
		events:  events,
		logger:  logger,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures all application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)

	a.router.Get("/api/seasons", a.handleListSeasons)
	a.router.Get("/api/seasons/{year}/report", a.handleSeasonReport)
	a.router.Get("/api/seasons/{year}/independence", a.handleIndependence)
	a.router.Get("/api/seasons/{year}/residuals", a.handleResiduals)
	a.router.Get("/api/seasons/{year}/speeds", a.handleSpeeds)
	a.router.Get("/api/seasons/{year}/likely", a.handleMostLikely)

	a.router.Get("/seasons/{year}/report.html", a.handleReportHTML)
}

// Router returns the configured HTTP handler
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port
func (a *App) Serve(port string) error {
	a.logger.Info("serving pitch analysis on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}
