package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pitchgrid/adapters/postgres"
	"pitchgrid/adapters/tabular"
	"pitchgrid/app"
	"pitchgrid/domain/pitch"
	"pitchgrid/internal"
	"pitchgrid/internal/config"
	"pitchgrid/internal/errors"
	"pitchgrid/ports"
	"pitchgrid/ui"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "failed to initialize schema")
	}
	return db, nil
}

// loadEvents assembles the event set from the configured files and, when a
// database is configured, syncs file events into it (or falls back to the
// stored events when no files are given).
func loadEvents(ctx context.Context, appConfig *config.Config, repo ports.EventRepository, logger *internal.Logger) ([]pitch.Event, error) {
	if len(appConfig.Data.Files) > 0 {
		events, err := tabular.ReadEventFiles(appConfig.Data.Files)
		if err != nil {
			return nil, errors.IngestError("data files", err)
		}
		logger.Info("loaded %d pitch events from %d file(s)", len(events), len(appConfig.Data.Files))

		if repo != nil {
			if err := repo.InsertEvents(ctx, events); err != nil {
				return nil, errors.Wrap(err, "failed to persist events")
			}
			logger.Info("persisted %d events", len(events))
		}
		return events, nil
	}

	events, err := repo.AllEvents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load events from database")
	}
	logger.Info("loaded %d pitch events from database", len(events))
	return events, nil
}

func main() {
	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	ctx := context.Background()

	var repo ports.EventRepository
	if appConfig.Database.Enabled {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewEventRepository(db)
	}

	events, err := loadEvents(ctx, appConfig, repo, logger)
	if err != nil {
		log.Fatalf("Failed to load events: %v", err)
	}

	// Run the full analysis once at startup so degenerate seasons surface
	// immediately, and persist the reports when a database is configured.
	service := app.NewSeasonService()
	reports, err := service.AnalyzeAll(ctx, events)
	if err != nil {
		log.Fatalf("Season analysis failed: %v", err)
	}
	for _, report := range reports {
		logger.Info("season %d: chi2=%.2f dof=%d p=%.4f (%s)",
			report.Season, report.Independence.Statistic,
			report.Independence.DegreesOfFreedom, report.Independence.PValue,
			report.Independence.Verdict())

		if repo != nil {
			payload, err := json.Marshal(report)
			if err != nil {
				logger.Warn("failed to serialize report for season %d: %v", report.Season, err)
				continue
			}
			if err := repo.SaveReport(ctx, report.RunID, report.Season, payload); err != nil {
				logger.Warn("failed to persist report for season %d: %v", report.Season, err)
			}
		}
	}

	uiApp := ui.NewApp(events, logger)
	if err := uiApp.Serve(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
