package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
	"pitchgrid/ports"
)

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new pitch event repository
func NewEventRepository(db *sqlx.DB) ports.EventRepository {
	return &eventRepository{db: db}
}

// EnsureSchema creates the pitch_events and season_reports tables if needed
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pitch_events (
		id BIGSERIAL PRIMARY KEY,
		season INT NOT NULL,
		pitch_type TEXT NOT NULL,
		balls INT NOT NULL CHECK (balls BETWEEN 0 AND 3),
		strikes INT NOT NULL CHECK (strikes BETWEEN 0 AND 2),
		release_speed DOUBLE PRECISION NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pitch_events_season ON pitch_events (season);

	CREATE TABLE IF NOT EXISTS season_reports (
		run_id TEXT PRIMARY KEY,
		season INT NOT NULL,
		report JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_season_reports_season ON season_reports (season, created_at DESC);`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// InsertEvents bulk-inserts a parsed event set
func (r *eventRepository) InsertEvents(ctx context.Context, events []pitch.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO pitch_events (season, pitch_type, balls, strikes, release_speed)
		VALUES (:season, :pitch_type, :balls, :strikes, :release_speed)`
	if _, err := tx.NamedExecContext(ctx, query, events); err != nil {
		return fmt.Errorf("failed to insert events: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	return nil
}

// EventsBySeason retrieves all events for one season
func (r *eventRepository) EventsBySeason(ctx context.Context, season int) ([]pitch.Event, error) {
	query := `SELECT season, pitch_type, balls, strikes, release_speed
		FROM pitch_events WHERE season = $1 ORDER BY id`

	var events []pitch.Event
	if err := r.db.SelectContext(ctx, &events, query, season); err != nil {
		return nil, fmt.Errorf("failed to load events for season %d: %w", season, err)
	}
	return events, nil
}

// AllEvents retrieves the full event set
func (r *eventRepository) AllEvents(ctx context.Context) ([]pitch.Event, error) {
	query := `SELECT season, pitch_type, balls, strikes, release_speed
		FROM pitch_events ORDER BY id`

	var events []pitch.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return events, nil
}

// Seasons lists the distinct seasons present, ascending
func (r *eventRepository) Seasons(ctx context.Context) ([]int, error) {
	var seasons []int
	if err := r.db.SelectContext(ctx, &seasons, `SELECT DISTINCT season FROM pitch_events ORDER BY season`); err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

// SaveReport persists a serialized season report
func (r *eventRepository) SaveReport(ctx context.Context, runID core.RunID, season int, reportJSON []byte) error {
	query := `INSERT INTO season_reports (run_id, season, report) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, runID.String(), season, reportJSON); err != nil {
		return fmt.Errorf("failed to save report for season %d: %w", season, err)
	}
	return nil
}

// LatestReport returns the most recent serialized report for a season
func (r *eventRepository) LatestReport(ctx context.Context, season int) ([]byte, error) {
	query := `SELECT report FROM season_reports WHERE season = $1 ORDER BY created_at DESC LIMIT 1`

	var report []byte
	err := r.db.GetContext(ctx, &report, query, season)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("report for season", fmt.Sprintf("%d", season))
		}
		return nil, fmt.Errorf("failed to load report for season %d: %w", season, err)
	}
	return report, nil
}
