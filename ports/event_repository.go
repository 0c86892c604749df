package ports

import (
	"context"

	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
)

// EventRepository defines the interface for pitch event storage operations
type EventRepository interface {
	// Bulk ingest of a parsed event set
	InsertEvents(ctx context.Context, events []pitch.Event) error

	// Queries
	EventsBySeason(ctx context.Context, season int) ([]pitch.Event, error)
	AllEvents(ctx context.Context) ([]pitch.Event, error)
	Seasons(ctx context.Context) ([]int, error)

	// Report persistence
	SaveReport(ctx context.Context, runID core.RunID, season int, reportJSON []byte) error
	LatestReport(ctx context.Context, season int) ([]byte, error)
}
