package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"pitchgrid/adapters/stats"
	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
)

// SeasonReport bundles the four analysis artifacts for one season.
type SeasonReport struct {
	RunID        core.RunID               `json:"run_id"`
	Season       int                      `json:"season"`
	EventCount   int                      `json:"event_count"`
	Table        pitch.ContingencyTable   `json:"contingency_table"`
	Expected     [][]float64              `json:"expected"`
	Residuals    [][]float64              `json:"residuals"`
	Independence stats.IndependenceResult `json:"independence"`
	Speeds       []stats.SpeedSummary     `json:"speeds"`
	Predictions  []stats.CountPrediction  `json:"predictions"`
	ComputedAt   core.Timestamp           `json:"computed_at"`
	RuntimeMs    int64                    `json:"runtime_ms"`
}

// SeasonService runs the analysis operations over an in-memory event set.
// Every operation is a pure function of the events passed in; the service
// holds no dataset state of its own.
type SeasonService struct{}

// NewSeasonService creates a season analysis service.
func NewSeasonService() *SeasonService {
	return &SeasonService{}
}

// AnalyzeSeason runs all four operations for one season. Fails with
// ErrInsufficientData when the season's contingency table is degenerate.
func (s *SeasonService) AnalyzeSeason(ctx context.Context, events []pitch.Event, season int) (*SeasonReport, error) {
	start := time.Now()

	seasonEvents := pitch.FilterSeason(events, season)
	if len(seasonEvents) == 0 {
		return nil, core.NewNotFoundError("season", formatSeason(season))
	}

	table := pitch.BuildContingencyTable(seasonEvents)
	result, err := stats.TestIndependence(table)
	if err != nil {
		return nil, err
	}

	return &SeasonReport{
		RunID:        core.RunID(core.NewID()),
		Season:       season,
		EventCount:   len(seasonEvents),
		Table:        table,
		Expected:     table.Expected(),
		Residuals:    table.Residuals(),
		Independence: result,
		Speeds:       stats.SummarizeSpeedsBySeason(seasonEvents),
		Predictions:  stats.MostLikelyPitchPerCount(seasonEvents),
		ComputedAt:   core.Now(),
		RuntimeMs:    time.Since(start).Milliseconds(),
	}, nil
}

// AnalyzeAll runs AnalyzeSeason for every season in the event set.
// Seasons are analyzed concurrently: operations never mutate shared data,
// so the only coordination needed is collecting results.
func (s *SeasonService) AnalyzeAll(ctx context.Context, events []pitch.Event) ([]*SeasonReport, error) {
	seasons := pitch.Seasons(events)

	var mu sync.Mutex
	reports := make([]*SeasonReport, 0, len(seasons))

	g, ctx := errgroup.WithContext(ctx)
	for _, season := range seasons {
		season := season
		g.Go(func() error {
			report, err := s.AnalyzeSeason(ctx, events, season)
			if err != nil {
				return err
			}
			mu.Lock()
			reports = append(reports, report)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Season < reports[j].Season })
	return reports, nil
}
