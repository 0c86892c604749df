package app

import (
	"context"
	"strings"
	"testing"

	"pitchgrid/domain/core"
	"pitchgrid/internal/testkit"
)

func TestAnalyzeAll(t *testing.T) {
	events := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()
	service := NewSeasonService()

	reports, err := service.AnalyzeAll(context.Background(), events)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 season reports, got %d", len(reports))
	}
	if reports[0].Season != 2019 || reports[1].Season != 2022 {
		t.Errorf("Expected reports ordered [2019 2022], got [%d %d]", reports[0].Season, reports[1].Season)
	}

	for _, report := range reports {
		if report.RunID == "" {
			t.Errorf("Season %d: missing run ID", report.Season)
		}
		if report.EventCount != report.Table.GrandTotal() {
			t.Errorf("Season %d: event count %d != table total %d",
				report.Season, report.EventCount, report.Table.GrandTotal())
		}
		if len(report.Speeds) == 0 {
			t.Errorf("Season %d: no speed summaries", report.Season)
		}
		if len(report.Predictions) == 0 {
			t.Errorf("Season %d: no predictions", report.Season)
		}
	}
}

func TestAnalyzeSeason_UnknownSeason(t *testing.T) {
	events := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()
	service := NewSeasonService()

	_, err := service.AnalyzeSeason(context.Background(), events, 1999)
	if err == nil {
		t.Fatal("Expected error for unknown season")
	}
	if !core.IsNotFoundError(err) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestAnalyzeAll_DegenerateSeasonFails(t *testing.T) {
	config := testkit.DefaultGeneratorConfig()
	config.PitchTypes = []string{"FF"}
	config.CountBiased = false
	config.EventCount = 50
	events := testkit.NewGenerator(config).Generate()

	service := NewSeasonService()
	_, err := service.AnalyzeAll(context.Background(), events)
	if err == nil {
		t.Fatal("Expected error for single-pitch-type seasons")
	}
	if !core.IsInsufficientDataError(err) {
		t.Errorf("Expected ErrInsufficientData, got: %v", err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	events := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()
	service := NewSeasonService()

	report, err := service.AnalyzeSeason(context.Background(), events, 2019)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	md := report.RenderMarkdown()
	for _, want := range []string{
		"# Season 2019 pitch analysis",
		"## Chi-square test of independence",
		"## Residuals (observed - expected)",
		"## Most likely pitch per count",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown report missing %q", want)
		}
	}
}
