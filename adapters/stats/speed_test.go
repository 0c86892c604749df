package stats

import (
	"math"
	"testing"

	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
	"pitchgrid/internal/testkit"
)

func TestSummarizeSpeed(t *testing.T) {
	events := []pitch.Event{
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 96.1},
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 95.9},
		{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 1, ReleaseSpeed: 85.0},
	}

	summary, err := SummarizeSpeed(events, 2019, "FF")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(summary.Mean-96.0) > 1e-9 {
		t.Errorf("Expected FF mean speed 96.0, got %f", summary.Mean)
	}
	if summary.Samples != 2 {
		t.Errorf("Expected 2 samples, got %d", summary.Samples)
	}
	if summary.Min != 95.9 || summary.Max != 96.1 {
		t.Errorf("Expected min/max 95.9/96.1, got %f/%f", summary.Min, summary.Max)
	}
}

func TestSummarizeSpeed_EmptyGroup(t *testing.T) {
	events := []pitch.Event{
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 96.1},
	}

	_, err := SummarizeSpeed(events, 2019, "CU")
	if err == nil {
		t.Fatal("Expected error for empty group")
	}
	if !core.IsEmptyGroupError(err) {
		t.Errorf("Expected ErrEmptyGroup, got: %v", err)
	}

	// Wrong season is also an empty group.
	_, err = SummarizeSpeed(events, 2022, "FF")
	if !core.IsEmptyGroupError(err) {
		t.Errorf("Expected ErrEmptyGroup for missing season, got: %v", err)
	}
}

func TestSummarizeSpeedsBySeason_MeanWithinRange(t *testing.T) {
	events := testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Generate()

	summaries := SummarizeSpeedsBySeason(events)
	if len(summaries) == 0 {
		t.Fatal("Expected at least one group summary")
	}
	for _, s := range summaries {
		if s.Mean < s.Min || s.Mean > s.Max {
			t.Errorf("%d/%s: mean %.2f outside [%.2f, %.2f]", s.Season, s.PitchType, s.Mean, s.Min, s.Max)
		}
		if s.Samples == 0 {
			t.Errorf("%d/%s: group summary with zero samples", s.Season, s.PitchType)
		}
	}
}
