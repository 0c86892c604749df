package stats

import (
	"math"
	"math/rand"
	"testing"

	"pitchgrid/domain/pitch"
)

func TestMostLikelyPitchPerCount(t *testing.T) {
	events := []pitch.Event{
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 96.1},
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 95.9},
		{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 1, ReleaseSpeed: 85.0},
	}

	predictions := MostLikelyPitchPerCount(events)
	if len(predictions) != 2 {
		t.Fatalf("Expected predictions for 2 counts, got %d", len(predictions))
	}

	zeroZero := predictions[0]
	if zeroZero.Count.Key() != "0-0" {
		t.Fatalf("Expected first count 0-0, got %s", zeroZero.Count.Key())
	}
	if zeroZero.PitchType != "FF" {
		t.Errorf("Expected FF at 0-0, got %s", zeroZero.PitchType)
	}
	if zeroZero.Frequency != 2 {
		t.Errorf("Expected frequency 2 at 0-0, got %d", zeroZero.Frequency)
	}
	if math.Abs(zeroZero.MeanSpeed-96.0) > 1e-9 {
		t.Errorf("Expected mean speed 96.0 at 0-0, got %f", zeroZero.MeanSpeed)
	}
}

func TestMostLikelyPitchPerCount_TieBreakDeterministic(t *testing.T) {
	// SL and FF are tied at count 1-1; the lexicographically smaller code
	// must win no matter how the input is ordered.
	base := []pitch.Event{
		{Season: 2019, PitchType: "SL", Balls: 1, Strikes: 1, ReleaseSpeed: 85.0},
		{Season: 2019, PitchType: "FF", Balls: 1, Strikes: 1, ReleaseSpeed: 96.0},
		{Season: 2019, PitchType: "SL", Balls: 1, Strikes: 1, ReleaseSpeed: 86.0},
		{Season: 2019, PitchType: "FF", Balls: 1, Strikes: 1, ReleaseSpeed: 95.0},
	}

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		events := make([]pitch.Event, len(base))
		copy(events, base)
		rng.Shuffle(len(events), func(i, j int) {
			events[i], events[j] = events[j], events[i]
		})

		predictions := MostLikelyPitchPerCount(events)
		if len(predictions) != 1 {
			t.Fatalf("Expected 1 prediction, got %d", len(predictions))
		}
		if predictions[0].PitchType != "FF" {
			t.Fatalf("Trial %d: tie should break to FF, got %s", trial, predictions[0].PitchType)
		}
	}
}
