package testkit

import (
	"math/rand"

	"pitchgrid/domain/pitch"
)

// GeneratorConfig configures the synthetic pitch data generator
type GeneratorConfig struct {
	Seasons     []int    `json:"seasons"`
	PitchTypes  []string `json:"pitch_types"`
	EventCount  int      `json:"event_count"`
	Seed        int64    `json:"seed"`
	CountBiased bool     `json:"count_biased"`
}

// DefaultGeneratorConfig returns sensible defaults: two seasons, four
// pitch types, count-dependent selection so the independence test has
// something to find.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Seasons:     []int{2019, 2022},
		PitchTypes:  []string{"CH", "CU", "FF", "SL"},
		EventCount:  2000,
		Seed:        42,
		CountBiased: true,
	}
}

// Generator produces deterministic synthetic pitch events
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a seeded generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// baseSpeeds approximate per-type release speeds in mph.
var baseSpeeds = map[string]float64{
	"FF": 95.0,
	"SL": 87.0,
	"CU": 79.0,
	"CH": 86.0,
}

// Generate produces the configured number of events spread evenly over the
// configured seasons.
func (g *Generator) Generate() []pitch.Event {
	events := make([]pitch.Event, 0, g.config.EventCount)
	for i := 0; i < g.config.EventCount; i++ {
		season := g.config.Seasons[i%len(g.config.Seasons)]
		balls := g.rng.Intn(4)
		strikes := g.rng.Intn(3)
		pitchType := g.pickPitchType(balls, strikes)

		speed := 88.0
		if base, ok := baseSpeeds[pitchType]; ok {
			speed = base
		}
		speed += g.rng.NormFloat64() * 1.5

		events = append(events, pitch.Event{
			Season:       season,
			PitchType:    pitchType,
			Balls:        balls,
			Strikes:      strikes,
			ReleaseSpeed: speed,
		})
	}
	return events
}

// pickPitchType selects a pitch type, skewed by count when CountBiased:
// fastballs when behind in the count, breaking balls with two strikes.
func (g *Generator) pickPitchType(balls, strikes int) string {
	if !g.config.CountBiased {
		return g.config.PitchTypes[g.rng.Intn(len(g.config.PitchTypes))]
	}

	roll := g.rng.Float64()
	switch {
	case balls == 3:
		// Behind in the count: mostly fastballs.
		if roll < 0.8 {
			return "FF"
		}
	case strikes == 2:
		// Two strikes: chase pitches.
		if roll < 0.45 {
			return "SL"
		}
		if roll < 0.70 {
			return "CU"
		}
	}
	return g.config.PitchTypes[g.rng.Intn(len(g.config.PitchTypes))]
}
