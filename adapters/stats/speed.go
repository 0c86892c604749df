package stats

import (
	"fmt"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
)

// SpeedSummary holds descriptive release-speed statistics for one group of
// pitches.
type SpeedSummary struct {
	Season    int     `json:"season"`
	PitchType string  `json:"pitch_type"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Median    float64 `json:"median"`
	Samples   int     `json:"samples"`
}

// SummarizeSpeed computes release-speed statistics for one (season, pitch
// type) group. Fails with ErrEmptyGroup when no events match: an empty
// group has no mean and silently returning zero would look like a 0 mph
// pitch.
func SummarizeSpeed(events []pitch.Event, season int, pitchType string) (SpeedSummary, error) {
	var speeds []float64
	for _, e := range events {
		if e.Season == season && e.PitchType == pitchType {
			speeds = append(speeds, e.ReleaseSpeed)
		}
	}
	if len(speeds) == 0 {
		return SpeedSummary{}, core.NewEmptyGroupError(
			fmt.Sprintf("season %d pitch_type %s", season, pitchType))
	}

	mean, _ := mstats.Mean(speeds)
	stdDev, _ := mstats.StandardDeviation(speeds)
	min, _ := mstats.Min(speeds)
	max, _ := mstats.Max(speeds)
	median, _ := mstats.Median(speeds)

	return SpeedSummary{
		Season:    season,
		PitchType: pitchType,
		Mean:      mean,
		StdDev:    stdDev,
		Min:       min,
		Max:       max,
		Median:    median,
		Samples:   len(speeds),
	}, nil
}

// SummarizeSpeedsBySeason computes a SpeedSummary for every (season, pitch
// type) group present in the event set, ordered by season then pitch type.
func SummarizeSpeedsBySeason(events []pitch.Event) []SpeedSummary {
	type groupKey struct {
		season    int
		pitchType string
	}
	groups := make(map[groupKey]bool)
	for _, e := range events {
		groups[groupKey{e.Season, e.PitchType}] = true
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].season != keys[j].season {
			return keys[i].season < keys[j].season
		}
		return keys[i].pitchType < keys[j].pitchType
	})

	summaries := make([]SpeedSummary, 0, len(keys))
	for _, k := range keys {
		// Groups come from the event set itself, so the summary cannot be empty.
		summary, err := SummarizeSpeed(events, k.season, k.pitchType)
		if err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
