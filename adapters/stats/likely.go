package stats

import (
	mstats "github.com/montanaflynn/stats"

	"pitchgrid/domain/pitch"
)

// CountPrediction names the pitch type thrown most often at one count,
// with that subgroup's mean release speed.
type CountPrediction struct {
	Count     pitch.Count `json:"count"`
	PitchType string      `json:"pitch_type"`
	Frequency int         `json:"frequency"`
	MeanSpeed float64     `json:"mean_speed"`
}

// MostLikelyPitchPerCount selects, for every count present in the event
// set, the pitch type with the highest observed frequency. Frequency ties
// resolve to the lexicographically smallest pitch type code so the result
// does not depend on input or map iteration order. Results follow the
// table's count ordering.
func MostLikelyPitchPerCount(events []pitch.Event) []CountPrediction {
	table := pitch.BuildContingencyTable(events)

	predictions := make([]CountPrediction, 0, len(table.Counts))
	for j, count := range table.Counts {
		best := -1
		bestFreq := 0
		for i := range table.PitchTypes {
			freq := table.Observed[i][j]
			if freq == 0 {
				continue
			}
			// Rows are sorted, so the first row at the max frequency wins ties.
			if freq > bestFreq {
				best = i
				bestFreq = freq
			}
		}
		if best < 0 {
			continue
		}

		pitchType := table.PitchTypes[best]
		var speeds []float64
		for _, e := range events {
			if e.Count() == count && e.PitchType == pitchType {
				speeds = append(speeds, e.ReleaseSpeed)
			}
		}
		mean, _ := mstats.Mean(speeds)

		predictions = append(predictions, CountPrediction{
			Count:     count,
			PitchType: pitchType,
			Frequency: bestFreq,
			MeanSpeed: mean,
		})
	}
	return predictions
}
