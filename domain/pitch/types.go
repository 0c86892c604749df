package pitch

import (
	"fmt"
	"sort"

	"pitchgrid/domain/core"
)

// Event represents a single thrown pitch. Events are immutable once loaded;
// every analysis recomputes from the full event slice.
type Event struct {
	Season       int     `json:"season" db:"season"`
	PitchType    string  `json:"pitch_type" db:"pitch_type"`
	Balls        int     `json:"balls" db:"balls"`
	Strikes      int     `json:"strikes" db:"strikes"`
	ReleaseSpeed float64 `json:"release_speed" db:"release_speed"`
}

// Validate checks field-level constraints on an event. Violations map to
// ErrMalformedRow so ingestion can reject rows early instead of letting
// missing fields bias aggregation downstream.
func (e Event) Validate() error {
	if e.PitchType == "" {
		return fmt.Errorf("%w: missing pitch_type", core.ErrMalformedRow)
	}
	if e.Season <= 0 {
		return fmt.Errorf("%w: invalid season %d", core.ErrMalformedRow, e.Season)
	}
	if e.Balls < 0 || e.Balls > 3 {
		return fmt.Errorf("%w: balls out of range: %d", core.ErrMalformedRow, e.Balls)
	}
	if e.Strikes < 0 || e.Strikes > 2 {
		return fmt.Errorf("%w: strikes out of range: %d", core.ErrMalformedRow, e.Strikes)
	}
	if e.ReleaseSpeed <= 0 {
		return fmt.Errorf("%w: release_speed must be positive, got %.2f", core.ErrMalformedRow, e.ReleaseSpeed)
	}
	return nil
}

// Count returns the (balls, strikes) state at the moment the pitch was thrown.
func (e Event) Count() Count {
	return Count{Balls: e.Balls, Strikes: e.Strikes}
}

// Count is the derived (balls, strikes) key. Twelve combinations exist.
type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

// Key formats a count as "balls-strikes", e.g. "3-2".
func (c Count) Key() string {
	return fmt.Sprintf("%d-%d", c.Balls, c.Strikes)
}

// Less orders counts by balls, then strikes.
func (c Count) Less(other Count) bool {
	if c.Balls != other.Balls {
		return c.Balls < other.Balls
	}
	return c.Strikes < other.Strikes
}

// FilterSeason returns the events belonging to one season.
func FilterSeason(events []Event, season int) []Event {
	var out []Event
	for _, e := range events {
		if e.Season == season {
			out = append(out, e)
		}
	}
	return out
}

// Seasons returns the distinct seasons present in the event set, ascending.
func Seasons(events []Event) []int {
	seen := make(map[int]bool)
	for _, e := range events {
		seen[e.Season] = true
	}
	seasons := make([]int, 0, len(seen))
	for s := range seen {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)
	return seasons
}
