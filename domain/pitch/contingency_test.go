package pitch

import (
	"math"
	"testing"
)

func sampleEvents() []Event {
	return []Event{
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 96.1},
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 95.9},
		{Season: 2019, PitchType: "FF", Balls: 1, Strikes: 2, ReleaseSpeed: 96.5},
		{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 1, ReleaseSpeed: 85.0},
		{Season: 2019, PitchType: "SL", Balls: 1, Strikes: 2, ReleaseSpeed: 86.2},
		{Season: 2019, PitchType: "CU", Balls: 0, Strikes: 1, ReleaseSpeed: 79.3},
	}
}

func TestBuildContingencyTable_CellSumEqualsEventCount(t *testing.T) {
	events := sampleEvents()
	table := BuildContingencyTable(events)

	if got := table.GrandTotal(); got != len(events) {
		t.Errorf("Expected cell sum %d, got %d", len(events), got)
	}
}

func TestBuildContingencyTable_NonzeroCells(t *testing.T) {
	events := []Event{
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 96.1},
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 95.9},
		{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 1, ReleaseSpeed: 85.0},
	}
	table := BuildContingencyTable(events)

	nonzero := 0
	for _, row := range table.Observed {
		for _, n := range row {
			if n > 0 {
				nonzero++
			}
		}
	}
	if nonzero != 2 {
		t.Errorf("Expected 2 nonzero cells, got %d", nonzero)
	}
	if table.GrandTotal() != 3 {
		t.Errorf("Expected grand total 3, got %d", table.GrandTotal())
	}
}

func TestBuildContingencyTable_SortedAxes(t *testing.T) {
	table := BuildContingencyTable(sampleEvents())

	for i := 1; i < len(table.PitchTypes); i++ {
		if table.PitchTypes[i-1] >= table.PitchTypes[i] {
			t.Errorf("Pitch types not sorted: %v", table.PitchTypes)
		}
	}
	for j := 1; j < len(table.Counts); j++ {
		if !table.Counts[j-1].Less(table.Counts[j]) {
			t.Errorf("Counts not sorted: %v", table.Counts)
		}
	}
}

func TestExpected_MarginalsMatchObserved(t *testing.T) {
	table := BuildContingencyTable(sampleEvents())
	expected := table.Expected()

	rowTotals := table.RowTotals()
	for i := range expected {
		sum := 0.0
		for _, v := range expected[i] {
			sum += v
		}
		if relDiff(sum, float64(rowTotals[i])) > 1e-6 {
			t.Errorf("Row %d expected marginal %.6f != observed %d", i, sum, rowTotals[i])
		}
	}

	colTotals := table.ColTotals()
	for j := range table.Counts {
		sum := 0.0
		for i := range expected {
			sum += expected[i][j]
		}
		if relDiff(sum, float64(colTotals[j])) > 1e-6 {
			t.Errorf("Col %d expected marginal %.6f != observed %d", j, sum, colTotals[j])
		}
	}
}

func TestResiduals_SumToZero(t *testing.T) {
	table := BuildContingencyTable(sampleEvents())
	residuals := table.Residuals()

	sum := 0.0
	for i := range residuals {
		for j := range residuals[i] {
			sum += residuals[i][j]
		}
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("Residuals should sum to zero, got %.9f", sum)
	}
}

func TestIsDegenerate(t *testing.T) {
	t.Run("single pitch type", func(t *testing.T) {
		events := []Event{
			{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 95.0},
			{Season: 2019, PitchType: "FF", Balls: 1, Strikes: 1, ReleaseSpeed: 94.0},
		}
		if !BuildContingencyTable(events).IsDegenerate() {
			t.Error("Expected table with one pitch type to be degenerate")
		}
	})

	t.Run("single count", func(t *testing.T) {
		events := []Event{
			{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 95.0},
			{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 0, ReleaseSpeed: 85.0},
		}
		if !BuildContingencyTable(events).IsDegenerate() {
			t.Error("Expected table with one count to be degenerate")
		}
	})

	t.Run("2x2", func(t *testing.T) {
		if BuildContingencyTable(sampleEvents()).IsDegenerate() {
			t.Error("Expected multi-type multi-count table to not be degenerate")
		}
	})
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}
