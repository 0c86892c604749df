package pitch

import (
	"sort"
)

// ContingencyTable cross-tabulates observed pitch frequencies over
// (pitch type, count). Rows are pitch types, columns are counts, both in
// sorted order so cell layout is deterministic regardless of input order.
type ContingencyTable struct {
	PitchTypes []string `json:"pitch_types"`
	Counts     []Count  `json:"counts"`
	Observed   [][]int  `json:"observed"` // Observed[i][j] = events with PitchTypes[i] thrown at Counts[j]
}

// BuildContingencyTable tabulates the given events. The cell sum always
// equals len(events): every event lands in exactly one cell.
func BuildContingencyTable(events []Event) ContingencyTable {
	typeSet := make(map[string]bool)
	countSet := make(map[Count]bool)
	for _, e := range events {
		typeSet[e.PitchType] = true
		countSet[e.Count()] = true
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	counts := make([]Count, 0, len(countSet))
	for c := range countSet {
		counts = append(counts, c)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Less(counts[j]) })

	rowIdx := make(map[string]int, len(types))
	for i, t := range types {
		rowIdx[t] = i
	}
	colIdx := make(map[Count]int, len(counts))
	for j, c := range counts {
		colIdx[c] = j
	}

	observed := make([][]int, len(types))
	for i := range observed {
		observed[i] = make([]int, len(counts))
	}
	for _, e := range events {
		observed[rowIdx[e.PitchType]][colIdx[e.Count()]]++
	}

	return ContingencyTable{PitchTypes: types, Counts: counts, Observed: observed}
}

// RowTotals returns the marginal total per pitch type.
func (t ContingencyTable) RowTotals() []int {
	totals := make([]int, len(t.PitchTypes))
	for i, row := range t.Observed {
		for _, n := range row {
			totals[i] += n
		}
	}
	return totals
}

// ColTotals returns the marginal total per count.
func (t ContingencyTable) ColTotals() []int {
	totals := make([]int, len(t.Counts))
	for _, row := range t.Observed {
		for j, n := range row {
			totals[j] += n
		}
	}
	return totals
}

// GrandTotal returns the total number of tabulated events.
func (t ContingencyTable) GrandTotal() int {
	total := 0
	for _, row := range t.Observed {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// Expected computes the expected frequency per cell under the independence
// assumption: expected[i][j] = rowTotal[i] * colTotal[j] / grandTotal.
// Expected marginals match the observed marginals up to floating-point error.
func (t ContingencyTable) Expected() [][]float64 {
	rowTotals := t.RowTotals()
	colTotals := t.ColTotals()
	grand := t.GrandTotal()

	expected := make([][]float64, len(t.PitchTypes))
	for i := range expected {
		expected[i] = make([]float64, len(t.Counts))
		if grand == 0 {
			continue
		}
		for j := range expected[i] {
			expected[i][j] = float64(rowTotals[i]*colTotals[j]) / float64(grand)
		}
	}
	return expected
}

// Residuals returns the signed deviation observed - expected per cell.
// Positive cells are over-represented relative to independence.
func (t ContingencyTable) Residuals() [][]float64 {
	expected := t.Expected()
	residuals := make([][]float64, len(t.PitchTypes))
	for i := range residuals {
		residuals[i] = make([]float64, len(t.Counts))
		for j := range residuals[i] {
			residuals[i][j] = float64(t.Observed[i][j]) - expected[i][j]
		}
	}
	return residuals
}

// IsDegenerate reports whether the table is too small for an independence
// test: fewer than 2 pitch types or fewer than 2 counts.
func (t ContingencyTable) IsDegenerate() bool {
	return len(t.PitchTypes) < 2 || len(t.Counts) < 2
}
