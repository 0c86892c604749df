package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
)

// SignificanceLevel is the conventional threshold for rejecting independence.
// The test reports the p-value; callers apply the threshold.
const SignificanceLevel = 0.05

// IndependenceResult holds the outcome of a chi-square test of independence
// between pitch type and count.
type IndependenceResult struct {
	Statistic         float64 `json:"statistic"`
	DegreesOfFreedom  int     `json:"degrees_of_freedom"`
	PValue            float64 `json:"p_value"`
	CramersV          float64 `json:"cramers_v"`
	SampleSize        int     `json:"sample_size"`
	ZeroExpectedCells int     `json:"zero_expected_cells"`
}

// Dependent reports whether independence is rejected at the conventional
// 0.05 level.
func (r IndependenceResult) Dependent() bool {
	return r.PValue < SignificanceLevel
}

// Verdict returns the narrative interpretation of the test.
func (r IndependenceResult) Verdict() string {
	if r.Dependent() {
		return "pitch_type is dependent on count (reject null hypothesis)"
	}
	return "pitch_type is independent of count (fail to reject null hypothesis)"
}

// TestIndependence runs a chi-square test of independence over the table.
// It fails with ErrInsufficientData when the table is degenerate (fewer
// than 2 pitch types or 2 counts). Cells with zero expected frequency are
// excluded from the statistic and counted in ZeroExpectedCells; a zero
// expectation only arises from a structurally empty marginal.
func TestIndependence(table pitch.ContingencyTable) (IndependenceResult, error) {
	if table.IsDegenerate() {
		return IndependenceResult{}, core.NewInsufficientDataError(
			fmt.Sprintf("contingency table is %dx%d, need at least 2x2",
				len(table.PitchTypes), len(table.Counts)))
	}

	expected := table.Expected()
	total := table.GrandTotal()

	chiSq := 0.0
	zeroCells := 0
	for i, row := range table.Observed {
		for j, observed := range row {
			if expected[i][j] <= 0 {
				zeroCells++
				continue
			}
			diff := float64(observed) - expected[i][j]
			chiSq += diff * diff / expected[i][j]
		}
	}

	rows := len(table.PitchTypes)
	cols := len(table.Counts)
	df := (rows - 1) * (cols - 1)

	// Effect size: Cramer's V = sqrt(chi2 / (n * min(r-1, c-1)))
	minDim := math.Min(float64(rows-1), float64(cols-1))
	cramerV := math.Sqrt(chiSq / (float64(total) * minDim))

	return IndependenceResult{
		Statistic:         chiSq,
		DegreesOfFreedom:  df,
		PValue:            chiSquarePValue(chiSq, df),
		CramersV:          cramerV,
		SampleSize:        total,
		ZeroExpectedCells: zeroCells,
	}, nil
}

// chiSquarePValue converts a chi-square statistic to its right-tail p-value.
func chiSquarePValue(chiSquare float64, degreesOfFreedom int) float64 {
	if degreesOfFreedom <= 0 {
		return 1.0
	}

	chiDist := distuv.ChiSquared{K: float64(degreesOfFreedom)}
	p := 1 - chiDist.CDF(chiSquare)
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
