package app

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats a SeasonReport as a markdown document mirroring
// the narrative shape of the exploratory analysis: test results, verdict,
// residual table, speed summary and per-count predictions.
func (r *SeasonReport) RenderMarkdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Season %d pitch analysis\n\n", r.Season)
	fmt.Fprintf(&b, "%d pitches, %d pitch types, %d counts.\n\n",
		r.EventCount, len(r.Table.PitchTypes), len(r.Table.Counts))

	fmt.Fprintf(&b, "## Chi-square test of independence\n\n")
	fmt.Fprintf(&b, "Chi2 = %.2f, dof = %d, p-value = %.4f, Cramer's V = %.3f\n\n",
		r.Independence.Statistic, r.Independence.DegreesOfFreedom,
		r.Independence.PValue, r.Independence.CramersV)
	fmt.Fprintf(&b, "In %d, %s.\n\n", r.Season, r.Independence.Verdict())
	if r.Independence.ZeroExpectedCells > 0 {
		fmt.Fprintf(&b, "%d cells had zero expected frequency and were excluded from the statistic.\n\n",
			r.Independence.ZeroExpectedCells)
	}

	fmt.Fprintf(&b, "## Residuals (observed - expected)\n\n")
	b.WriteString("| pitch_type |")
	for _, c := range r.Table.Counts {
		fmt.Fprintf(&b, " %s |", c.Key())
	}
	b.WriteString("\n|---|")
	for range r.Table.Counts {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, pitchType := range r.Table.PitchTypes {
		fmt.Fprintf(&b, "| %s |", pitchType)
		for j := range r.Table.Counts {
			fmt.Fprintf(&b, " %.1f |", r.Residuals[i][j])
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Release speed by pitch type\n\n")
	b.WriteString("| pitch_type | mean | min | max | samples |\n|---|---|---|---|---|\n")
	for _, s := range r.Speeds {
		fmt.Fprintf(&b, "| %s | %.1f | %.1f | %.1f | %d |\n", s.PitchType, s.Mean, s.Min, s.Max, s.Samples)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Most likely pitch per count\n\n")
	for _, p := range r.Predictions {
		fmt.Fprintf(&b, "Count %s: Pitch Type = %s, Expected Speed = %.1f MPH\n\n",
			p.Count.Key(), p.PitchType, p.MeanSpeed)
	}

	return b.String()
}

func formatSeason(season int) string {
	return fmt.Sprintf("%d", season)
}
