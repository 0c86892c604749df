// One-shot analysis of pitch data files: prints chi-square results,
// residuals, speed summaries and most-likely-pitch tables per season, and
// optionally exports everything to an .xlsx workbook.
//
// Usage:
//
//	pitchgrid-cli [-export report.xlsx] file.csv [file2.csv ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"pitchgrid/adapters/tabular"
	"pitchgrid/app"
)

func main() {
	exportPath := flag.String("export", "", "write an .xlsx report to this path")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: pitchgrid-cli [-export report.xlsx] file.csv [file2.csv ...]")
		os.Exit(2)
	}

	events, err := tabular.ReadEventFiles(flag.Args())
	if err != nil {
		log.Fatalf("Failed to read data files: %v", err)
	}

	service := app.NewSeasonService()
	reports, err := service.AnalyzeAll(context.Background(), events)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	var writer *tabular.ReportWriter
	if *exportPath != "" {
		writer = tabular.NewReportWriter()
	}

	for _, report := range reports {
		printReport(report)
		if writer != nil {
			if err := writer.AddSeason(report.Season, report.Table,
				report.Independence, report.Speeds, report.Predictions); err != nil {
				log.Fatalf("Failed to add season %d to workbook: %v", report.Season, err)
			}
		}
	}

	if writer != nil {
		if err := writer.Save(*exportPath); err != nil {
			log.Fatalf("Failed to write %s: %v", *exportPath, err)
		}
		fmt.Printf("\nReport written to %s\n", *exportPath)
	}
}

func printReport(report *app.SeasonReport) {
	fmt.Printf("%d Chi-Square Test: Chi2 = %.2f, p-value = %.4f\n",
		report.Season, report.Independence.Statistic, report.Independence.PValue)
	fmt.Printf("In %d, %s.\n", report.Season, report.Independence.Verdict())

	fmt.Printf("\n%d - Chi-square residuals:\n", report.Season)
	fmt.Printf("%-12s", "pitch_type")
	for _, c := range report.Table.Counts {
		fmt.Printf("%8s", c.Key())
	}
	fmt.Println()
	for i, pitchType := range report.Table.PitchTypes {
		fmt.Printf("%-12s", pitchType)
		for j := range report.Table.Counts {
			fmt.Printf("%8.1f", report.Residuals[i][j])
		}
		fmt.Println()
	}

	fmt.Printf("\nRelease speed by pitch type in %d:\n", report.Season)
	for _, s := range report.Speeds {
		fmt.Printf("  %s: mean %.1f MPH (min %.1f, max %.1f, n=%d)\n",
			s.PitchType, s.Mean, s.Min, s.Max, s.Samples)
	}

	fmt.Printf("\nMost likely pitch type and expected speed for each count in %d:\n", report.Season)
	for _, p := range report.Predictions {
		fmt.Printf("Count %s: Pitch Type = %s, Expected Speed = %.1f MPH\n",
			p.Count.Key(), p.PitchType, p.MeanSpeed)
	}
	fmt.Println()
}
