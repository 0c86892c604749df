package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pitchgrid/adapters/stats"
	"pitchgrid/domain/pitch"
)

// ReportWriter exports season analysis artifacts to an .xlsx workbook,
// one sheet per artifact.
type ReportWriter struct {
	file *excelize.File
}

// NewReportWriter creates an empty workbook.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{file: excelize.NewFile()}
}

// AddSeason writes the observed, expected and residual tables plus the
// independence result, speed summaries and per-count predictions for one
// season.
func (w *ReportWriter) AddSeason(season int, table pitch.ContingencyTable,
	result stats.IndependenceResult, summaries []stats.SpeedSummary,
	predictions []stats.CountPrediction) error {

	if err := w.writeMatrixSheet(fmt.Sprintf("%d observed", season), table, intCells(table.Observed)); err != nil {
		return err
	}
	if err := w.writeMatrixSheet(fmt.Sprintf("%d expected", season), table, floatCells(table.Expected())); err != nil {
		return err
	}
	if err := w.writeMatrixSheet(fmt.Sprintf("%d residuals", season), table, floatCells(table.Residuals())); err != nil {
		return err
	}
	if err := w.writeSummarySheet(season, result, summaries, predictions); err != nil {
		return err
	}
	return nil
}

// Save writes the workbook to disk.
func (w *ReportWriter) Save(path string) error {
	// excelize creates a default "Sheet1" we never fill.
	if idx, err := w.file.GetSheetIndex("Sheet1"); err == nil && idx >= 0 {
		w.file.DeleteSheet("Sheet1")
	}
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeMatrixSheet(name string, table pitch.ContingencyTable, cells [][]interface{}) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := make([]interface{}, 0, len(table.Counts)+1)
	header = append(header, "pitch_type")
	for _, c := range table.Counts {
		header = append(header, c.Key())
	}
	if err := w.file.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, pitchType := range table.PitchTypes {
		row := make([]interface{}, 0, len(cells[i])+1)
		row = append(row, pitchType)
		row = append(row, cells[i]...)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := w.file.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReportWriter) writeSummarySheet(season int, result stats.IndependenceResult,
	summaries []stats.SpeedSummary, predictions []stats.CountPrediction) error {

	name := fmt.Sprintf("%d summary", season)
	if _, err := w.file.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	rows := [][]interface{}{
		{"chi2", result.Statistic},
		{"dof", result.DegreesOfFreedom},
		{"p_value", result.PValue},
		{"cramers_v", result.CramersV},
		{"verdict", result.Verdict()},
		{},
		{"pitch_type", "mean_speed", "std_dev", "min", "max", "median", "samples"},
	}
	for _, s := range summaries {
		rows = append(rows, []interface{}{s.PitchType, s.Mean, s.StdDev, s.Min, s.Max, s.Median, s.Samples})
	}
	rows = append(rows, []interface{}{}, []interface{}{"count", "most_likely_pitch", "frequency", "mean_speed"})
	for _, p := range predictions {
		rows = append(rows, []interface{}{p.Count.Key(), p.PitchType, p.Frequency, p.MeanSpeed})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		rowCopy := row
		if err := w.file.SetSheetRow(name, cell, &rowCopy); err != nil {
			return err
		}
	}
	return nil
}

func intCells(matrix [][]int) [][]interface{} {
	out := make([][]interface{}, len(matrix))
	for i, row := range matrix {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}

func floatCells(matrix [][]float64) [][]interface{} {
	out := make([][]interface{}, len(matrix))
	for i, row := range matrix {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
