package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pitchgrid/domain/core"
	"pitchgrid/domain/pitch"
)

// ColumnMapping names the source columns that carry each event field.
// Defaults follow Statcast CSV exports.
type ColumnMapping struct {
	Season       string
	PitchType    string
	Balls        string
	Strikes      string
	ReleaseSpeed string
}

// DefaultColumnMapping returns the Statcast column names.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Season:       "game_year",
		PitchType:    "pitch_type",
		Balls:        "balls",
		Strikes:      "strikes",
		ReleaseSpeed: "release_speed",
	}
}

// EventReader reads pitch events from Excel and CSV files.
type EventReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	mapping  ColumnMapping
}

// NewEventReader creates a reader that handles both Excel and CSV files,
// keyed on file extension.
func NewEventReader(filePath string) *EventReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &EventReader{filePath: filePath, fileType: fileType, mapping: DefaultColumnMapping()}
}

// WithMapping overrides the default column mapping.
func (r *EventReader) WithMapping(mapping ColumnMapping) *EventReader {
	r.mapping = mapping
	return r
}

// ReadEvents reads all pitch events from the source file. A row missing a
// required field fails the whole read with ErrMalformedRow context rather
// than being skipped, since silent skips would bias the statistics.
func (r *EventReader) ReadEvents() ([]pitch.Event, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s must have at least a header row and one data row", r.filePath)
	}

	return r.parseRows(rows)
}

func (r *EventReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

func (r *EventReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use the first sheet.
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

// parseRows converts header + data rows into validated events.
func (r *EventReader) parseRows(rows [][]string) ([]pitch.Event, error) {
	header := rows[0]
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	required := map[string]string{
		"season":        r.mapping.Season,
		"pitch_type":    r.mapping.PitchType,
		"balls":         r.mapping.Balls,
		"strikes":       r.mapping.Strikes,
		"release_speed": r.mapping.ReleaseSpeed,
	}
	for field, column := range required {
		if _, ok := colIdx[column]; !ok {
			return nil, fmt.Errorf("missing required column %q (%s) in %s", column, field, r.filePath)
		}
	}

	events := make([]pitch.Event, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rowNum := n + 2 // 1-based, after the header

		season, err := r.intCell(row, colIdx[r.mapping.Season], rowNum, "season")
		if err != nil {
			return nil, err
		}
		balls, err := r.intCell(row, colIdx[r.mapping.Balls], rowNum, "balls")
		if err != nil {
			return nil, err
		}
		strikes, err := r.intCell(row, colIdx[r.mapping.Strikes], rowNum, "strikes")
		if err != nil {
			return nil, err
		}
		speed, err := r.floatCell(row, colIdx[r.mapping.ReleaseSpeed], rowNum, "release_speed")
		if err != nil {
			return nil, err
		}
		pitchType, err := r.stringCell(row, colIdx[r.mapping.PitchType], rowNum, "pitch_type")
		if err != nil {
			return nil, err
		}

		event := pitch.Event{
			Season:       season,
			PitchType:    pitchType,
			Balls:        balls,
			Strikes:      strikes,
			ReleaseSpeed: speed,
		}
		if err := event.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *EventReader) stringCell(row []string, col, rowNum int, field string) (string, error) {
	if col >= len(row) || strings.TrimSpace(row[col]) == "" {
		return "", core.NewMalformedRowError(rowNum, fmt.Sprintf("missing %s", field))
	}
	return strings.TrimSpace(row[col]), nil
}

func (r *EventReader) intCell(row []string, col, rowNum int, field string) (int, error) {
	raw, err := r.stringCell(row, col, rowNum, field)
	if err != nil {
		return 0, err
	}
	// Statcast exports sometimes carry integer columns as "2.0".
	if f, ferr := strconv.ParseFloat(raw, 64); ferr == nil && f == float64(int(f)) {
		return int(f), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewMalformedRowError(rowNum, fmt.Sprintf("non-integer %s: %q", field, raw))
	}
	return v, nil
}

func (r *EventReader) floatCell(row []string, col, rowNum int, field string) (float64, error) {
	raw, err := r.stringCell(row, col, rowNum, field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewMalformedRowError(rowNum, fmt.Sprintf("non-numeric %s: %q", field, raw))
	}
	return v, nil
}

// ReadEventFiles reads and concatenates events from several source files.
func ReadEventFiles(paths []string) ([]pitch.Event, error) {
	var events []pitch.Event
	for _, path := range paths {
		fileEvents, err := NewEventReader(path).ReadEvents()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		events = append(events, fileEvents...)
	}
	return events, nil
}
