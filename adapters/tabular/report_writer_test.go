package tabular

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pitchgrid/adapters/stats"
	"pitchgrid/domain/pitch"
)

func TestReportWriter_Roundtrip(t *testing.T) {
	events := []pitch.Event{
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 0, ReleaseSpeed: 96.1},
		{Season: 2019, PitchType: "FF", Balls: 0, Strikes: 1, ReleaseSpeed: 95.9},
		{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 0, ReleaseSpeed: 85.0},
		{Season: 2019, PitchType: "SL", Balls: 0, Strikes: 1, ReleaseSpeed: 86.0},
	}
	table := pitch.BuildContingencyTable(events)
	result, err := stats.TestIndependence(table)
	require.NoError(t, err)

	writer := NewReportWriter()
	require.NoError(t, writer.AddSeason(2019, table,
		result, stats.SummarizeSpeedsBySeason(events), stats.MostLikelyPitchPerCount(events)))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, writer.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "2019 observed")
	assert.Contains(t, sheets, "2019 expected")
	assert.Contains(t, sheets, "2019 residuals")
	assert.Contains(t, sheets, "2019 summary")

	// Header row of the observed sheet carries the count keys.
	header, err := f.GetRows("2019 observed")
	require.NoError(t, err)
	require.NotEmpty(t, header)
	assert.Equal(t, []string{"pitch_type", "0-0", "0-1"}, header[0])

	// FF row: one pitch at each count.
	assert.Equal(t, []string{"FF", "1", "1"}, header[1])
}
