package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/benchgrid/benchgrid/table"
)

func sampleTable() *table.Table {
	return &table.Table{
		Columns: []string{"System", "Input Length", "Decode_100ms"},
		Rows: []table.Record{
			{"System": "A", "Input Length": 4096.0, "Decode_100ms": 2.0},
			{"System": "B", "Input Length": 4096.0, "Decode_100ms": 1.0},
			{"System": "A", "Input Length": 1024.0, "Decode_100ms": 1.5},
		},
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "analysis_pivot.xlsx", WithSuffix("analysis.xlsx", "pivot"))
	assert.Equal(t, "analysis.xlsx", WithSuffix("analysis.xlsx", ""))
	assert.Equal(t, "report_full", WithSuffix("report", "full"))
}

func TestFormatFilename_SubstitutesTimestamp(t *testing.T) {
	got := FormatFilename("analysis_{timestamp}.xlsx")

	assert.NotContains(t, got, "{timestamp}")
	assert.Regexp(t, `^analysis_\d{8}_\d{6}\.xlsx$`, got)
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "analysis.xlsx")

	require.NoError(t, Write(sampleTable(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"System", "Input Length", "Decode_100ms"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "2", rows[1][2])
}

func TestWriteSplitSheets_OneSheetPerValueAscending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.xlsx")

	require.NoError(t, WriteSplitSheets(sampleTable(), "Input Length", path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// sheets named by split value, smallest first, default sheet renamed
	assert.Equal(t, []string{"1024", "4096"}, f.GetSheetList())

	rows, err := f.GetRows("4096")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// the split column is omitted from the sheet
	assert.Equal(t, []string{"System", "Decode_100ms"}, rows[0])

	rows, err = f.GetRows("1024")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1.5", rows[1][1])
}

func TestWriteSplitSheets_UnknownFieldIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "split.xlsx")

	err := WriteSplitSheets(sampleTable(), "no_such_field", path)

	assert.Error(t, err)
}
