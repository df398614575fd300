package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taggedRows(rows []Record) []Record {
	return TagDefaultRows(rows)
}

func TestAssemblePivot_SpreadsColumnsDescending(t *testing.T) {
	// GIVEN rows with two time limit settings
	rows := taggedRows([]Record{
		{"system": "A", "time_limit": 50.0, "tp": 10.0},
		{"system": "A", "time_limit": 100.0, "tp": 20.0},
	})

	// WHEN pivoted across the time limit
	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, []string{"time_limit"},
		[]PivotTarget{{Prefix: "Decode", Field: "tp"}})
	require.NoError(t, err)

	// THEN the widest setting comes first and values land in their columns
	assert.Equal(t, []string{"system", RowTypeField, "Decode_100ms", "Decode_50ms"}, got.Columns)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 20.0, got.Rows[0]["Decode_100ms"])
	assert.Equal(t, 10.0, got.Rows[0]["Decode_50ms"])
}

func TestAssemblePivot_UnitSuffixOnlyForTimeLikeAxes(t *testing.T) {
	rows := taggedRows([]Record{
		{"system": "A", "batch": 4.0, "tp": 10.0},
	})

	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, []string{"batch"},
		[]PivotTarget{{Prefix: "Decode", Field: "tp"}})
	require.NoError(t, err)

	assert.Contains(t, got.Columns, "Decode_4")
}

func TestAssemblePivot_MultiFieldColumnAxisJoinsValues(t *testing.T) {
	rows := taggedRows([]Record{
		{"system": "A", "time_limit": 100.0, "batch": 8.0, "tp": 20.0},
	})

	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, []string{"time_limit", "batch"},
		[]PivotTarget{{Prefix: "Decode", Field: "tp"}})
	require.NoError(t, err)

	assert.Contains(t, got.Columns, "Decode_100_8ms")
}

func TestAssemblePivot_PrefillGroupNeverSpreads(t *testing.T) {
	// GIVEN a prefill-like metric varying across three column-key values
	rows := taggedRows([]Record{
		{"system": "A", "time_limit": 50.0, "prefill_lat": 5.0},
		{"system": "A", "time_limit": 100.0, "prefill_lat": 5.0},
		{"system": "A", "time_limit": 200.0, "prefill_lat": 5.0},
	})

	// WHEN pivoted
	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, []string{"time_limit"},
		[]PivotTarget{{Prefix: "Prefill", Field: "prefill_lat"}})
	require.NoError(t, err)

	// THEN exactly one output column regardless of the column axis
	assert.Equal(t, []string{"system", RowTypeField, "Prefill"}, got.Columns)
	assert.Equal(t, 5.0, got.Rows[0]["Prefill"])
}

func TestAssemblePivot_FirstNonNullWinsOnDuplicates(t *testing.T) {
	// GIVEN duplicate cells for one (row, column) combination
	rows := taggedRows([]Record{
		{"system": "A", "time_limit": 100.0, "tp": nil},
		{"system": "A", "time_limit": 100.0, "tp": 20.0},
		{"system": "A", "time_limit": 100.0, "tp": 99.0},
	})

	// WHEN pivoted
	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, []string{"time_limit"},
		[]PivotTarget{{Prefix: "Decode", Field: "tp"}})
	require.NoError(t, err)

	// THEN the first non-null value is kept, the rest ignored
	assert.Equal(t, 20.0, got.Rows[0]["Decode_100ms"])
}

func TestAssemblePivot_NoColumnFieldsYieldsSingleColumn(t *testing.T) {
	rows := taggedRows([]Record{
		{"system": "A", "tp": 10.0},
		{"system": "B", "tp": 30.0},
	})

	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, nil,
		[]PivotTarget{{Prefix: "Decode", Field: "tp"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"system", RowTypeField, "Decode"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 10.0, got.Rows[0]["Decode"])
	assert.Equal(t, 30.0, got.Rows[1]["Decode"])
}

func TestAssemblePivot_BlocksJoinOnRowIndexOuterUnion(t *testing.T) {
	// GIVEN one metric observed only for system B
	rows := taggedRows([]Record{
		{"system": "A", "tp": 10.0},
		{"system": "B", "tp": 30.0, "lat": 3.0},
	})

	// WHEN two groups are pivoted
	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, nil,
		[]PivotTarget{
			{Prefix: "Decode", Field: "tp"},
			{Prefix: "Latency", Field: "lat"},
		})
	require.NoError(t, err)

	// THEN the blocks align on the row index and the gap stays null
	require.Len(t, got.Rows, 2)
	assert.Equal(t, 3.0, got.Rows[1]["Latency"])
	assert.True(t, IsNull(got.Rows[0]["Latency"]))
}

func TestAssemblePivot_UnknownMetricFieldSkippedAllMissingIsFatal(t *testing.T) {
	rows := taggedRows([]Record{{"system": "A", "tp": 10.0}})

	// One unknown target among known ones is tolerated
	got, err := AssemblePivot(rows, []string{"system", RowTypeField}, nil,
		[]PivotTarget{
			{Prefix: "Ghost", Field: "missing"},
			{Prefix: "Decode", Field: "tp"},
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"system", RowTypeField, "Decode"}, got.Columns)

	// All targets unknown leaves nothing to return
	_, err = AssemblePivot(rows, []string{"system", RowTypeField}, nil,
		[]PivotTarget{{Prefix: "Ghost", Field: "missing"}})
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestCoerceColumns_MakesTextIndexesSortNumerically(t *testing.T) {
	// GIVEN string index values that mis-sort lexicographically
	got := &Table{
		Columns: []string{"input_len"},
		Rows: []Record{
			{"input_len": "2"},
			{"input_len": "10"},
			{"input_len": "9"},
		},
	}

	// WHEN coerced and sorted
	got.CoerceColumns("input_len")
	SortRows(got, []string{"input_len"}, "", nil)

	// THEN ascending order is 2, 9, 10 rather than 10, 2, 9
	assert.Equal(t, 2.0, got.Rows[0]["input_len"])
	assert.Equal(t, 9.0, got.Rows[1]["input_len"])
	assert.Equal(t, 10.0, got.Rows[2]["input_len"])
}

func TestFilterKnownFields_DropsAbsentFields(t *testing.T) {
	rows := []Record{{"a": 1.0, "b": 2.0}}

	kept := FilterKnownFields(rows, []string{"a", "missing", "b"}, "row")

	assert.Equal(t, []string{"a", "b"}, kept)
}
