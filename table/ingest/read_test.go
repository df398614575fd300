package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecodeText_StripsBOM(t *testing.T) {
	got, err := DecodeText([]byte("\xEF\xBB\xBFsystem_name,tp\n"))
	require.NoError(t, err)
	assert.Equal(t, "system_name,tp\n", string(got))
}

func TestDecodeText_PassesValidUTF8Through(t *testing.T) {
	in := []byte("field,值\na,1\n")
	got, err := DecodeText(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestDecodeText_FallsBackToGB18030(t *testing.T) {
	// GIVEN "中文" in GBK bytes, which are not valid UTF-8
	in := []byte{0xD6, 0xD0, 0xCE, 0xC4}

	got, err := DecodeText(in)

	require.NoError(t, err)
	assert.Equal(t, "中文", string(got))
}

func TestReadCSV_StandardLayout(t *testing.T) {
	path := writeFile(t, "result.csv", []byte("system_name,tp\nA,800\nB,400\n"))

	got, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"system_name", "tp"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "800", got.Rows[0]["tp"])
}

func TestReadCSV_TransposedWideLayout(t *testing.T) {
	// GIVEN field names down the first column, one column per run
	path := writeFile(t, "best.csv", []byte(
		"field_name,run_0,run_1\nsystem_name,A,B\ntp,800,400\n"))

	got, err := ReadCSV(path)
	require.NoError(t, err)

	// THEN the grid is flipped into header-first layout
	assert.Equal(t, []string{"field_name", "system_name", "tp"}, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "A", got.Rows[0]["system_name"])
	assert.Equal(t, "400", got.Rows[1]["tp"])
}

func TestReadCSV_EmptyCellsBecomeNulls(t *testing.T) {
	path := writeFile(t, "gaps.csv", []byte("a,b,c\n1,,3\n4\n"))

	got, err := ReadCSV(path)
	require.NoError(t, err)

	require.Len(t, got.Rows, 2)
	_, hasB := got.Rows[0]["b"]
	assert.False(t, hasB)
	_, hasC := got.Rows[1]["c"]
	assert.False(t, hasC)
	assert.Equal(t, "4", got.Rows[1]["a"])
}

func TestIsWideFormat(t *testing.T) {
	assert.True(t, IsWideFormat([][]string{{"field_name", "run_0"}}))
	assert.True(t, IsWideFormat([][]string{{"x", "y"}, {"model_name", "m"}}))
	assert.False(t, IsWideFormat([][]string{{"system_name", "tp"}, {"A", "1"}}))
}

func TestTranspose_FlipsRaggedGrid(t *testing.T) {
	got := Transpose([][]string{
		{"field_name", "run_0", "run_1"},
		{"tp", "800"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, []string{"field_name", "tp"}, got[0])
	assert.Equal(t, []string{"run_0", "800"}, got[1])
	assert.Equal(t, []string{"run_1", ""}, got[2])
}
