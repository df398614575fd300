package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
input:
  source_dir: ./raw_data/inference
  file_pattern: "*.csv"
filters:
  - field: model_name
    operator: "=="
    values: ["deepseek-v3"]
independent_variables:
  row_fields:
    - field: system_name
      alias: System
    - field: input_len
      alias: Input Length
  column_fields:
    - field: time_limit
      alias: TPOT Limit
dependent_variables:
  - field: decoder_throughput
    alias: Decode Throughput
    prefix: Decode
  - field: decoder_throughput_per_npu
    alias: Decode Throughput (Single)
    prefix: Decode
additional_fields:
  - decoder_num_npu
analysis:
  mode: pivot
  derived_rows:
    enabled: true
    npu_count_field: decoder_num_npu
  normalization_baseline: SYS_POR
  metric_order: [Prefill, Decode]
  system_order: ["*POR*", "LEG*"]
  decimal_places: 3
output:
  dir: ./data/inference
  filename: inference_{timestamp}.xlsx
  split_by_npu: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ParsesFullDocument(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "./raw_data/inference", cfg.Input.SourceDir)
	assert.Equal(t, []string{"system_name", "input_len"}, cfg.RowFieldNames())
	assert.Equal(t, []string{"time_limit"}, cfg.ColumnFieldNames())
	assert.True(t, cfg.Analysis.DerivedRows.Enabled)
	assert.Equal(t, "decoder_num_npu", cfg.Analysis.DerivedRows.NPUCountField)
	assert.Equal(t, "SYS_POR", cfg.Analysis.NormalizationBaseline)
	assert.Equal(t, 3, cfg.Analysis.DecimalPlaces)
	assert.True(t, cfg.Output.SplitByNPU)
	require.Len(t, cfg.Filters, 1)
	assert.Equal(t, "deepseek-v3", cfg.Filters[0].Values[0])
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "independent_variables: {}\n"))
	require.NoError(t, err)

	assert.Equal(t, ModePivot, cfg.Analysis.Mode)
	assert.Equal(t, "decoder_num_npu", cfg.Analysis.DerivedRows.NPUCountField)
	assert.Equal(t, 2, cfg.Analysis.DecimalPlaces)
	assert.Equal(t, "*.csv", cfg.Input.FilePattern)
}

func TestLoadConfig_MissingFileIsAnError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_NumericFieldsCollectsMetricsColumnsAndExtras(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"decoder_throughput", "decoder_throughput_per_npu",
		"time_limit", "decoder_num_npu",
	}, cfg.NumericFields())
}

func TestDependentVariable_GroupKeyPrecedence(t *testing.T) {
	assert.Equal(t, "P", DependentVariable{Field: "f", Alias: "A", Prefix: "P"}.GroupKey())
	assert.Equal(t, "A", DependentVariable{Field: "f", Alias: "A"}.GroupKey())
	assert.Equal(t, "f", DependentVariable{Field: "f"}.GroupKey())
}
