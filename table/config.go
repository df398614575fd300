package table

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Analysis modes accepted in AnalysisConfig.Mode.
const (
	ModePivot      = "pivot"
	ModeFlat       = "flat"
	ModeBoth       = "both"
	ModeSplitPivot = "split_pivot"
)

// FieldSpec names a source field and its user-facing alias. Row fields
// define the pivot index; column fields define the spread axis.
type FieldSpec struct {
	Field string `yaml:"field"`
	Alias string `yaml:"alias"`
}

// DependentVariable declares one measured metric field. Prefix (falling
// back to Alias, then Field) names the logical metric group the field
// belongs to.
type DependentVariable struct {
	Field  string `yaml:"field"`
	Alias  string `yaml:"alias"`
	Prefix string `yaml:"prefix"`
}

// GroupKey returns the metric-group key for the variable: the first
// non-empty of prefix, alias, field.
func (dv DependentVariable) GroupKey() string {
	if dv.Prefix != "" {
		return dv.Prefix
	}
	if dv.Alias != "" {
		return dv.Alias
	}
	return dv.Field
}

// Filter is one row-level predicate applied before reshaping.
type Filter struct {
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
	Values   []any  `yaml:"values"`
}

// IndependentVariables groups the pivot axes.
type IndependentVariables struct {
	RowFields    []FieldSpec `yaml:"row_fields"`
	ColumnFields []FieldSpec `yaml:"column_fields"`
}

// DerivedRowsConfig controls aggregate/single-NPU row synthesis.
type DerivedRowsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	NPUCountField string `yaml:"npu_count_field"`
}

// AnalysisConfig is the analysis block of the declarative config.
type AnalysisConfig struct {
	Mode                  string            `yaml:"mode"`
	DerivedRows           DerivedRowsConfig `yaml:"derived_rows"`
	NormalizationBaseline string            `yaml:"normalization_baseline"`
	MetricOrder           []string          `yaml:"metric_order"`
	SystemOrder           []string          `yaml:"system_order"`
	DecimalPlaces         int               `yaml:"decimal_places"`
}

// InputConfig locates the raw result files.
type InputConfig struct {
	SingleFile  string `yaml:"single_file"`
	SourceDir   string `yaml:"source_dir"`
	FilePattern string `yaml:"file_pattern"`
}

// OutputConfig controls spreadsheet export.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Filename   string `yaml:"filename"`
	SplitByNPU bool   `yaml:"split_by_npu"`
}

// Config is the full declarative analysis configuration.
type Config struct {
	Input                InputConfig          `yaml:"input"`
	Filters              []Filter             `yaml:"filters"`
	IndependentVariables IndependentVariables `yaml:"independent_variables"`
	DependentVariables   []DependentVariable  `yaml:"dependent_variables"`
	AdditionalFields     []string             `yaml:"additional_fields"`
	Analysis             AnalysisConfig       `yaml:"analysis"`
	Output               OutputConfig         `yaml:"output"`
}

// LoadConfig reads and parses a YAML analysis configuration, applying
// defaults for omitted values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in defaults for omitted config values.
func (c *Config) ApplyDefaults() {
	if c.Analysis.Mode == "" {
		c.Analysis.Mode = ModePivot
	}
	if c.Analysis.DerivedRows.NPUCountField == "" {
		c.Analysis.DerivedRows.NPUCountField = "decoder_num_npu"
	}
	if c.Analysis.DecimalPlaces <= 0 {
		c.Analysis.DecimalPlaces = 2
	}
	if c.Input.SourceDir == "" {
		c.Input.SourceDir = "./raw_data"
	}
	if c.Input.FilePattern == "" {
		c.Input.FilePattern = "*.csv"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./data"
	}
	if c.Output.Filename == "" {
		c.Output.Filename = "analysis_{timestamp}.xlsx"
	}
}

// RowFieldNames returns the configured row field names in order.
func (c *Config) RowFieldNames() []string {
	return fieldNames(c.IndependentVariables.RowFields)
}

// ColumnFieldNames returns the configured column field names in order.
func (c *Config) ColumnFieldNames() []string {
	return fieldNames(c.IndependentVariables.ColumnFields)
}

// NumericFields lists every configured field that should be coerced to a
// number before analysis: metrics, column-axis fields, additional fields.
func (c *Config) NumericFields() []string {
	var fields []string
	for _, dv := range c.DependentVariables {
		if dv.Field != "" {
			fields = append(fields, dv.Field)
		}
	}
	fields = append(fields, c.ColumnFieldNames()...)
	fields = append(fields, c.AdditionalFields...)
	return fields
}

// AliasMap returns field→alias mappings for the given specs, skipping
// entries with no alias.
func AliasMap(specs []FieldSpec) map[string]string {
	m := make(map[string]string, len(specs))
	for _, s := range specs {
		if s.Alias != "" {
			m[s.Field] = s.Alias
		}
	}
	return m
}

func fieldNames(specs []FieldSpec) []string {
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		if s.Field != "" {
			names = append(names, s.Field)
		}
	}
	return names
}
