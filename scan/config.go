// Package scan automates parameter sweeps: it generates per-value config
// variants plus a run script, and harvests the transposed per-run result
// CSVs back into one summary table.
package scan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParamMode controls how sweep values are generated.
type ParamMode struct {
	ValueType  string  `yaml:"value_type"` // "arithmetic" or "power_of_2"
	Format     string  `yaml:"format"`     // "single", "pair", "pair_null_first"
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
	Step       float64 `yaml:"step"`
	StartPower int     `yaml:"start_power"`
	EndPower   int     `yaml:"end_power"`
}

// ScanConfig is the scan block of the sweep configuration.
type ScanConfig struct {
	BaseRuntimeConfig   string    `yaml:"base_runtime_config"`
	BaseSysConfig       string    `yaml:"base_sys_config"`
	ParamPath           string    `yaml:"param_path"`
	ParamMode           ParamMode `yaml:"param_mode"`
	OutputDir           string    `yaml:"output_dir"`
	GeneratedConfigsDir string    `yaml:"generated_configs_dir"`
	CommandsFile        string    `yaml:"commands_file"`
	KeyFields           []string  `yaml:"key_fields"`
	TargetFiles         []string  `yaml:"target_files"`
	SummaryFile         string    `yaml:"summary_file"`
}

// RunConfig holds the command template the run script is built from.
type RunConfig struct {
	Command string `yaml:"command"`
}

// Config is the full sweep configuration.
type Config struct {
	Scan ScanConfig `yaml:"scan"`
	Run  RunConfig  `yaml:"run"`
}

// LoadConfig reads and parses a YAML sweep configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sweep config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing sweep config %s: %w", path, err)
	}
	if cfg.Scan.CommandsFile == "" {
		cfg.Scan.CommandsFile = "run_simulations.sh"
	}
	if cfg.Scan.SummaryFile == "" {
		cfg.Scan.SummaryFile = "scan_summary.csv"
	}
	if len(cfg.Scan.TargetFiles) == 0 {
		cfg.Scan.TargetFiles = DefaultTargetFiles
	}
	return &cfg, nil
}
