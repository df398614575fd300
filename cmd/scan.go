package cmd

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/benchgrid/benchgrid/scan"
)

var scanConfigPath string // Path to the sweep configuration

// generateCmd emits per-value config variants and the run script.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate parameter-sweep config variants and a run script",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := scan.LoadConfig(scanConfigPath)
		if err != nil {
			logrus.Fatalf("loading sweep config: %v", err)
		}
		commands, err := scan.Generate(cfg)
		if err != nil {
			logrus.Fatalf("generation failed: %v", err)
		}
		logrus.Infof("generated %d run commands", len(commands))
	},
}

// harvestCmd collects per-run result CSVs into one summary table.
var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Collect per-run sweep results into a summary CSV",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := scan.LoadConfig(scanConfigPath)
		if err != nil {
			logrus.Fatalf("loading sweep config: %v", err)
		}
		sc := cfg.Scan
		paramName := scan.ParamName(sc.ParamPath)
		runtimePrefix := filepath.Base(sc.BaseRuntimeConfig)
		runtimePrefix = runtimePrefix[:len(runtimePrefix)-len(filepath.Ext(runtimePrefix))]
		resultsDir := filepath.Join(sc.OutputDir, runtimePrefix)

		summary, err := scan.Harvest(resultsDir, paramName, sc.TargetFiles, sc.KeyFields)
		if err != nil {
			logrus.Fatalf("harvest failed: %v", err)
		}
		if err := scan.WriteSummaryCSV(summary, sc.SummaryFile); err != nil {
			logrus.Fatalf("writing summary: %v", err)
		}
		logrus.Infof("wrote %d rows to %s", len(summary.Rows), sc.SummaryFile)
	},
}
