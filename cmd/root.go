package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by all subcommands
	configPath string // Path to the YAML configuration
	logLevel   string // Log verbosity level
	preview    bool   // Render result tables to the terminal
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "benchgrid",
	Short: "Config-driven integration of benchmark result tables",
}

// setupLogging applies the --log flag before any subcommand runs.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	analyzeCmd.Flags().StringVarP(&configPath, "config", "c", "analysis_config.yaml", "Analysis configuration file")
	analyzeCmd.Flags().BoolVar(&preview, "preview", false, "Print result tables to the terminal")
	rootCmd.AddCommand(analyzeCmd)

	generateCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "scan_config.yaml", "Sweep configuration file")
	rootCmd.AddCommand(generateCmd)

	harvestCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "scan_config.yaml", "Sweep configuration file")
	rootCmd.AddCommand(harvestCmd)
}
