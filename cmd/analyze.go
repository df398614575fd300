package cmd

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/benchgrid/benchgrid/table"
	"github.com/benchgrid/benchgrid/table/ingest"
	"github.com/benchgrid/benchgrid/table/xlsx"
)

// analyzeCmd loads the raw result files and exports the reshaped tables.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Reshape benchmark results into analyst-facing wide tables",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := table.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("loading config: %v", err)
		}

		outputs, err := runAnalysis(cfg)
		if err != nil {
			logrus.Fatalf("analysis failed: %v", err)
		}
		for _, path := range outputs {
			logrus.Infof("exported %s", path)
		}
	},
}

// runAnalysis executes the full pipeline: ingest, filter, coerce, build
// the pivot and/or flat table per analysis.mode, export. It returns the
// exported file paths.
func runAnalysis(cfg *table.Config) ([]string, error) {
	t, err := ingest.LoadRecords(&cfg.Input)
	if err != nil {
		return nil, err
	}

	records := t.Rows
	if len(cfg.Filters) > 0 {
		before := len(records)
		records = table.ApplyFilters(records, cfg.Filters)
		logrus.Infof("filters applied: %d -> %d records", before, len(records))
	}
	filtered := &table.Table{Columns: t.Columns, Rows: records}
	filtered.CoerceColumns(cfg.NumericFields()...)

	var outputs []string
	mode := cfg.Analysis.Mode

	if mode == table.ModePivot || mode == table.ModeBoth || mode == table.ModeSplitPivot {
		logrus.Info("building pivot table")
		pivot, err := table.BuildPivotTable(filtered.Rows, cfg)
		if err != nil {
			return nil, err
		}
		if preview {
			renderTable(pivot)
		}
		paths, err := exportPivot(pivot, cfg)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, paths...)
	}

	if mode == table.ModeFlat || mode == table.ModeBoth {
		logrus.Info("building flat table")
		flat := table.BuildFlatTable(filtered.Rows, cfg)
		if preview {
			renderTable(flat)
		}
		suffix := ""
		if mode == table.ModeBoth {
			suffix = "flat"
		}
		path := outputPath(cfg, suffix)
		if err := xlsx.Write(flat, path); err != nil {
			return nil, err
		}
		outputs = append(outputs, path)
	}

	return outputs, nil
}

// exportPivot handles the three pivot export shapes: split by NPU
// granularity, split across sheets by the last row field, or one flat
// workbook.
func exportPivot(pivot *table.Table, cfg *table.Config) ([]string, error) {
	mode := cfg.Analysis.Mode

	if cfg.Output.SplitByNPU && pivot.HasColumn(table.MetricLabelHeader) {
		logrus.Info("splitting output by NPU granularity")
		var outputs []string
		single := pivot.Filter(func(r table.Record) bool {
			return table.FormatValue(r[table.MetricLabelHeader]) == table.SingleUnitLabel
		})
		multi := pivot.Filter(func(r table.Record) bool {
			return table.FormatValue(r[table.MetricLabelHeader]) != table.SingleUnitLabel
		})
		for _, part := range []struct {
			t      *table.Table
			suffix string
		}{{single, "single"}, {multi, "multi"}, {pivot, "full"}} {
			if len(part.t.Rows) == 0 {
				continue
			}
			path := outputPath(cfg, part.suffix)
			if err := xlsx.Write(part.t, path); err != nil {
				return nil, err
			}
			outputs = append(outputs, path)
		}
		return outputs, nil
	}

	if mode == table.ModeSplitPivot {
		if field := splitFieldName(cfg); field != "" && pivot.HasColumn(field) {
			path := outputPath(cfg, "split")
			if err := xlsx.WriteSplitSheets(pivot, field, path); err != nil {
				return nil, err
			}
			return []string{path}, nil
		}
		logrus.Warnf("split field not found in result, falling back to standard export")
	}

	suffix := ""
	if mode == table.ModeBoth {
		suffix = "pivot"
	}
	path := outputPath(cfg, suffix)
	if err := xlsx.Write(pivot, path); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// splitFieldName resolves the sheet-split field: the last configured row
// field, under its alias when one is set.
func splitFieldName(cfg *table.Config) string {
	fields := cfg.IndependentVariables.RowFields
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	if last.Alias != "" {
		return last.Alias
	}
	return last.Field
}

func outputPath(cfg *table.Config, suffix string) string {
	name := xlsx.WithSuffix(xlsx.FormatFilename(cfg.Output.Filename), suffix)
	return filepath.Join(cfg.Output.Dir, name)
}
