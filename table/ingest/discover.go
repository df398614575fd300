package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/benchgrid/benchgrid/table"
)

// LoadRecords loads the configured input into one merged table. A
// single_file setting that exists wins; otherwise source_dir is scanned
// with file_pattern and every loadable file is merged, each row tagged
// with its source file name. Files that fail to load are logged and
// skipped; having no loadable data at all is an error.
func LoadRecords(cfg *table.InputConfig) (*table.Table, error) {
	if cfg.SingleFile != "" {
		if _, err := os.Stat(cfg.SingleFile); err == nil {
			logrus.Infof("loading single file %s", cfg.SingleFile)
			return ReadCSV(cfg.SingleFile)
		}
	}

	pattern := filepath.Join(cfg.SourceDir, cfg.FilePattern)
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", pattern, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files match %s", pattern)
	}
	logrus.Infof("found %d input files", len(files))

	merged := table.NewTable()
	loaded := 0
	for _, path := range files {
		t, err := ReadCSV(path)
		if err != nil {
			logrus.Warnf("skipping %s: %v", filepath.Base(path), err)
			continue
		}
		name := filepath.Base(path)
		for _, col := range t.Columns {
			merged.AddColumn(col)
		}
		merged.AddColumn(table.SourceFileField)
		for _, r := range t.Rows {
			r[table.SourceFileField] = name
			merged.Rows = append(merged.Rows, r)
		}
		loaded++
		logrus.Debugf("loaded %s (%d rows)", name, len(t.Rows))
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no input file could be loaded from %s", pattern)
	}
	logrus.Infof("loaded %d records from %d files", len(merged.Rows), loaded)
	return merged, nil
}
