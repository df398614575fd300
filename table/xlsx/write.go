// Package xlsx serializes tables to Excel workbooks, including the
// split-by-field multi-sheet layout analysts use to compare one input
// length per sheet.
package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/benchgrid/benchgrid/table"
)

// Excel limits sheet names to 31 characters.
const maxSheetNameLen = 31

// FormatFilename substitutes {timestamp} in a filename template.
func FormatFilename(template string) string {
	return strings.ReplaceAll(template, "{timestamp}", time.Now().Format("20060102_150405"))
}

// WithSuffix inserts a suffix before the filename extension:
// ("analysis.xlsx", "pivot") → "analysis_pivot.xlsx".
func WithSuffix(filename, suffix string) string {
	if suffix == "" {
		return filename
	}
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_" + suffix + ext
}

// Write saves the table to a single-sheet workbook, creating the target
// directory if needed.
func Write(t *table.Table, path string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Warnf("closing workbook: %v", err)
		}
	}()
	if err := writeSheet(f, "Sheet1", t, ""); err != nil {
		return err
	}
	return save(f, path)
}

// WriteSplitSheets saves the table with one sheet per distinct value of
// splitField, ascending. The split column itself is omitted from every
// sheet since the sheet name carries its value.
func WriteSplitSheets(t *table.Table, splitField, path string) error {
	if !t.HasColumn(splitField) {
		return fmt.Errorf("split field %q not in table", splitField)
	}

	var vals []any
	seen := make(map[string]bool)
	for _, r := range t.Rows {
		key := table.FormatValue(r[splitField])
		if !seen[key] {
			seen[key] = true
			vals = append(vals, r[splitField])
		}
	}
	sort.SliceStable(vals, func(i, j int) bool { return table.CompareValues(vals[i], vals[j]) < 0 })

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.Warnf("closing workbook: %v", err)
		}
	}()

	for i, val := range vals {
		name := sheetName(table.FormatValue(val))
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("adding sheet %q: %w", name, err)
			}
		}
		sub := t.Filter(func(r table.Record) bool {
			return table.CompareValues(r[splitField], val) == 0
		})
		if err := writeSheet(f, name, sub, splitField); err != nil {
			return err
		}
	}
	return save(f, path)
}

// writeSheet fills one sheet with the table's header and rows, skipping
// the omit column if given.
func writeSheet(f *excelize.File, sheet string, t *table.Table, omit string) error {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c != omit {
			cols = append(cols, c)
		}
	}
	for i, c := range cols {
		if err := setCell(f, sheet, i+1, 1, c); err != nil {
			return err
		}
	}
	for ri, r := range t.Rows {
		for ci, c := range cols {
			v := r[c]
			if table.IsNull(v) {
				continue
			}
			if err := setCell(f, sheet, ci+1, ri+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coordinates (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("writing cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func save(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func sheetName(v string) string {
	if v == "" {
		return "empty"
	}
	if len(v) > maxSheetNameLen {
		return v[:maxSheetNameLen]
	}
	return v
}
