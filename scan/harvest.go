package scan

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/benchgrid/benchgrid/table"
)

// DefaultTargetFiles lists the per-run result CSVs to harvest, in priority
// order; the first one found in a run directory wins. A ".gz" variant of
// each name is also accepted.
var DefaultTargetFiles = []string{
	"pd-split-request-optimal_result_best.csv",
	"pd-split-request-optimal_decoder_best.csv",
	"pd-split-request-optimal_prefill_best.csv",
}

// ParseTransposedCSV reads a per-run result file in the transposed layout
// (field_name, run_0, run_1, ...), returning each field's run values with
// run columns in name order. Gzipped files are decompressed transparently.
func ParseTransposedCSV(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	nameIdx := -1
	type runCol struct {
		name string
		idx  int
	}
	var runCols []runCol
	for i, col := range header {
		switch {
		case col == "field_name":
			nameIdx = i
		case strings.HasPrefix(col, "run_"):
			runCols = append(runCols, runCol{name: col, idx: i})
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%s: no field_name column", path)
	}
	sort.Slice(runCols, func(i, j int) bool { return runCols[i].name < runCols[j].name })

	data := make(map[string][]string)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if nameIdx >= len(row) || row[nameIdx] == "" {
			continue
		}
		values := make([]string, 0, len(runCols))
		for _, rc := range runCols {
			if rc.idx < len(row) {
				values = append(values, row[rc.idx])
			}
		}
		data[row[nameIdx]] = values
	}
	return data, nil
}

// ExtractParamFromFilename pulls the swept value out of a generated name
// like "config_mem1_GiB_50": the token following the param name.
func ExtractParamFromFilename(filename, paramName string) string {
	base := strings.TrimSuffix(filepath.Base(filename), ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(base, "_")
	paramParts := strings.Split(paramName, "_")

	for i := 0; i+len(paramParts) < len(parts); i++ {
		match := true
		for j, pp := range paramParts {
			if parts[i+j] != pp {
				match = false
				break
			}
		}
		if match {
			return parts[i+len(paramParts)]
		}
	}
	return ""
}

// extractParamFromData looks for the swept value inside the parsed run
// data, trying the dotted field name, the flat name, and the bare leaf.
func extractParamFromData(data map[string][]string, paramName string) string {
	dotted := strings.ReplaceAll(paramName, "_", ".")
	candidates := []string{dotted, paramName, dotted[strings.LastIndex(dotted, ".")+1:]}
	for _, name := range candidates {
		if values, ok := data[name]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// Harvest walks the results tree, parses the highest-priority target CSV
// of each run directory and assembles a summary table: one row per run,
// columns = the swept parameter plus the configured key fields (first run
// value each). Rows are ordered by ascending parameter value.
func Harvest(resultsDir, paramName string, targetFiles, keyFields []string) (*table.Table, error) {
	if len(targetFiles) == 0 {
		targetFiles = DefaultTargetFiles
	}

	var found []string
	err := filepath.WalkDir(resultsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		for _, target := range targetFiles {
			for _, name := range []string{target, target + ".gz"} {
				candidate := filepath.Join(path, name)
				if _, statErr := os.Stat(candidate); statErr == nil {
					found = append(found, candidate)
					return nil
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", resultsDir, err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no target result files under %s", resultsDir)
	}
	logrus.Infof("harvesting %d result files", len(found))

	t := table.NewTable(append([]string{paramName}, keyFields...)...)
	for _, path := range found {
		data, err := ParseTransposedCSV(path)
		if err != nil {
			logrus.Warnf("skipping %s: %v", path, err)
			continue
		}
		paramValue := ExtractParamFromFilename(filepath.Base(filepath.Dir(path)), paramName)
		if paramValue == "" {
			paramValue = extractParamFromData(data, paramName)
		}
		r := table.Record{paramName: table.CoerceNumeric(paramValue)}
		for _, field := range keyFields {
			if values, ok := data[field]; ok && len(values) > 0 {
				r[field] = table.CoerceNumeric(values[0])
			}
		}
		t.Rows = append(t.Rows, r)
	}

	table.SortRows(t, []string{paramName}, "", nil)
	return t, nil
}

// WriteSummaryCSV writes the harvested summary table as a plain CSV.
func WriteSummaryCSV(t *table.Table, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, r := range t.Rows {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = table.FormatValue(r[c])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
