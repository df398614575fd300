// Package ingest loads raw benchmark result files into table records.
// Result files arrive in mixed encodings (UTF-8 with or without BOM,
// GB18030/GBK, latin-1) and in two shapes: standard header-first CSV, and
// a transposed "wide" layout with field names down the first column.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/benchgrid/benchgrid/table"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw file bytes to UTF-8. A BOM is stripped; valid
// UTF-8 passes through; otherwise GB18030 (superset of GBK) is tried, then
// latin-1, which always succeeds.
func DecodeText(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}
	for _, enc := range []encoding.Encoding{
		simplifiedchinese.GB18030,
		charmap.ISO8859_1,
	} {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), data)
		if err == nil && utf8.Valid(decoded) {
			return decoded, nil
		}
	}
	return nil, errors.New("undecodable text data")
}

// parseRows reads CSV cells in best-effort mode: lazy quotes, variable
// field counts, malformed lines skipped.
func parseRows(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// ReadCSV loads one result file into a table, auto-detecting encoding and
// the transposed wide layout.
func ReadCSV(path string) (*table.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := DecodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	rows, err := parseRows(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return table.NewTable(), nil
	}
	if IsWideFormat(rows) {
		rows = Transpose(rows)
	}
	return cellsToTable(rows), nil
}

// cellsToTable treats the first row as the header. Short rows pad with
// nulls; extra cells beyond the header are dropped.
func cellsToTable(rows [][]string) *table.Table {
	t := table.NewTable(rows[0]...)
	for _, cells := range rows[1:] {
		r := make(table.Record, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(cells) && cells[i] != "" {
				r[col] = cells[i]
			}
		}
		t.Rows = append(t.Rows, r)
	}
	return t
}
