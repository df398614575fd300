package table

import (
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrEmptyResult is returned when no metric group produced any pivot data.
// It is the only fatal condition in the pipeline.
var ErrEmptyResult = errors.New("no metric group produced any pivot data")

// PivotTarget pairs a metric-group prefix with the record field holding its
// values (a raw metric field, or a synthetic _val_ column after expansion).
type PivotTarget struct {
	Prefix string
	Field  string
}

// pivotBlock is the wide block built for one metric group, indexed by the
// composite row key.
type pivotBlock struct {
	dataCols []string
	rowKeys  []string
	index    map[string]Record         // row key → index field values
	cells    map[string]map[string]any // row key → data column → value
}

// AssemblePivot spreads each target metric into wide columns and joins the
// per-group blocks on the row index (outer union, first-seen row order).
//
// With column fields configured, a group yields one column per distinct
// column-key combination, ordered by descending key value; prefill-like
// groups and the no-column-fields case yield a single column. Duplicate
// cells are resolved by keeping the first non-null value encountered; there
// is no averaging.
func AssemblePivot(rows []Record, indexFields, columnFields []string, targets []PivotTarget) (*Table, error) {
	known := knownFields(rows)
	suffix := unitSuffix(columnFields)

	var blocks []*pivotBlock
	for _, target := range targets {
		if target.Field == "" || !known[target.Field] {
			logrus.Warnf("metric field %q not present in data, skipping group %q", target.Field, target.Prefix)
			continue
		}
		var block *pivotBlock
		if len(columnFields) > 0 && !isPrefillLike(target.Prefix) {
			block = buildSpreadBlock(rows, indexFields, columnFields, target, suffix)
		} else {
			block = buildSingleBlock(rows, indexFields, target)
		}
		blocks = append(blocks, block)
	}

	if len(blocks) == 0 {
		return nil, ErrEmptyResult
	}

	return concatBlocks(blocks, indexFields), nil
}

// buildSpreadBlock pivots one metric across the column-key fields.
func buildSpreadBlock(rows []Record, indexFields, columnFields []string, target PivotTarget, suffix string) *pivotBlock {
	block := newPivotBlock()
	type colEntry struct {
		label string
		vals  []any
	}
	var colOrder []colEntry
	colSeen := make(map[string]bool)

	for _, r := range rows {
		rk := block.touchRow(r, indexFields)

		vals := make([]any, len(columnFields))
		parts := make([]string, len(columnFields))
		for i, f := range columnFields {
			vals[i] = r[f]
			parts[i] = FormatValue(CoerceNumeric(r[f]))
		}
		label := target.Prefix + "_" + strings.Join(parts, "_") + suffix
		if !colSeen[label] {
			colSeen[label] = true
			colOrder = append(colOrder, colEntry{label: label, vals: vals})
		}
		block.setFirst(rk, label, r[target.Field])
	}

	// Widest setting first: descending column-key order, numeric when the
	// values parse as numbers.
	sort.SliceStable(colOrder, func(i, j int) bool {
		return compareTuples(colOrder[i].vals, colOrder[j].vals) > 0
	})
	for _, c := range colOrder {
		block.dataCols = append(block.dataCols, c.label)
	}
	return block
}

// buildSingleBlock groups one metric by the row index only.
func buildSingleBlock(rows []Record, indexFields []string, target PivotTarget) *pivotBlock {
	block := newPivotBlock()
	block.dataCols = []string{target.Prefix}
	for _, r := range rows {
		rk := block.touchRow(r, indexFields)
		block.setFirst(rk, target.Prefix, r[target.Field])
	}
	return block
}

func newPivotBlock() *pivotBlock {
	return &pivotBlock{
		index: make(map[string]Record),
		cells: make(map[string]map[string]any),
	}
}

// touchRow registers the record's row key, capturing index field values the
// first time the key is seen.
func (b *pivotBlock) touchRow(r Record, indexFields []string) string {
	rk := groupKey(r, indexFields)
	if _, ok := b.index[rk]; !ok {
		idx := make(Record, len(indexFields))
		for _, f := range indexFields {
			idx[f] = r[f]
		}
		b.index[rk] = idx
		b.rowKeys = append(b.rowKeys, rk)
		b.cells[rk] = make(map[string]any)
	}
	return rk
}

// setFirst writes a cell value unless a non-null value is already present.
func (b *pivotBlock) setFirst(rowKey, col string, v any) {
	if IsNull(v) {
		return
	}
	if existing, ok := b.cells[rowKey][col]; ok && !IsNull(existing) {
		return
	}
	b.cells[rowKey][col] = v
}

// concatBlocks joins blocks horizontally on the row index. Row order is the
// first block's order extended by rows only later blocks saw.
func concatBlocks(blocks []*pivotBlock, indexFields []string) *Table {
	t := NewTable(indexFields...)
	rowPos := make(map[string]int)
	for _, b := range blocks {
		for _, c := range b.dataCols {
			t.AddColumn(c)
		}
		for _, rk := range b.rowKeys {
			i, ok := rowPos[rk]
			if !ok {
				i = len(t.Rows)
				rowPos[rk] = i
				t.Rows = append(t.Rows, b.index[rk].Clone())
			}
			for col, v := range b.cells[rk] {
				t.Rows[i][col] = v
			}
		}
	}
	return t
}

// unitSuffix appends "ms" to spread column names when the column axis is a
// time-like field.
func unitSuffix(columnFields []string) string {
	for _, f := range columnFields {
		lower := strings.ToLower(f)
		if strings.Contains(lower, "time") || strings.Contains(lower, "limit") {
			return "ms"
		}
	}
	return ""
}

func compareTuples(a, b []any) int {
	for i := range a {
		if i >= len(b) {
			return 1
		}
		if c := CompareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}

// knownFields collects every field name present in the record set.
func knownFields(rows []Record) map[string]bool {
	known := make(map[string]bool)
	for _, r := range rows {
		for k := range r {
			known[k] = true
		}
	}
	return known
}

// FilterKnownFields keeps the configured field names actually present in
// the data, warning about the rest. Referencing an absent field is a
// configuration mistake that degrades to skipping, never an error.
func FilterKnownFields(rows []Record, fields []string, role string) []string {
	known := knownFields(rows)
	kept := fields[:0:0]
	for _, f := range fields {
		if known[f] {
			kept = append(kept, f)
		} else {
			logrus.Warnf("%s field %q not present in data, skipping", role, f)
		}
	}
	return kept
}
