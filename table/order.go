package table

import "strings"

// OrderColumns reorders the table's data columns by prefix priority.
// For each prefix in metricOrder, every still-unplaced data column whose
// name starts with that prefix is appended, keeping the original relative
// order among matches; unmatched columns follow in original order. Index
// columns always come first, untouched. An empty metricOrder is a no-op,
// and reapplying the same order is idempotent.
func OrderColumns(t *Table, indexFields, metricOrder []string) {
	if len(metricOrder) == 0 {
		return
	}

	isIndex := make(map[string]bool, len(indexFields))
	for _, f := range indexFields {
		isIndex[f] = true
	}
	var dataCols []string
	for _, c := range t.Columns {
		if !isIndex[c] {
			dataCols = append(dataCols, c)
		}
	}

	placed := make(map[string]bool, len(dataCols))
	ordered := make([]string, 0, len(dataCols))
	for _, prefix := range metricOrder {
		for _, c := range dataCols {
			if !placed[c] && strings.HasPrefix(c, prefix) {
				placed[c] = true
				ordered = append(ordered, c)
			}
		}
	}
	for _, c := range dataCols {
		if !placed[c] {
			ordered = append(ordered, c)
		}
	}

	cols := make([]string, 0, len(t.Columns))
	for _, f := range t.Columns {
		if isIndex[f] {
			cols = append(cols, f)
		}
	}
	t.Columns = append(cols, ordered...)
}
