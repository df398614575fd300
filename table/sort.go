package table

import (
	"sort"
	"strings"
)

// PatternPriority returns the index of the first pattern the value
// satisfies, or len(patterns) when none match (sorted last). Matching is
// case-insensitive with a small wildcard grammar:
//
//	*X*  value contains X
//	*X   value ends with X
//	X*   value starts with X
//	X    exact match
func PatternPriority(value string, patterns []string) int {
	upper := strings.ToUpper(value)
	for i, pattern := range patterns {
		p := strings.ToUpper(pattern)
		leading := strings.HasPrefix(p, "*")
		trailing := strings.HasSuffix(p, "*") && len(p) > 1
		switch {
		case leading && trailing:
			if strings.Contains(upper, p[1:len(p)-1]) {
				return i
			}
		case leading:
			if strings.HasSuffix(upper, p[1:]) {
				return i
			}
		case trailing:
			if strings.HasPrefix(upper, p[:len(p)-1]) {
				return i
			}
		default:
			if upper == p {
				return i
			}
		}
	}
	return len(patterns)
}

// SortRows orders rows by (pattern priority over the selector field, row
// fields in configured order, sort-order tag), ascending and stable. With
// no system order or no selector field, only the row fields and the
// sort-order tag apply.
func SortRows(t *Table, rowFields []string, selectorField string, systemOrder []string) {
	usePatterns := len(systemOrder) > 0 && selectorField != "" && t.HasColumn(selectorField)

	keys := append([]string(nil), rowFields...)
	if t.HasColumn(SortOrderField) {
		keys = append(keys, SortOrderField)
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if usePatterns {
			pa := PatternPriority(FormatValue(a[selectorField]), systemOrder)
			pb := PatternPriority(FormatValue(b[selectorField]), systemOrder)
			if pa != pb {
				return pa < pb
			}
		}
		for _, k := range keys {
			if c := CompareValues(a[k], b[k]); c != 0 {
				return c < 0
			}
		}
		return false
	})
}
