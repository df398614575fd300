package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Internal tag fields attached to records by the derived-row expander.
// They participate in grouping and baseline matching but are stripped
// (or renamed, for the metric label) before the table is handed to a writer.
const (
	MetricLabelField = "_metric_label"
	RowTypeField     = "_row_type"
	SortOrderField   = "_sort_order"
	SourceFileField  = "_source_file"
)

// MetricLabelHeader is the user-facing name of the metric label column.
const MetricLabelHeader = "Metric"

// RowType distinguishes the measurement granularity a row represents.
type RowType string

const (
	// RowTypeTotal marks an aggregate (whole-machine / multi-NPU) row.
	RowTypeTotal RowType = "total"
	// RowTypeSingle marks a single-NPU row.
	RowTypeSingle RowType = "single"
	// RowTypeDefault marks rows when derived-row expansion is disabled.
	RowTypeDefault RowType = "default"
)

// Record is one row of a table. Cell values are string, float64 or nil;
// a missing key and a nil value both mean "no data".
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// IsNull reports whether v carries no data. Empty strings come from sparse
// CSV cells and count as null.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// AsFloat converts a cell value to float64 if possible.
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// CoerceNumeric returns the float64 form of v when it parses as a number,
// otherwise v unchanged. Nulls stay nil.
func CoerceNumeric(v any) any {
	if IsNull(v) {
		return nil
	}
	if f, ok := AsFloat(v); ok {
		return f
	}
	return v
}

// FormatValue renders a cell value for column names, sheet names and keys.
// Whole floats print without a decimal point so a coerced "128" stays "128".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// CompareValues orders two cell values: numerically when both parse as
// numbers, lexicographically otherwise. Nulls sort first. Returns -1, 0, 1.
func CompareValues(a, b any) int {
	an, bn := IsNull(a), IsNull(b)
	switch {
	case an && bn:
		return 0
	case an:
		return -1
	case bn:
		return 1
	}
	af, aok := AsFloat(a)
	bf, bok := AsFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}

// groupKey builds a composite key from the given fields of a record.
// Used for pivot grouping and baseline matching.
func groupKey(r Record, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v := r[f]
		if IsNull(v) {
			parts[i] = "\x00"
			continue
		}
		// Canonicalize numerics so "8" and 8.0 land in the same group.
		if f2, ok := AsFloat(v); ok {
			parts[i] = strconv.FormatFloat(f2, 'g', -1, 64)
		} else {
			parts[i] = FormatValue(v)
		}
	}
	return strings.Join(parts, "\x1f")
}
