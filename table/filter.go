package table

import "github.com/sirupsen/logrus"

// ApplyFilters keeps the records satisfying every filter. Filters naming an
// unknown field or operator are warned about and skipped; a filter with no
// values is skipped silently.
func ApplyFilters(records []Record, filters []Filter) []Record {
	if len(filters) == 0 {
		return records
	}
	known := knownFields(records)
	result := records
	for _, f := range filters {
		if !known[f.Field] {
			logrus.Warnf("filter field %q not present in data, skipping", f.Field)
			continue
		}
		if len(f.Values) == 0 {
			continue
		}
		op := f.Operator
		if op == "" {
			op = "=="
		}
		pred, ok := filterPredicate(op, f.Values)
		if !ok {
			logrus.Warnf("unknown filter operator %q, skipping", op)
			continue
		}
		var kept []Record
		for _, r := range result {
			if pred(r[f.Field]) {
				kept = append(kept, r)
			}
		}
		result = kept
	}
	return result
}

func filterPredicate(op string, values []any) (func(any) bool, bool) {
	first := values[0]
	switch op {
	case "==":
		return func(v any) bool { return CompareValues(v, first) == 0 }, true
	case "!=":
		return func(v any) bool { return CompareValues(v, first) != 0 }, true
	case ">":
		return func(v any) bool { return !IsNull(v) && CompareValues(v, first) > 0 }, true
	case "<":
		return func(v any) bool { return !IsNull(v) && CompareValues(v, first) < 0 }, true
	case ">=":
		return func(v any) bool { return !IsNull(v) && CompareValues(v, first) >= 0 }, true
	case "<=":
		return func(v any) bool { return !IsNull(v) && CompareValues(v, first) <= 0 }, true
	case "in":
		return func(v any) bool { return containsValue(values, v) }, true
	case "not_in":
		return func(v any) bool { return !containsValue(values, v) }, true
	}
	return nil, false
}

func containsValue(values []any, v any) bool {
	for _, candidate := range values {
		if CompareValues(v, candidate) == 0 {
			return true
		}
	}
	return false
}
