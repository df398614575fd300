package table

import "strings"

// MetricGroup is one logical measurement with an aggregate ("total")
// variant and/or a single-NPU variant sharing one output prefix.
type MetricGroup struct {
	Prefix      string
	TotalField  string // source field for aggregate rows ("" if absent)
	SingleField string // source field for single-NPU rows ("" if absent)
}

// ValueColumn is the synthetic column the derived-row expander copies the
// group's selected source field into.
func (g MetricGroup) ValueColumn() string {
	return "_val_" + g.Prefix
}

// ResolveMetricGroups classifies the configured metric fields into logical
// groups keyed by prefix. Groups keep the order in which their prefix first
// appears. When two variables claim the same slot of a group, the later one
// wins; this last-wins override is deliberate and silent.
func ResolveMetricGroups(vars []DependentVariable) []MetricGroup {
	index := make(map[string]int)
	var groups []MetricGroup
	for _, dv := range vars {
		if dv.Field == "" {
			continue
		}
		key := dv.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MetricGroup{Prefix: key})
		}
		if isSingleUnitVariant(dv) {
			groups[i].SingleField = dv.Field
		} else {
			groups[i].TotalField = dv.Field
		}
	}
	// A group with neither variant cannot happen here (every variable fills
	// one slot), but guard against empty prefixes from blank specs.
	kept := groups[:0]
	for _, g := range groups {
		if g.TotalField != "" || g.SingleField != "" {
			kept = append(kept, g)
		}
	}
	return kept
}

// isSingleUnitVariant applies the per-NPU naming heuristic: the field name
// mentions per_npu, or the alias mentions single / per npu.
func isSingleUnitVariant(dv DependentVariable) bool {
	alias := strings.ToLower(dv.Alias)
	return strings.Contains(strings.ToLower(dv.Field), "per_npu") ||
		strings.Contains(alias, "single") ||
		strings.Contains(alias, "per npu")
}

// isPrefillLike reports whether a metric group is invariant under the
// column axis. Prefill quantities do not change with the scanned decode
// setting, so they always pivot to exactly one column.
func isPrefillLike(prefix string) bool {
	return strings.Contains(strings.ToLower(prefix), "prefill")
}
