package table

import "fmt"

// Labels for synthesized rows. The aggregate label normally embeds the NPU
// count ("8units"); AggregateLabel is the fallback when the count field is
// absent or non-numeric.
const (
	SingleUnitLabel = "single"
	AggregateLabel  = "aggregate"
)

// ExpandDerivedRows duplicates every record into an aggregate-granularity
// copy and a single-NPU copy. The aggregate copy takes each group's total
// field; the single copy prefers the group's single-NPU field and falls
// back to the total field. Output length is exactly 2x the input: all
// aggregate copies first, then all single copies, each block in input
// order. The metric label is overwritten even if the input already carries
// one (last wins).
func ExpandDerivedRows(records []Record, npuCountField string, groups []MetricGroup) []Record {
	out := make([]Record, 0, 2*len(records))

	for _, rec := range records {
		r := rec.Clone()
		r[MetricLabelField] = aggregateLabelFor(rec[npuCountField])
		r[RowTypeField] = string(RowTypeTotal)
		r[SortOrderField] = float64(0)
		for _, g := range groups {
			if g.TotalField != "" {
				r[g.ValueColumn()] = rec[g.TotalField]
			}
		}
		out = append(out, r)
	}

	for _, rec := range records {
		r := rec.Clone()
		r[MetricLabelField] = SingleUnitLabel
		r[RowTypeField] = string(RowTypeSingle)
		r[SortOrderField] = float64(1)
		for _, g := range groups {
			source := g.SingleField
			if source == "" {
				source = g.TotalField
			}
			if source != "" {
				r[g.ValueColumn()] = rec[source]
			}
		}
		out = append(out, r)
	}

	return out
}

// TagDefaultRows marks records with the default row type when derived-row
// expansion is disabled. Records are copied so the caller's input stays
// untouched.
func TagDefaultRows(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		r := rec.Clone()
		r[RowTypeField] = string(RowTypeDefault)
		out = append(out, r)
	}
	return out
}

func aggregateLabelFor(npuCount any) string {
	n, ok := AsFloat(npuCount)
	if !ok {
		return AggregateLabel
	}
	return fmt.Sprintf("%dunits", int(n))
}
