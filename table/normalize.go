package table

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"
)

// DetectSelectorField returns the first row field whose name mentions
// "system". That field carries system/variant identity: it selects the
// baseline rows and is excluded from baseline match keys.
func DetectSelectorField(rowFields []FieldSpec) string {
	for _, f := range rowFields {
		if strings.Contains(strings.ToLower(f.Field), "system") {
			return f.Field
		}
	}
	return ""
}

// NormalizeToBaseline rewrites every data column in place as the ratio of
// each row's value to its baseline counterpart, rounded to decimalPlaces.
//
// Baseline rows are those whose selector field equals baseline. Rows are
// aligned on all extended index fields except the selector, the sort order
// and the metric label; keeping the row type in the match key lets a
// 128-NPU aggregate row find an 8-NPU aggregate baseline, and a single-NPU
// row a single-NPU baseline. Rows without a baseline match get null ratios.
// When no baseline row exists at all, the table is returned unmodified.
func NormalizeToBaseline(t *Table, baseline, selectorField string, extIndexFields []string, decimalPlaces int) {
	if baseline == "" || selectorField == "" || !t.HasColumn(selectorField) {
		return
	}

	skip := map[string]bool{selectorField: true, SortOrderField: true, MetricLabelField: true}
	var matchCols []string
	isIndex := make(map[string]bool, len(extIndexFields))
	for _, f := range extIndexFields {
		isIndex[f] = true
		if !skip[f] {
			matchCols = append(matchCols, f)
		}
	}
	var dataCols []string
	for _, c := range t.Columns {
		if !isIndex[c] && c != selectorField {
			dataCols = append(dataCols, c)
		}
	}

	// Snapshot baseline values before any cell is rewritten, so the
	// baseline rows themselves normalize to 1.0. First matching baseline
	// row wins on duplicate match keys.
	baselineVals := make(map[string]map[string]any)
	for _, r := range t.Rows {
		if FormatValue(r[selectorField]) != baseline {
			continue
		}
		key := groupKey(r, matchCols)
		if _, ok := baselineVals[key]; ok {
			continue
		}
		vals := make(map[string]any, len(dataCols))
		for _, c := range dataCols {
			vals[c] = r[c]
		}
		baselineVals[key] = vals
	}

	if len(baselineVals) == 0 {
		logrus.Warnf("baseline %q not found in %q, skipping normalization", baseline, selectorField)
		return
	}

	pow := math.Pow(10, float64(decimalPlaces))
	for _, r := range t.Rows {
		base := baselineVals[groupKey(r, matchCols)]
		for _, c := range dataCols {
			r[c] = ratio(r[c], base[c], pow)
		}
	}
}

func ratio(v, base any, pow float64) any {
	vf, vok := AsFloat(v)
	bf, bok := AsFloat(base)
	if !vok || !bok || bf == 0 {
		return nil
	}
	return math.Round(vf/bf*pow) / pow
}
