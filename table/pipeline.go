package table

// BuildPivotTable runs the full reshaping pipeline over already-filtered
// records: metric-group resolution, optional derived-row expansion, pivot
// assembly, column ordering, baseline normalization, row sorting, and
// finally alias renaming. The input records are not modified.
func BuildPivotTable(records []Record, cfg *Config) (*Table, error) {
	groups := ResolveMetricGroups(cfg.DependentVariables)
	rowFields := FilterKnownFields(records, cfg.RowFieldNames(), "row")

	var (
		rows     []Record
		extIndex []string
		targets  []PivotTarget
	)
	if cfg.Analysis.DerivedRows.Enabled {
		rows = ExpandDerivedRows(records, cfg.Analysis.DerivedRows.NPUCountField, groups)
		extIndex = append(append([]string{}, rowFields...), MetricLabelField, SortOrderField, RowTypeField)
		for _, g := range groups {
			targets = append(targets, PivotTarget{Prefix: g.Prefix, Field: g.ValueColumn()})
		}
	} else {
		rows = TagDefaultRows(records)
		extIndex = append(append([]string{}, rowFields...), RowTypeField)
		for _, dv := range cfg.DependentVariables {
			targets = append(targets, PivotTarget{Prefix: dv.GroupKey(), Field: dv.Field})
		}
	}

	colFields := FilterKnownFields(rows, cfg.ColumnFieldNames(), "column")

	t, err := AssemblePivot(rows, extIndex, colFields, targets)
	if err != nil {
		return nil, err
	}
	t.CoerceColumns(rowFields...)

	OrderColumns(t, extIndex, cfg.Analysis.MetricOrder)

	selector := DetectSelectorField(cfg.IndependentVariables.RowFields)
	NormalizeToBaseline(t, cfg.Analysis.NormalizationBaseline, selector, extIndex, cfg.Analysis.DecimalPlaces)

	SortRows(t, rowFields, selector, cfg.Analysis.SystemOrder)

	t.DropColumns(SortOrderField, RowTypeField)
	rename := AliasMap(cfg.IndependentVariables.RowFields)
	rename[MetricLabelField] = MetricLabelHeader
	t.Rename(rename)
	return t, nil
}
