package table

// BuildFlatTable projects records onto the configured fields without
// pivoting: row fields, then column fields, then additional fields, then
// metric fields, de-duplicated and restricted to fields present in the
// data. Rows are sorted ascending by the row fields (numeric-coerced) and
// headers are alias-renamed.
func BuildFlatTable(records []Record, cfg *Config) *Table {
	known := knownFields(records)

	var display []string
	seen := make(map[string]bool)
	add := func(fields ...string) {
		for _, f := range fields {
			if f != "" && known[f] && !seen[f] {
				seen[f] = true
				display = append(display, f)
			}
		}
	}
	add(cfg.RowFieldNames()...)
	add(cfg.ColumnFieldNames()...)
	add(cfg.AdditionalFields...)
	for _, dv := range cfg.DependentVariables {
		add(dv.Field)
	}

	t := NewTable(display...)
	for _, rec := range records {
		r := make(Record, len(display))
		for _, f := range display {
			r[f] = rec[f]
		}
		t.Rows = append(t.Rows, r)
	}

	rowFields := FilterKnownFields(records, cfg.RowFieldNames(), "row")
	t.CoerceColumns(rowFields...)
	SortRows(t, rowFields, "", nil)

	rename := AliasMap(cfg.IndependentVariables.RowFields)
	for f, a := range AliasMap(cfg.IndependentVariables.ColumnFields) {
		rename[f] = a
	}
	for _, dv := range cfg.DependentVariables {
		if dv.Alias != "" {
			rename[dv.Field] = dv.Alias
		}
	}
	t.Rename(rename)
	return t
}
