package table

// Table is an in-memory table with an explicit column order. Rows are
// records; a row missing a column means a null cell. Tables are transient
// values rebuilt on every pipeline invocation.
type Table struct {
	Columns []string
	Rows    []Record
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column unless it already exists.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumns removes the named columns from the header and from every row.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// Rename rewrites column names in both the header and every row. Mappings
// to an empty name are ignored.
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.Columns {
		if alias, ok := mapping[c]; ok && alias != "" {
			t.Columns[i] = alias
		}
	}
	for _, r := range t.Rows {
		for from, to := range mapping {
			if to == "" || from == to {
				continue
			}
			if v, ok := r[from]; ok {
				r[to] = v
				delete(r, from)
			}
		}
	}
}

// CoerceColumns converts numeric-looking text to float64 in place for the
// given columns so downstream sorting is numeric, not lexicographic.
func (t *Table) CoerceColumns(columns ...string) {
	for _, r := range t.Rows {
		for _, c := range columns {
			if v, ok := r[c]; ok {
				r[c] = CoerceNumeric(v)
			}
		}
	}
}

// Filter returns a new table holding the rows for which keep returns true.
// The column order is shared with the receiver.
func (t *Table) Filter(keep func(Record) bool) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}
