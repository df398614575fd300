package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/benchgrid/benchgrid/table"
)

// renderTable prints a result table to stdout for quick inspection.
func renderTable(t *table.Table) {
	w := tablewriter.NewTable(os.Stdout)
	w.Header(t.Columns)
	for _, r := range t.Rows {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = table.FormatValue(r[c])
		}
		if err := w.Append(row); err != nil {
			logrus.Warnf("rendering row: %v", err)
			return
		}
	}
	if err := w.Render(); err != nil {
		logrus.Warnf("rendering table: %v", err)
	}
}
