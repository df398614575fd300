package ingest

// Markers that identify the transposed wide layout: the first column holds
// field names rather than values.
var wideFormatMarkers = []string{"field_name", "model_name"}

// IsWideFormat reports whether the parsed cells are in the transposed wide
// layout (field names down the first column, one column per run).
func IsWideFormat(rows [][]string) bool {
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		for _, marker := range wideFormatMarkers {
			if row[0] == marker {
				return true
			}
		}
	}
	return false
}

// Transpose flips a wide-layout cell grid into standard layout: the first
// column becomes the header row, each remaining column becomes a record.
func Transpose(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil
	}
	out := make([][]string, width)
	for c := 0; c < width; c++ {
		col := make([]string, len(rows))
		for r, row := range rows {
			if c < len(row) {
				col[r] = row[c]
			}
		}
		out[c] = col
	}
	return out
}
