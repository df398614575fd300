package scan

import (
	"fmt"
	"strings"
)

// ArithmeticValues generates start, start+step, ... up to and including end.
func ArithmeticValues(start, end, step float64) []float64 {
	var values []float64
	for v := start; v <= end; v += step {
		values = append(values, v)
	}
	return values
}

// PowerOfTwoValues generates 2^startPower .. 2^endPower inclusive.
func PowerOfTwoValues(startPower, endPower int) []float64 {
	var values []float64
	for p := startPower; p <= endPower; p++ {
		values = append(values, float64(int64(1)<<uint(p)))
	}
	return values
}

// TestValues produces the sweep values for a ParamMode. The "pair" format
// wraps each value as [v, v]; "pair_null_first" as [null, v], which the
// param setter merges with the existing list (null keeps the old element).
func TestValues(mode ParamMode) ([]any, error) {
	var raw []float64
	switch mode.ValueType {
	case "", "arithmetic":
		step := mode.Step
		if step <= 0 {
			step = 1
		}
		raw = ArithmeticValues(mode.Start, mode.End, step)
	case "power_of_2":
		raw = PowerOfTwoValues(mode.StartPower, mode.EndPower)
	default:
		return nil, fmt.Errorf("unsupported value_type %q", mode.ValueType)
	}

	values := make([]any, 0, len(raw))
	for _, v := range raw {
		switch mode.Format {
		case "", "single":
			values = append(values, v)
		case "pair":
			values = append(values, []any{v, v})
		case "pair_null_first":
			values = append(values, []any{nil, v})
		default:
			return nil, fmt.Errorf("unsupported format %q", mode.Format)
		}
	}
	return values, nil
}

// FormatValueForFilename renders a sweep value for use in file names:
// 1 → "1", [1, 1] → "1_1", [null, 50] → "50".
func FormatValueForFilename(value any) string {
	if list, ok := value.([]any); ok {
		var parts []string
		for _, v := range list {
			if v != nil {
				parts = append(parts, formatNumber(v))
			}
		}
		return strings.Join(parts, "_")
	}
	return formatNumber(value)
}

func formatNumber(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(v)
}
