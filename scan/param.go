package scan

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamName converts a param path into a filename-safe name:
// "mem1.GiB" → "mem1_GiB", "networks[0].bandwidth" → "networks_0_bandwidth".
func ParamName(path string) string {
	name := strings.ReplaceAll(path, ".", "_")
	name = strings.ReplaceAll(name, "[", "_")
	return strings.ReplaceAll(name, "]", "")
}

// pathSegment is one step of a dotted param path, optionally indexing into
// a list ("networks[0]").
type pathSegment struct {
	key   string
	index int
	list  bool
}

func parsePath(path string) ([]pathSegment, error) {
	parts := strings.Split(path, ".")
	segs := make([]pathSegment, 0, len(parts))
	for _, part := range parts {
		if open := strings.Index(part, "["); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("malformed path segment %q", part)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil {
				return nil, fmt.Errorf("malformed index in %q: %w", part, err)
			}
			segs = append(segs, pathSegment{key: part[:open], index: idx, list: true})
		} else {
			segs = append(segs, pathSegment{key: part})
		}
	}
	return segs, nil
}

// SetParam sets the value at a dotted path inside a decoded JSON config.
// A list value containing nils is merged element-wise with the existing
// list: nil keeps the old element (partial update).
func SetParam(config map[string]any, path string, value any) error {
	segs, err := parsePath(path)
	if err != nil {
		return err
	}

	current := config
	for i, seg := range segs[:len(segs)-1] {
		child, ok := current[seg.key]
		if !ok {
			return fmt.Errorf("path not found: %s", joinSegments(segs[:i+1]))
		}
		if seg.list {
			list, ok := child.([]any)
			if !ok || seg.index < 0 || seg.index >= len(list) {
				return fmt.Errorf("path not indexable: %s", joinSegments(segs[:i+1]))
			}
			child = list[seg.index]
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("path not an object: %s", joinSegments(segs[:i+1]))
		}
		current = next
	}

	last := segs[len(segs)-1]
	if last.list {
		list, ok := current[last.key].([]any)
		if !ok || last.index < 0 || last.index >= len(list) {
			return fmt.Errorf("path not indexable: %s", path)
		}
		list[last.index] = value
		return nil
	}

	if newList, ok := value.([]any); ok && containsNil(newList) {
		if oldList, ok := current[last.key].([]any); ok && len(oldList) == len(newList) {
			merged := make([]any, len(newList))
			for i, v := range newList {
				if v != nil {
					merged[i] = v
				} else {
					merged[i] = oldList[i]
				}
			}
			current[last.key] = merged
			return nil
		}
	}
	current[last.key] = value
	return nil
}

func containsNil(list []any) bool {
	for _, v := range list {
		if v == nil {
			return true
		}
	}
	return false
}

func joinSegments(segs []pathSegment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		if s.list {
			parts[i] = fmt.Sprintf("%s[%d]", s.key, s.index)
		} else {
			parts[i] = s.key
		}
	}
	return strings.Join(parts, ".")
}
