package fieldbind

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/botpanel/botpanel/internal/configtree"
)

// Edits maps a field's EditKey to its raw textual value.
type Edits map[string]string

// Warning reports a non-fatal per-leaf coercion failure. The leaf keeps its
// original value; the rest of the document is still rebuilt.
type Warning struct {
	Path    configtree.Path
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// Apply rebuilds the document from edits. Maps are recursed in key order, so
// the result serializes with the same structure as the original. Leaves
// absent from edits, and read-only leaves, are copied unchanged.
func Apply(original *configtree.Value, edits Edits) (*configtree.Value, []Warning) {
	var warnings []Warning
	updated := applyValue(configtree.Path{}, original, edits, &warnings)
	return updated, warnings
}

func applyValue(path configtree.Path, v *configtree.Value, edits Edits, warnings *[]Warning) *configtree.Value {
	if v.Kind() == configtree.KindMap {
		updated := configtree.Map()
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			updated.Set(key, applyValue(path.Child(key), child, edits, warnings))
		}
		return updated
	}

	widget, _ := classify(path, v)
	if widget == WidgetReadOnly {
		return v.Clone()
	}

	raw, ok := edits[path.String()]
	if !ok {
		return v.Clone()
	}

	return coerceLeaf(path, widget, v, raw, warnings)
}

func coerceLeaf(path configtree.Path, widget Widget, original *configtree.Value, raw string, warnings *[]Warning) *configtree.Value {
	key := path.Key()

	// group_id is nullable: blank means "all groups".
	if key == keyGroupID {
		if strings.TrimSpace(raw) == "" {
			return configtree.Null()
		}
		return configtree.String(raw)
	}

	switch original.Kind() {
	case configtree.KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return keepOriginal(path, original, warnings, "%q is not a boolean", raw)
		}
		return configtree.Bool(b)

	case configtree.KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return keepOriginal(path, original, warnings, "%q is not an integer", raw)
		}
		return configtree.Int(i)

	case configtree.KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return keepOriginal(path, original, warnings, "%q is not a number", raw)
		}
		return configtree.Float(f)

	case configtree.KindString:
		return configtree.String(raw)

	case configtree.KindList:
		switch widget {
		case WidgetMultilineList:
			return coerceLines(path, key, raw, warnings)
		case WidgetYAMLList:
			list, err := decodeYAMLList(raw)
			if err != nil {
				return keepOriginal(path, original, warnings, "invalid YAML list: %v", err)
			}
			return list
		}
		return original.Clone()

	default:
		return original.Clone()
	}
}

// coerceLines splits multiline input into list elements: trimmed, blank lines
// dropped. The serial number list parses each line as an integer and drops
// lines that do not parse, warning per dropped line.
func coerceLines(path configtree.Path, key, raw string, warnings *[]Warning) *configtree.Value {
	list := configtree.List()
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if key == keySerialNumbers {
			i, err := strconv.ParseInt(line, 10, 64)
			if err != nil {
				*warnings = append(*warnings, Warning{
					Path:    path,
					Message: fmt.Sprintf("dropped non-integer line %q", line),
				})
				continue
			}
			list.Append(configtree.Int(i))
			continue
		}
		list.Append(configtree.String(line))
	}
	return list
}

func keepOriginal(path configtree.Path, original *configtree.Value, warnings *[]Warning, format string, args ...any) *configtree.Value {
	*warnings = append(*warnings, Warning{
		Path:    path,
		Message: fmt.Sprintf(format, args...) + "; kept previous value",
	})
	return original.Clone()
}
