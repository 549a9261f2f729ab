package fieldbind

import (
	"strconv"
	"strings"

	"github.com/botpanel/botpanel/internal/configtree"
)

// BuildFields walks the document and returns one field per leaf, in map
// iteration order. Maps are recursed into; lists are terminal leaves.
func BuildFields(root *configtree.Value) []Field {
	var fields []Field
	collectFields(configtree.Path{}, root, &fields)
	return fields
}

func collectFields(path configtree.Path, v *configtree.Value, out *[]Field) {
	if v.Kind() == configtree.KindMap {
		for _, key := range v.Keys() {
			child, _ := v.Get(key)
			collectFields(path.Child(key), child, out)
		}
		return
	}

	widget, constraints := classify(path, v)
	*out = append(*out, Field{
		Path:        path,
		Widget:      widget,
		Original:    v,
		Constraints: constraints,
		Label:       labelFor(path.Key()),
	})
}

// FormatValue renders the field's original value as the raw text that seeds
// its edit surface. Feeding these strings back through Apply reproduces the
// original document.
func FormatValue(f Field) string {
	v := f.Original

	switch f.Widget {
	case WidgetCheckbox:
		return strconv.FormatBool(v.BoolVal())

	case WidgetIntInput:
		return strconv.FormatInt(v.IntVal(), 10)

	case WidgetFloatInput:
		return strconv.FormatFloat(v.FloatVal(), 'g', -1, 64)

	case WidgetSelect:
		return selectedOption(f.Path.Key(), v.StrVal(), f.Constraints.Options)

	case WidgetTextInput:
		if v.Kind() == configtree.KindNull {
			return ""
		}
		return v.StrVal()

	case WidgetMultilineList:
		lines := make([]string, 0, len(v.Items()))
		for _, item := range v.Items() {
			lines = append(lines, item.DisplayString())
		}
		return strings.Join(lines, "\n")

	case WidgetYAMLList:
		text, err := encodeYAMLList(v)
		if err != nil {
			return v.DisplayString()
		}
		return text

	default:
		return v.DisplayString()
	}
}

// selectedOption resolves the current value against the option set. Unmatched
// mode values fall back to the first option; unmatched log levels fall back
// to "info". Log level matching is case-insensitive.
func selectedOption(key, current string, options []string) string {
	if key == keyLogLevel {
		lowered := strings.ToLower(current)
		for _, opt := range options {
			if opt == lowered {
				return opt
			}
		}
		return "info"
	}
	for _, opt := range options {
		if opt == current {
			return opt
		}
	}
	if len(options) > 0 {
		return options[0]
	}
	return current
}
