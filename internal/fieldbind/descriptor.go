// Package fieldbind maps a settings document bidirectionally onto a flat,
// ordered collection of editable fields. The forward walk produces one field
// per leaf; the reverse walk rebuilds the document from raw edits, coercing
// every edit back to the leaf's original semantic type.
package fieldbind

import (
	"strings"

	"github.com/botpanel/botpanel/internal/configtree"
)

// Widget identifies the edit surface for a field.
type Widget int

const (
	WidgetCheckbox Widget = iota
	WidgetIntInput
	WidgetFloatInput
	WidgetTextInput
	WidgetSelect
	WidgetMultilineList
	WidgetYAMLList
	WidgetReadOnly
)

// String returns a widget name for display and logging.
func (w Widget) String() string {
	switch w {
	case WidgetCheckbox:
		return "checkbox"
	case WidgetIntInput:
		return "int"
	case WidgetFloatInput:
		return "float"
	case WidgetTextInput:
		return "text"
	case WidgetSelect:
		return "select"
	case WidgetMultilineList:
		return "multiline"
	case WidgetYAMLList:
		return "yaml"
	case WidgetReadOnly:
		return "readonly"
	default:
		return "unknown"
	}
}

// Constraints describes optional numeric bounds or enumerated choices.
type Constraints struct {
	Min     *float64
	Max     *float64
	Step    float64
	Options []string
}

// Field binds one document leaf to an editable widget.
type Field struct {
	Path        configtree.Path
	Widget      Widget
	Original    *configtree.Value
	Constraints Constraints
	Label       string
}

// EditKey returns the key under which edits for this field are collected.
func (f Field) EditKey() string {
	return f.Path.String()
}

// Key names with special widget or coercion behavior. These mirror the
// backend's settings document conventions.
const (
	keyThreads        = "threads"
	keyBackupInterval = "backup_interval"
	keyRandomVariance = "random_variance"
	keyMode           = "mode"
	keyLogLevel       = "log_level"
	keyGroupID        = "group_id"
	keySessionTypes   = "session_types"
	keySerialNumbers  = "serial_numbers"
)

// multilineListKeys are list leaves edited as one element per line.
var multilineListKeys = map[string]bool{
	"sender_email":                    true,
	"ad_identifiers":                  true,
	"regular_engagement_skip_senders": true,
	keySerialNumbers:                  true,
}

var (
	modeOptions     = []string{"prod", "dev"}
	logLevelOptions = []string{"debug", "info", "warning", "error", "critical"}
)

func floatPtr(f float64) *float64 { return &f }

// classify picks the widget and constraints for a leaf by its semantic type
// refined with terminal-key naming conventions.
func classify(path configtree.Path, v *configtree.Value) (Widget, Constraints) {
	key := path.Key()

	switch v.Kind() {
	case configtree.KindBool:
		return WidgetCheckbox, Constraints{}

	case configtree.KindInt:
		c := Constraints{Step: 1}
		if strings.Contains(key, "interval") || strings.Contains(key, "wait") || strings.Contains(key, "age") {
			c.Min = floatPtr(0)
		}
		if key == keyBackupInterval {
			c.Min = floatPtr(5)
		}
		if key == keyThreads {
			c.Min = floatPtr(1)
			c.Max = floatPtr(4)
		}
		return WidgetIntInput, c

	case configtree.KindFloat:
		c := Constraints{Step: 0.01}
		switch {
		case strings.Contains(key, "rate") || strings.Contains(key, "ctr") || strings.Contains(key, "probability"):
			c.Min = floatPtr(0)
			c.Max = floatPtr(1)
		case key == keyRandomVariance:
			c.Min = floatPtr(0)
			c.Max = floatPtr(1)
			c.Step = 0.05
		}
		return WidgetFloatInput, c

	case configtree.KindString:
		switch key {
		case keyMode:
			return WidgetSelect, Constraints{Options: modeOptions}
		case keyLogLevel:
			return WidgetSelect, Constraints{Options: logLevelOptions}
		default:
			return WidgetTextInput, Constraints{}
		}

	case configtree.KindList:
		if multilineListKeys[key] {
			return WidgetMultilineList, Constraints{}
		}
		if key == keySessionTypes && allMaps(v) {
			return WidgetYAMLList, Constraints{}
		}
		return WidgetReadOnly, Constraints{}

	case configtree.KindNull:
		if key == keyGroupID {
			return WidgetTextInput, Constraints{}
		}
		return WidgetReadOnly, Constraints{}

	default:
		return WidgetReadOnly, Constraints{}
	}
}

func allMaps(list *configtree.Value) bool {
	for _, item := range list.Items() {
		if item.Kind() != configtree.KindMap {
			return false
		}
	}
	return len(list.Items()) > 0
}

// labelFor turns a key name into a display label: "backup_interval" becomes
// "Backup Interval".
func labelFor(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
