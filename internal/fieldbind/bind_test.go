package fieldbind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/configtree"
)

func mustDecode(t *testing.T, doc string) *configtree.Value {
	t.Helper()
	v, err := configtree.Decode([]byte(doc))
	require.NoError(t, err)
	return v
}

func fieldByPath(t *testing.T, fields []Field, path string) Field {
	t.Helper()
	for _, f := range fields {
		if f.Path.String() == path {
			return f
		}
	}
	t.Fatalf("no field at path %s", path)
	return Field{}
}

func TestBuildFieldsWalksMapsInOrder(t *testing.T) {
	root := mustDecode(t, `{
		"global": {"mode": "prod", "threads": 2},
		"engagement": {"open_rate": 0.4}
	}`)

	fields := BuildFields(root)
	require.Len(t, fields, 3)
	assert.Equal(t, "global.mode", fields[0].Path.String())
	assert.Equal(t, "global.threads", fields[1].Path.String())
	assert.Equal(t, "engagement.open_rate", fields[2].Path.String())
}

func TestScalarClassification(t *testing.T) {
	root := mustDecode(t, `{
		"enabled": true,
		"threads": 3,
		"retry_wait": 10,
		"backup_interval": 30,
		"max_age": 5,
		"open_rate": 0.4,
		"click_ctr": 0.1,
		"skip_probability": 0.9,
		"random_variance": 0.2,
		"scroll_depth": 0.5,
		"mode": "prod",
		"log_level": "info",
		"profile_name": "alpha",
		"group_id": null
	}`)
	fields := BuildFields(root)

	assert.Equal(t, WidgetCheckbox, fieldByPath(t, fields, "enabled").Widget)

	threads := fieldByPath(t, fields, "threads")
	assert.Equal(t, WidgetIntInput, threads.Widget)
	require.NotNil(t, threads.Constraints.Min)
	require.NotNil(t, threads.Constraints.Max)
	assert.Equal(t, 1.0, *threads.Constraints.Min)
	assert.Equal(t, 4.0, *threads.Constraints.Max)

	wait := fieldByPath(t, fields, "retry_wait")
	require.NotNil(t, wait.Constraints.Min)
	assert.Equal(t, 0.0, *wait.Constraints.Min)
	assert.Nil(t, wait.Constraints.Max)

	backup := fieldByPath(t, fields, "backup_interval")
	require.NotNil(t, backup.Constraints.Min)
	assert.Equal(t, 5.0, *backup.Constraints.Min)

	age := fieldByPath(t, fields, "max_age")
	require.NotNil(t, age.Constraints.Min)
	assert.Equal(t, 0.0, *age.Constraints.Min)

	for _, path := range []string{"open_rate", "click_ctr", "skip_probability"} {
		f := fieldByPath(t, fields, path)
		assert.Equal(t, WidgetFloatInput, f.Widget)
		require.NotNil(t, f.Constraints.Min, path)
		require.NotNil(t, f.Constraints.Max, path)
		assert.Equal(t, 0.0, *f.Constraints.Min)
		assert.Equal(t, 1.0, *f.Constraints.Max)
		assert.Equal(t, 0.01, f.Constraints.Step)
	}

	variance := fieldByPath(t, fields, "random_variance")
	assert.Equal(t, 0.05, variance.Constraints.Step)
	require.NotNil(t, variance.Constraints.Max)
	assert.Equal(t, 1.0, *variance.Constraints.Max)

	depth := fieldByPath(t, fields, "scroll_depth")
	assert.Nil(t, depth.Constraints.Min)
	assert.Equal(t, 0.01, depth.Constraints.Step)

	mode := fieldByPath(t, fields, "mode")
	assert.Equal(t, WidgetSelect, mode.Widget)
	assert.Equal(t, []string{"prod", "dev"}, mode.Constraints.Options)

	level := fieldByPath(t, fields, "log_level")
	assert.Equal(t, WidgetSelect, level.Widget)
	assert.Equal(t, []string{"debug", "info", "warning", "error", "critical"}, level.Constraints.Options)

	assert.Equal(t, WidgetTextInput, fieldByPath(t, fields, "profile_name").Widget)
	assert.Equal(t, WidgetTextInput, fieldByPath(t, fields, "group_id").Widget)
}

func TestThreadConstraintIgnoresCurrentValue(t *testing.T) {
	// Bounds come from the key name, not from whatever value is stored.
	root := mustDecode(t, `{"threads": 99}`)
	f := BuildFields(root)[0]
	require.NotNil(t, f.Constraints.Min)
	require.NotNil(t, f.Constraints.Max)
	assert.Equal(t, 1.0, *f.Constraints.Min)
	assert.Equal(t, 4.0, *f.Constraints.Max)
}

func TestListClassification(t *testing.T) {
	root := mustDecode(t, `{
		"sender_email": ["a@x.com", "b@x.com"],
		"serial_numbers": [101, 102],
		"session_types": [{"name": "short", "weight": 1}, {"name": "long", "weight": 2}],
		"mystery_list": [1, "two", 3.0]
	}`)
	fields := BuildFields(root)

	assert.Equal(t, WidgetMultilineList, fieldByPath(t, fields, "sender_email").Widget)
	assert.Equal(t, WidgetMultilineList, fieldByPath(t, fields, "serial_numbers").Widget)
	assert.Equal(t, WidgetYAMLList, fieldByPath(t, fields, "session_types").Widget)
	assert.Equal(t, WidgetReadOnly, fieldByPath(t, fields, "mystery_list").Widget)
}

func TestSessionTypesWithNonMapElementIsReadOnly(t *testing.T) {
	root := mustDecode(t, `{"session_types": [{"name": "a"}, "stray"]}`)
	assert.Equal(t, WidgetReadOnly, BuildFields(root)[0].Widget)
}

func TestNullLeavesAreReadOnlyExceptGroupID(t *testing.T) {
	root := mustDecode(t, `{"group_id": null, "something": null}`)
	fields := BuildFields(root)
	assert.Equal(t, WidgetTextInput, fieldByPath(t, fields, "group_id").Widget)
	assert.Equal(t, WidgetReadOnly, fieldByPath(t, fields, "something").Widget)
}

func TestListsAreTerminalForAddressing(t *testing.T) {
	root := mustDecode(t, `{"session_types": [{"nested": {"deep": 1}}]}`)
	fields := BuildFields(root)
	require.Len(t, fields, 1)
	assert.Equal(t, "session_types", fields[0].Path.String())
}

func TestFormatValue(t *testing.T) {
	root := mustDecode(t, `{
		"enabled": false,
		"threads": 2,
		"open_rate": 0.35,
		"mode": "staging",
		"log_level": "WARNING",
		"group_id": null,
		"sender_email": ["a@x.com", "b@x.com"],
		"serial_numbers": [5, 7]
	}`)
	fields := BuildFields(root)

	assert.Equal(t, "false", FormatValue(fieldByPath(t, fields, "enabled")))
	assert.Equal(t, "2", FormatValue(fieldByPath(t, fields, "threads")))
	assert.Equal(t, "0.35", FormatValue(fieldByPath(t, fields, "open_rate")))
	// Unknown mode falls back to the first option.
	assert.Equal(t, "prod", FormatValue(fieldByPath(t, fields, "mode")))
	// Log level matches case-insensitively.
	assert.Equal(t, "warning", FormatValue(fieldByPath(t, fields, "log_level")))
	assert.Equal(t, "", FormatValue(fieldByPath(t, fields, "group_id")))
	assert.Equal(t, "a@x.com\nb@x.com", FormatValue(fieldByPath(t, fields, "sender_email")))
	assert.Equal(t, "5\n7", FormatValue(fieldByPath(t, fields, "serial_numbers")))
}

func TestUnmatchedLogLevelDefaultsToInfo(t *testing.T) {
	root := mustDecode(t, `{"log_level": "verbose"}`)
	assert.Equal(t, "info", FormatValue(BuildFields(root)[0]))
}

func TestLabels(t *testing.T) {
	root := mustDecode(t, `{"backup_interval": 30}`)
	assert.Equal(t, "Backup Interval", BuildFields(root)[0].Label)
}
