package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const notesLimit = 150

// formatStatValue renders one stats field for display. Rates and CTRs become
// percentages, booleans become Yes/No, date-ish strings are normalized, and
// notes are truncated.
func formatStatValue(key string, value any) string {
	lowered := strings.ToLower(key)

	switch {
	case strings.Contains(lowered, "rate") || strings.Contains(lowered, "ctr"):
		if f, ok := toFloat(value); ok {
			return fmt.Sprintf("%.1f%%", f*100)
		}

	case lowered == "is_email_active" || strings.HasPrefix(lowered, "is_"):
		if b, ok := toBool(value); ok {
			if b {
				return "Yes"
			}
			return "No"
		}

	case strings.Contains(lowered, "date") || strings.Contains(lowered, "time"):
		if s, ok := value.(string); ok {
			return formatStatDate(s)
		}

	case lowered == "notes":
		if s, ok := value.(string); ok && len(s) > notesLimit {
			return s[:notesLimit] + "…"
		}
	}

	switch v := value.(type) {
	case nil:
		return "-"
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatStatDate normalizes the common timestamp shapes the backend emits.
// Unparseable strings pass through untouched.
func formatStatDate(s string) string {
	layouts := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02 15:04:05")
		}
	}
	return s
}

// statLabel turns a snake_case key into a display label.
func statLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		if w == "ctr" || w == "id" || w == "url" {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.ToLower(v))
		return b, err == nil
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	}
	return false, false
}
