package botapi

import (
	"strconv"
	"time"
)

// Bot lifecycle states reported by GET /status.
const (
	StateIdle     = "idle"
	StateRunning  = "running"
	StateStarting = "starting"
	StateStopping = "stopping"
	StateStopped  = "stopped"
	StateError    = "error"
	StateUnknown  = "unknown"
)

// Status is the bot's lifecycle snapshot.
type Status struct {
	State      string   `json:"state"`
	Details    string   `json:"details"`
	LastUpdate *float64 `json:"last_update"` // epoch seconds, null before first update
}

// LastUpdateTime converts the epoch timestamp, if present.
func (s *Status) LastUpdateTime() (time.Time, bool) {
	if s.LastUpdate == nil {
		return time.Time{}, false
	}
	sec := int64(*s.LastUpdate)
	nsec := int64((*s.LastUpdate - float64(sec)) * 1e9)
	return time.Unix(sec, nsec), true
}

// Active reports whether the bot is in a transitional or running state,
// which drives the faster polling cadence.
func (s *Status) Active() bool {
	switch s.State {
	case StateRunning, StateStarting, StateStopping:
		return true
	}
	return false
}

// CanStart reports whether a start command is meaningful in this state.
func (s *Status) CanStart() bool {
	switch s.State {
	case StateIdle, StateError, StateStopped:
		return true
	}
	return false
}

// CanStop reports whether a stop command is meaningful in this state.
func (s *Status) CanStop() bool {
	switch s.State {
	case StateRunning, StateStarting:
		return true
	}
	return false
}

// Action is one recorded bot action for a profile.
type Action struct {
	Timestamp  string `json:"timestamp"`
	ActionType string `json:"action_type"`
	Details    string `json:"details"`
}

// Time parses the action timestamp. The backend emits ISO 8601 with varying
// precision and optional zone suffix.
func (a *Action) Time() (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, a.Timestamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ProfileHistory is one profile's slice of the history payload.
type ProfileHistory struct {
	ProfileInfo map[string]any `json:"profile_info"`
	Actions     []Action       `json:"actions"`
}

// Name returns the profile's display name, if recorded.
func (p *ProfileHistory) Name() string {
	if v, ok := p.ProfileInfo["name"].(string); ok {
		return v
	}
	return ""
}

// SerialNumber returns the profile's serial number as a display string.
func (p *ProfileHistory) SerialNumber() string {
	switch v := p.ProfileInfo["serial_number"].(type) {
	case string:
		return v
	case float64:
		return trimFloat(v)
	default:
		return ""
	}
}

// History is the full GET /history payload.
type History map[string]ProfileHistory

// StatsRecord is one profile's flat aggregate fields from GET /all_logs.
// The field set is backend-defined and open-ended.
type StatsRecord map[string]any

// Stats is the full GET /all_logs payload.
type Stats map[string]StatsRecord

// ControlAction is the body of POST /control.
type ControlAction string

const (
	ControlStart ControlAction = "start"
	ControlStop  ControlAction = "stop"
)

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
