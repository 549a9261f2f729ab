package mockbot

import (
	"fmt"
	"os"
	"sync"

	"github.com/botpanel/botpanel/internal/configtree"
)

// SettingsStore keeps the bot settings document in a JSON file, preserving
// key order across load/save cycles.
type SettingsStore struct {
	path string
	mu   sync.Mutex
}

// NewSettingsStore opens the settings file at path, seeding it with the
// default document when it does not exist yet.
func NewSettingsStore(path string) (*SettingsStore, error) {
	s := &SettingsStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.Save(DefaultSettings()); err != nil {
			return nil, fmt.Errorf("seeding settings file: %w", err)
		}
	}
	return s, nil
}

// Load reads the settings document.
func (s *SettingsStore) Load() (*configtree.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	doc, err := configtree.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return doc, nil
}

// Save writes the settings document atomically.
func (s *SettingsStore) Save(doc *configtree.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := configtree.EncodeIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := atomicWriteFile(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// DefaultSettings is the document a fresh mock backend starts with. It covers
// every widget shape the settings editor knows about.
func DefaultSettings() *configtree.Value {
	email := configtree.Map()
	email.Set("sender_email", configtree.List(
		configtree.String("alerts@example.com"),
		configtree.String("reports@example.com"),
	))
	email.Set("backup_interval", configtree.Int(30))

	engagement := configtree.Map()
	engagement.Set("engagement_rate", configtree.Float(0.35))
	engagement.Set("ctr", configtree.Float(0.12))
	engagement.Set("reply_probability", configtree.Float(0.5))
	engagement.Set("random_variance", configtree.Float(0.1))
	engagement.Set("regular_engagement_skip_senders", configtree.List(
		configtree.String("noreply@example.com"),
	))

	schedule := configtree.Map()
	schedule.Set("check_interval_minutes", configtree.Int(15))
	schedule.Set("max_post_age_hours", configtree.Int(48))
	schedule.Set("wait_between_actions_seconds", configtree.Int(20))

	morning := configtree.Map()
	morning.Set("name", configtree.String("morning"))
	morning.Set("start_hour", configtree.Int(8))
	morning.Set("end_hour", configtree.Int(12))
	evening := configtree.Map()
	evening.Set("name", configtree.String("evening"))
	evening.Set("start_hour", configtree.Int(18))
	evening.Set("end_hour", configtree.Int(22))

	doc := configtree.Map()
	doc.Set("mode", configtree.String("prod"))
	doc.Set("log_level", configtree.String("info"))
	doc.Set("threads", configtree.Int(2))
	doc.Set("headless", configtree.Bool(true))
	doc.Set("group_id", configtree.Null())
	doc.Set("serial_numbers", configtree.List(
		configtree.Int(10001),
		configtree.Int(10002),
		configtree.Int(10003),
	))
	doc.Set("ad_identifiers", configtree.List(
		configtree.String("sponsored"),
		configtree.String("promoted"),
	))
	doc.Set("session_types", configtree.List(morning, evening))
	doc.Set("email", email)
	doc.Set("engagement", engagement)
	doc.Set("schedule", schedule)
	return doc
}
