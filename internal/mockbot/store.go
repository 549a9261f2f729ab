// Package mockbot is a development backend that speaks the bot's REST
// contract against fake data, so the panel can be exercised without a real
// bot deployment.
package mockbot

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/botpanel/botpanel/internal/botapi"
)

//go:embed migrations/001_initial_schema.sql
var migrationV1 string

const actionTimeLayout = "2006-01-02 15:04:05"

// Profile is one fake bot account.
type Profile struct {
	ID            string
	Name          string
	SerialNumber  int
	Email         string
	IsEmailActive bool
	Notes         string
}

// Store keeps profiles and their action history in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenStore opens (or creates) the history database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		version = 0
	}
	if version < 1 {
		if _, err := s.db.Exec(migrationV1); err != nil {
			return fmt.Errorf("applying migration v1: %w", err)
		}
	}
	return nil
}

// UpsertProfile inserts or replaces a profile.
func (s *Store) UpsertProfile(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO profiles (id, name, serial_number, email, is_email_active, notes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			serial_number = excluded.serial_number,
			email = excluded.email,
			is_email_active = excluded.is_email_active,
			notes = excluded.notes`,
		p.ID, p.Name, p.SerialNumber, p.Email, boolToInt(p.IsEmailActive), p.Notes)
	if err != nil {
		return fmt.Errorf("upserting profile %s: %w", p.ID, err)
	}
	return nil
}

// Profiles lists all profiles ordered by serial number.
func (s *Store) Profiles() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profilesLocked()
}

func (s *Store) profilesLocked() ([]Profile, error) {
	rows, err := s.db.Query(`
		SELECT id, name, serial_number, email, is_email_active, notes
		FROM profiles ORDER BY serial_number`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var active int
		if err := rows.Scan(&p.ID, &p.Name, &p.SerialNumber, &p.Email, &active, &p.Notes); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		p.IsEmailActive = active != 0
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// RecordAction appends one action to a profile's history.
func (s *Store) RecordAction(actionID, profileID, actionType, details string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO actions (id, profile_id, timestamp, action_type, details)
		VALUES (?, ?, ?, ?, ?)`,
		actionID, profileID, at.Format(actionTimeLayout), actionType, details)
	if err != nil {
		return fmt.Errorf("recording action for %s: %w", profileID, err)
	}
	return nil
}

// History assembles the full /history payload, newest actions last.
func (s *Store) History() (botapi.History, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles, err := s.profilesLocked()
	if err != nil {
		return nil, err
	}

	history := make(botapi.History, len(profiles))
	for _, p := range profiles {
		rows, err := s.db.Query(`
			SELECT timestamp, action_type, details
			FROM actions WHERE profile_id = ? ORDER BY timestamp`, p.ID)
		if err != nil {
			return nil, fmt.Errorf("loading actions for %s: %w", p.ID, err)
		}

		var actions []botapi.Action
		for rows.Next() {
			var a botapi.Action
			if err := rows.Scan(&a.Timestamp, &a.ActionType, &a.Details); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning action: %w", err)
			}
			actions = append(actions, a)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()

		history[p.ID] = botapi.ProfileHistory{
			ProfileInfo: map[string]any{
				"name":          p.Name,
				"serial_number": p.SerialNumber,
			},
			Actions: actions,
		}
	}
	return history, nil
}

// Stats assembles the /all_logs payload with per-profile aggregates.
func (s *Store) Stats() (botapi.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles, err := s.profilesLocked()
	if err != nil {
		return nil, err
	}

	stats := make(botapi.Stats, len(profiles))
	for _, p := range profiles {
		var total, engagements int
		var lastAction sql.NullString
		err := s.db.QueryRow(`
			SELECT COUNT(*),
			       COALESCE(SUM(CASE WHEN action_type IN ('like', 'comment', 'reply') THEN 1 ELSE 0 END), 0),
			       MAX(timestamp)
			FROM actions WHERE profile_id = ?`, p.ID).Scan(&total, &engagements, &lastAction)
		if err != nil {
			return nil, fmt.Errorf("aggregating stats for %s: %w", p.ID, err)
		}

		record := botapi.StatsRecord{
			"name":            p.Name,
			"serial_number":   p.SerialNumber,
			"email":           p.Email,
			"is_email_active": p.IsEmailActive,
			"notes":           p.Notes,
			"total_actions":   total,
		}
		if total > 0 {
			record["engagement_rate"] = float64(engagements) / float64(total)
			record["ctr"] = float64(engagements) / float64(total) / 2
		} else {
			record["engagement_rate"] = 0.0
			record["ctr"] = 0.0
		}
		if lastAction.Valid {
			record["last_action_date"] = lastAction.String
		}
		stats[p.ID] = record
	}
	return stats, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
