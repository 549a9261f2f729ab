package mockbot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreProfileRoundTrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.UpsertProfile(Profile{
		ID: "profile_1", Name: "Alice Vega", SerialNumber: 10001,
		Email: "alice@example.com", IsEmailActive: true, Notes: "test account",
	}))
	require.NoError(t, store.UpsertProfile(Profile{
		ID: "profile_2", Name: "Bruno Keller", SerialNumber: 10002,
	}))

	profiles, err := store.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Alice Vega", profiles[0].Name)
	assert.True(t, profiles[0].IsEmailActive)
	assert.False(t, profiles[1].IsEmailActive)
}

func TestStoreUpsertReplaces(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.UpsertProfile(Profile{ID: "p", Name: "Old", SerialNumber: 1}))
	require.NoError(t, store.UpsertProfile(Profile{ID: "p", Name: "New", SerialNumber: 1}))

	profiles, err := store.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "New", profiles[0].Name)
}

func TestStoreHistory(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.UpsertProfile(Profile{ID: "profile_1", Name: "Alice", SerialNumber: 10001}))

	base := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordAction("a1", "profile_1", "like", "liked post", base))
	require.NoError(t, store.RecordAction("a2", "profile_1", "comment", "commented", base.Add(time.Hour)))

	history, err := store.History()
	require.NoError(t, err)
	require.Contains(t, history, "profile_1")

	profile := history["profile_1"]
	assert.Equal(t, "Alice", profile.Name())
	assert.Equal(t, "10001", profile.SerialNumber())
	require.Len(t, profile.Actions, 2)
	assert.Equal(t, "like", profile.Actions[0].ActionType)
	assert.Equal(t, "2026-08-27 09:00:00", profile.Actions[0].Timestamp)
	assert.Equal(t, "comment", profile.Actions[1].ActionType)
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.UpsertProfile(Profile{
		ID: "profile_1", Name: "Alice", SerialNumber: 10001, IsEmailActive: true,
	}))

	base := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordAction("a1", "profile_1", "like", "", base))
	require.NoError(t, store.RecordAction("a2", "profile_1", "visit", "", base.Add(time.Minute)))

	stats, err := store.Stats()
	require.NoError(t, err)
	require.Contains(t, stats, "profile_1")

	record := stats["profile_1"]
	assert.Equal(t, "Alice", record["name"])
	assert.Equal(t, 2, record["total_actions"])
	assert.InDelta(t, 0.5, record["engagement_rate"], 1e-9)
	assert.Equal(t, "2026-08-27 09:01:00", record["last_action_date"])
}

func TestStoreStatsEmptyProfile(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.UpsertProfile(Profile{ID: "profile_1", Name: "Alice", SerialNumber: 1}))

	stats, err := store.Stats()
	require.NoError(t, err)

	record := stats["profile_1"]
	assert.Equal(t, 0, record["total_actions"])
	assert.Equal(t, 0.0, record["engagement_rate"])
	assert.NotContains(t, record, "last_action_date")
}

func TestSeedPopulatesOnce(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, Seed(store, 3))
	profiles, err := store.Profiles()
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	// Second seed is a no-op.
	require.NoError(t, Seed(store, 8))
	profiles, err = store.Profiles()
	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}
