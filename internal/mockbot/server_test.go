package mockbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/configtree"
)

const testKey = "mock-test-key-1234"

// newTestBackend wires a full mock backend and returns a botapi client
// pointed at it, exercising both sides of the contract.
func newTestBackend(t *testing.T) (*botapi.Client, *Runner, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := OpenStore(filepath.Join(dir, "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, Seed(store, 2))

	settings, err := NewSettingsStore(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)

	runner := NewRunner(store, nil)
	runner.startupDelay = 10 * time.Millisecond
	runner.actionEvery = 10 * time.Millisecond

	server := NewServer(runner, store, settings, WithAPIKey(testKey))
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	client, err := botapi.New(srv.URL, testKey)
	require.NoError(t, err)
	return client, runner, srv.URL
}

func TestServerRejectsBadKey(t *testing.T) {
	_, _, url := newTestBackend(t)

	wrongKey, err := botapi.New(url, "wrong-key")
	require.NoError(t, err)

	_, err = wrongKey.Status(context.Background())
	apiErr, ok := botapi.AsError(err)
	require.True(t, ok)
	assert.Equal(t, botapi.ErrKindHTTP, apiErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Contains(t, apiErr.Message, "API key")
}

func TestServerStatusAndControl(t *testing.T) {
	client, _, _ := newTestBackend(t)
	ctx := context.Background()

	status, err := client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, botapi.StateIdle, status.State)
	assert.True(t, status.CanStart())

	msg, err := client.Control(ctx, botapi.ControlStart)
	require.NoError(t, err)
	assert.Contains(t, msg, "start")

	// Starting again while active conflicts.
	_, err = client.Control(ctx, botapi.ControlStart)
	apiErr, ok := botapi.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	_, err = client.Control(ctx, botapi.ControlStop)
	require.NoError(t, err)

	status, err = client.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, botapi.StateStopped, status.State)
}

func TestServerHistoryAndStats(t *testing.T) {
	client, _, _ := newTestBackend(t)
	ctx := context.Background()

	history, err := client.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, profile := range history {
		assert.NotEmpty(t, profile.Name())
		assert.NotEmpty(t, profile.Actions)
	}

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	for _, record := range stats {
		assert.NotEmpty(t, record["name"])
		assert.Contains(t, record, "engagement_rate")
	}
}

func TestServerLogs(t *testing.T) {
	client, runner, _ := newTestBackend(t)
	require.NoError(t, runner.Start())
	t.Cleanup(func() { _ = runner.Stop() })

	logs, err := client.Logs(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, logs)

	var sawTransition bool
	for _, line := range logs {
		if strings.Contains(line, "state changed to") {
			sawTransition = true
		}
	}
	assert.True(t, sawTransition)
}

func TestServerSettingsRoundTrip(t *testing.T) {
	client, _, _ := newTestBackend(t)
	ctx := context.Background()

	doc, err := client.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, configtree.KindMap, doc.Kind())

	threads, ok := doc.Get("threads")
	require.True(t, ok)
	assert.Equal(t, configtree.KindInt, threads.Kind())

	// Mutate and push back.
	doc.Set("threads", configtree.Int(4))
	msg, err := client.SaveSettings(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, "settings saved", msg)

	reloaded, err := client.Settings(ctx)
	require.NoError(t, err)
	threads, ok = reloaded.Get("threads")
	require.True(t, ok)
	assert.Equal(t, int64(4), threads.IntVal())

	// Key order survives the round trip.
	assert.Equal(t, doc.Keys(), reloaded.Keys())
}

func TestServerRejectsMalformedSettings(t *testing.T) {
	_, _, url := newTestBackend(t)

	req, err := http.NewRequest(http.MethodPost, url+"/settings", nil)
	require.NoError(t, err)
	req.Header.Set("X-API-Key", testKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServerHealthIsUnauthenticated(t *testing.T) {
	_, _, url := newTestBackend(t)

	resp, err := http.Get(url + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
