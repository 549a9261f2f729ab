package mockbot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/botapi"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	store := openTestStore(t)
	require.NoError(t, Seed(store, 2))

	r := NewRunner(store, nil)
	r.startupDelay = 10 * time.Millisecond
	r.actionEvery = 10 * time.Millisecond
	t.Cleanup(func() {
		if r.Status().State == botapi.StateRunning || r.Status().State == botapi.StateStarting {
			_ = r.Stop()
		}
	})
	return r
}

func waitForState(t *testing.T, r *Runner, state string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Status().State == state {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("runner never reached state %q, stuck at %q", state, r.Status().State)
}

func TestRunnerLifecycle(t *testing.T) {
	r := newTestRunner(t)
	assert.Equal(t, botapi.StateIdle, r.Status().State)

	require.NoError(t, r.Start())
	assert.Equal(t, botapi.StateStarting, r.Status().State)
	waitForState(t, r, botapi.StateRunning)

	require.NoError(t, r.Stop())
	assert.Equal(t, botapi.StateStopped, r.Status().State)

	// A stopped bot can start again.
	require.NoError(t, r.Start())
	waitForState(t, r, botapi.StateRunning)
}

func TestRunnerRejectsDoubleStart(t *testing.T) {
	r := newTestRunner(t)
	require.NoError(t, r.Start())

	err := r.Start()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRunnerRejectsStopWhenIdle(t *testing.T) {
	r := newTestRunner(t)
	err := r.Stop()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRunnerGeneratesActionsWhileRunning(t *testing.T) {
	r := newTestRunner(t)
	require.NoError(t, r.Start())
	waitForState(t, r, botapi.StateRunning)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		history, err := r.store.History()
		require.NoError(t, err)
		total := 0
		for _, p := range history {
			total += len(p.Actions)
		}
		// Seed already created actions; wait for the runner to add more.
		if total > 0 && len(r.Logs()) > 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("runner produced no actions")
}

func TestRunnerFail(t *testing.T) {
	r := newTestRunner(t)
	require.NoError(t, r.Start())
	waitForState(t, r, botapi.StateRunning)

	r.Fail("simulated crash")
	status := r.Status()
	assert.Equal(t, botapi.StateError, status.State)
	assert.Equal(t, "simulated crash", status.Details)

	// Error state allows a restart.
	require.NoError(t, r.Start())
	waitForState(t, r, botapi.StateRunning)
}

func TestRunnerStatusLastUpdate(t *testing.T) {
	r := newTestRunner(t)
	status := r.Status()
	require.NotNil(t, status.LastUpdate)

	ts, ok := status.LastUpdateTime()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
}
