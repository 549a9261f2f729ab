package mockbot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/logging"
)

// ErrInvalidTransition is returned for start/stop requests the current
// lifecycle state does not allow.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

const maxLogLines = 500

var actionTemplates = []struct {
	actionType string
	details    string
}{
	{"like", "liked post https://example.com/p/%d"},
	{"comment", "commented on https://example.com/p/%d"},
	{"reply", "replied to thread https://example.com/t/%d"},
	{"follow", "followed account %d"},
	{"visit", "visited profile page https://example.com/u/%d"},
}

// Runner drives the fake bot lifecycle and generates profile actions while
// the bot is running.
type Runner struct {
	store  *Store
	logger *logging.Logger

	// shortened in tests
	startupDelay time.Duration
	actionEvery  time.Duration

	mu         sync.Mutex
	state      string
	details    string
	lastUpdate time.Time
	logs       []string

	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewRunner creates a runner in the idle state.
func NewRunner(store *Store, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		store:        store,
		logger:       logger,
		startupDelay: 2 * time.Second,
		actionEvery:  3 * time.Second,
		state:        botapi.StateIdle,
		details:      "waiting for start",
		lastUpdate:   time.Now(),
	}
}

// Status reports the current lifecycle snapshot.
func (r *Runner) Status() *botapi.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	update := float64(r.lastUpdate.UnixNano()) / float64(time.Second)
	return &botapi.Status{
		State:      r.state,
		Details:    r.details,
		LastUpdate: &update,
	}
}

// Logs returns a copy of the retained log tail.
func (r *Runner) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.logs...)
}

// Start begins the fake bot. Allowed from idle, error, and stopped.
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case botapi.StateIdle, botapi.StateError, botapi.StateStopped:
	default:
		return fmt.Errorf("%w: cannot start while %s", ErrInvalidTransition, r.state)
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	r.cancel = cancel
	r.group = group

	r.setStateLocked(botapi.StateStarting, "bot is starting up")
	group.Go(func() error { return r.run(ctx) })
	return nil
}

// Stop halts the fake bot. Allowed from running and starting.
func (r *Runner) Stop() error {
	r.mu.Lock()

	switch r.state {
	case botapi.StateRunning, botapi.StateStarting:
	default:
		r.mu.Unlock()
		return fmt.Errorf("%w: cannot stop while %s", ErrInvalidTransition, r.state)
	}

	r.setStateLocked(botapi.StateStopping, "bot is shutting down")
	cancel := r.cancel
	group := r.group
	r.mu.Unlock()

	cancel()
	_ = group.Wait()

	r.mu.Lock()
	r.setStateLocked(botapi.StateStopped, "bot stopped by operator")
	r.mu.Unlock()
	return nil
}

// Fail moves the runner into the error state, for exercising the panel's
// error handling.
func (r *Runner) Fail(reason string) {
	r.mu.Lock()
	cancel := r.cancel
	r.setStateLocked(botapi.StateError, reason)
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Runner) run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(r.startupDelay):
	}

	r.mu.Lock()
	if r.state != botapi.StateStarting {
		r.mu.Unlock()
		return nil
	}
	r.setStateLocked(botapi.StateRunning, "processing profiles")
	r.mu.Unlock()

	ticker := time.NewTicker(r.actionEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := r.generateAction(); err != nil {
				r.logger.Warn("mock action generation failed", "error", err)
			}
		}
	}
}

func (r *Runner) generateAction() error {
	profiles, err := r.store.Profiles()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return nil
	}

	profile := profiles[rand.Intn(len(profiles))]
	tpl := actionTemplates[rand.Intn(len(actionTemplates))]
	details := fmt.Sprintf(tpl.details, rand.Intn(90000)+10000)
	now := time.Now()

	if err := r.store.RecordAction(uuid.NewString(), profile.ID, tpl.actionType, details, now); err != nil {
		return err
	}

	r.mu.Lock()
	r.appendLogLocked(fmt.Sprintf("%s [INFO] %s: %s %s",
		now.Format(actionTimeLayout), profile.Name, tpl.actionType, details))
	r.details = fmt.Sprintf("last action by %s", profile.Name)
	r.lastUpdate = now
	r.mu.Unlock()
	return nil
}

func (r *Runner) setStateLocked(state, details string) {
	r.state = state
	r.details = details
	r.lastUpdate = time.Now()
	r.appendLogLocked(fmt.Sprintf("%s [INFO] state changed to %s (%s)",
		r.lastUpdate.Format(actionTimeLayout), state, details))
	r.logger.Info("mock bot state change", "state", state, "details", details)
}

func (r *Runner) appendLogLocked(line string) {
	r.logs = append(r.logs, line)
	if len(r.logs) > maxLogLines {
		r.logs = r.logs[len(r.logs)-maxLogLines:]
	}
}
