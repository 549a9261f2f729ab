package diagnostics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/config"
)

type proberFunc func(ctx context.Context) (*botapi.Status, error)

func (f proberFunc) Status(ctx context.Context) (*botapi.Status, error) { return f(ctx) }

func testConfig() *config.Config {
	return &config.Config{
		API: config.APIConfig{
			URL: "http://localhost:5000",
			Key: "secret-key-1234",
		},
	}
}

func checkByName(t *testing.T, report *Report, name string) Check {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q", name)
	return Check{}
}

func TestRunDoctorHealthy(t *testing.T) {
	prober := proberFunc(func(ctx context.Context) (*botapi.Status, error) {
		return &botapi.Status{State: botapi.StateIdle}, nil
	})

	report := RunDoctor(context.Background(), testConfig(), prober)
	assert.True(t, report.Healthy())
	assert.Equal(t, StatusPass, checkByName(t, report, "configuration").Status)
	assert.Equal(t, StatusPass, checkByName(t, report, "api key").Status)

	backend := checkByName(t, report, "backend")
	assert.Equal(t, StatusPass, backend.Status)
	assert.Contains(t, backend.Detail, "state idle")
}

func TestRunDoctorMissingURL(t *testing.T) {
	cfg := testConfig()
	cfg.API.URL = ""

	prober := proberFunc(func(ctx context.Context) (*botapi.Status, error) {
		return &botapi.Status{State: botapi.StateIdle}, nil
	})

	report := RunDoctor(context.Background(), cfg, prober)
	assert.False(t, report.Healthy())
	assert.Equal(t, StatusFail, checkByName(t, report, "configuration").Status)
}

func TestRunDoctorBackendDown(t *testing.T) {
	prober := proberFunc(func(ctx context.Context) (*botapi.Status, error) {
		return nil, &botapi.Error{Kind: botapi.ErrKindConnection, Endpoint: "/status", Message: "connection refused"}
	})

	report := RunDoctor(context.Background(), testConfig(), prober)
	assert.False(t, report.Healthy())

	backend := checkByName(t, report, "backend")
	assert.Equal(t, StatusFail, backend.Status)
	assert.Contains(t, backend.Detail, "connection refused")
}

func TestRunDoctorWarnsOnMissingKey(t *testing.T) {
	cfg := testConfig()
	cfg.API.Key = ""

	prober := proberFunc(func(ctx context.Context) (*botapi.Status, error) {
		return &botapi.Status{State: botapi.StateRunning}, nil
	})

	report := RunDoctor(context.Background(), cfg, prober)
	assert.True(t, report.Healthy())
	assert.Equal(t, StatusWarn, checkByName(t, report, "api key").Status)
}

func TestCollectSystemInfo(t *testing.T) {
	info := CollectSystemInfo()
	// Probes are best-effort, but CPU counts should resolve everywhere the
	// tests run.
	require.Greater(t, info.CPUThreads, 0)
}
