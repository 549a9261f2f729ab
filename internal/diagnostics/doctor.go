package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/config"
)

// CheckStatus grades one doctor check.
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

// Check is one line of the doctor report.
type Check struct {
	Name   string      `json:"name"`
	Status CheckStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

// Report is the full doctor output.
type Report struct {
	Checks []Check    `json:"checks"`
	System SystemInfo `json:"system"`
}

// Healthy reports whether no check failed.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return false
		}
	}
	return true
}

// StatusProber is the slice of the backend client the doctor needs.
type StatusProber interface {
	Status(ctx context.Context) (*botapi.Status, error)
}

// RunDoctor checks the panel configuration, probes the backend, and snapshots
// host resources.
func RunDoctor(ctx context.Context, cfg *config.Config, prober StatusProber) *Report {
	report := &Report{System: CollectSystemInfo()}

	report.Checks = append(report.Checks, checkConfig(cfg))
	report.Checks = append(report.Checks, checkAPIKey(cfg))
	report.Checks = append(report.Checks, checkBackend(ctx, prober))
	report.Checks = append(report.Checks, checkResources(report.System)...)

	return report
}

func checkConfig(cfg *config.Config) Check {
	if err := cfg.ValidateAPI(); err != nil {
		return Check{Name: "configuration", Status: StatusFail, Detail: err.Error()}
	}
	return Check{Name: "configuration", Status: StatusPass, Detail: "backend URL " + cfg.API.URL}
}

func checkAPIKey(cfg *config.Config) Check {
	if cfg.API.Key == "" {
		return Check{
			Name:   "api key",
			Status: StatusWarn,
			Detail: "no API key configured, requests will be unauthenticated",
		}
	}
	return Check{Name: "api key", Status: StatusPass, Detail: "API key configured"}
}

func checkBackend(ctx context.Context, prober StatusProber) Check {
	if prober == nil {
		return Check{Name: "backend", Status: StatusFail, Detail: "no client available"}
	}

	start := time.Now()
	status, err := prober.Status(ctx)
	if err != nil {
		detail := err.Error()
		if apiErr, ok := botapi.AsError(err); ok {
			detail = fmt.Sprintf("%s (%s)", apiErr.Message, apiErr.Kind)
		}
		return Check{Name: "backend", Status: StatusFail, Detail: detail}
	}

	return Check{
		Name:   "backend",
		Status: StatusPass,
		Detail: fmt.Sprintf("state %s, responded in %s", status.State, time.Since(start).Round(time.Millisecond)),
	}
}

func checkResources(info SystemInfo) []Check {
	var checks []Check

	memCheck := Check{Name: "memory", Status: StatusPass,
		Detail: fmt.Sprintf("%.0f%% used", info.MemPercent)}
	if info.MemPercent > 90 {
		memCheck.Status = StatusWarn
		memCheck.Detail = fmt.Sprintf("%.0f%% used, system is under memory pressure", info.MemPercent)
	}
	checks = append(checks, memCheck)

	diskCheck := Check{Name: "disk", Status: StatusPass,
		Detail: fmt.Sprintf("%.0f%% used", info.DiskPercent)}
	if info.DiskPercent > 90 {
		diskCheck.Status = StatusWarn
		diskCheck.Detail = fmt.Sprintf("%.0f%% used, consider freeing space", info.DiskPercent)
	}
	checks = append(checks, diskCheck)

	return checks
}
