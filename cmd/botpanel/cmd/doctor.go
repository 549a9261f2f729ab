package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/diagnostics"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the panel configuration, backend, and host",
	Long: `Runs a set of health checks: configuration validity, backend
reachability, and host resource pressure. Exits non-zero when any check
fails.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		var prober diagnostics.StatusProber
		if client, err := newClient(newLogger()); err == nil {
			prober = client
		}

		report := diagnostics.RunDoctor(context.Background(), cfg, prober)

		if jsonOut {
			if err := printJSON(report); err != nil {
				return err
			}
		} else {
			printReport(report)
		}

		if !report.Healthy() {
			return errors.New("one or more checks failed")
		}
		return nil
	},
}

func printReport(report *diagnostics.Report) {
	for _, c := range report.Checks {
		printf("%s %-14s %s", checkIcon(c.Status), c.Name, c.Detail)
	}

	sys := report.System
	printf("")
	if sys.CPUModel != "" {
		printf("CPU:    %s (%d cores, %d threads)", sys.CPUModel, sys.CPUCores, sys.CPUThreads)
	}
	if sys.MemTotalMB > 0 {
		printf("Memory: %.0f / %.0f MB (%.0f%%)", sys.MemUsedMB, sys.MemTotalMB, sys.MemPercent)
	}
	if sys.DiskTotalGB > 0 {
		printf("Disk:   %.1f / %.1f GB (%.0f%%)", sys.DiskUsedGB, sys.DiskTotalGB, sys.DiskPercent)
	}
	if sys.LoadAvg1 > 0 {
		printf("Load:   %.2f %.2f %.2f", sys.LoadAvg1, sys.LoadAvg5, sys.LoadAvg15)
	}
	for _, gpu := range sys.GPUs {
		printf("GPU:    %s", gpu)
	}
}

func checkIcon(status diagnostics.CheckStatus) string {
	switch status {
	case diagnostics.StatusPass:
		return "✓"
	case diagnostics.StatusWarn:
		return "!"
	default:
		return "✗"
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
