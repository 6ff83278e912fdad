// Package commands implements one urfave/cli/v2 command per file,
// mirroring the teacher's cmd/imaged-cli/commands split.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HaiderBassem/mediadedupe/internal/utils"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/HaiderBassem/mediadedupe/pkg/engine"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

// ScanCommand discovers files under the given paths, fingerprints them,
// and reports the resulting duplicate sets.
func ScanCommand(c *cli.Context) error {
	paths := c.StringSlice("path")
	if len(paths) == 0 {
		return cli.Exit("at least one --path is required", 1)
	}

	cfg, err := resolveConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cfg.CachePath = c.String("cache")
	cfg.NumWorkers = c.Int("workers")

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}
	defer eng.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupInterruptHandler(cancel)

	progress := make(chan api.Progress, 16)
	go displayProgress(progress)

	result, err := eng.Run(ctx, paths, progress)
	close(progress)
	if err != nil {
		return cli.Exit(fmt.Sprintf("scan failed: %v", err), 1)
	}

	printSummary(result)

	if dir := c.String("report-dir"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return cli.Exit(fmt.Sprintf("failed to create report directory: %v", err), 1)
		}
		if err := eng.GenerateReports(result, sizeOfPath, dir); err != nil {
			return cli.Exit(fmt.Sprintf("failed to write reports: %v", err), 1)
		}
		fmt.Printf("reports written to %s\n", dir)
	}

	return nil
}

// configForProfile resolves the named tuning profile to an
// engine.Config, defaulting to engine.DefaultConfig for an unknown name.
func configForProfile(name string) engine.Config {
	switch name {
	case "performance":
		return engine.HighPerformanceConfig()
	case "accuracy":
		return engine.AccuracyConfig()
	case "fast":
		return engine.FastScanConfig()
	default:
		return engine.DefaultConfig()
	}
}

// sizeOfPath resolves a FileID (the discovered absolute path) to its
// on-disk size, for report generation's space-savings estimate.
func sizeOfPath(id api.FileID) int64 {
	info, err := os.Stat(string(id))
	if err != nil {
		return 0
	}
	return info.Size()
}

func printSummary(result *api.DeduplicationResult) {
	var saved int64
	for _, set := range result.DuplicateSets {
		for _, id := range set.Duplicates {
			saved += sizeOfPath(id)
		}
	}

	fmt.Printf("\nScan complete:\n")
	fmt.Printf("  unique files:     %d\n", len(result.UniqueFiles))
	fmt.Printf("  duplicate sets:   %d\n", len(result.DuplicateSets))
	fmt.Printf("  fingerprint failures: %d\n", len(result.Failures))
	fmt.Printf("  potential space savings: %s\n", humanize.Bytes(uint64(saved)))
}

func displayProgress(progress <-chan api.Progress) {
	var tracker *utils.ProgressTracker
	var lastStage string
	for p := range progress {
		if p.Stage != lastStage {
			if tracker != nil {
				tracker.Complete()
			}
			tracker = utils.NewProgressTracker(p.Total, p.Stage)
			lastStage = p.Stage
		}
		tracker.Set(p.Current)
	}
	if tracker != nil {
		tracker.Complete()
	}
}

func setupInterruptHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nreceived interrupt signal, stopping...")
		cancel()
	}()
}
