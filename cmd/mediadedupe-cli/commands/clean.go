package commands

import (
	"context"
	"fmt"

	"github.com/HaiderBassem/mediadedupe/internal/transfer"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
	"github.com/HaiderBassem/mediadedupe/pkg/engine"
	"github.com/urfave/cli/v2"
)

// CleanCommand runs the same pipeline as ScanCommand, then relocates
// duplicate, best, and failed files into the configured directories.
func CleanCommand(c *cli.Context) error {
	paths := c.StringSlice("path")
	if len(paths) == 0 {
		return cli.Exit("at least one --path is required", 1)
	}

	cfg, err := resolveConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	cfg.CachePath = c.String("cache")
	cfg.Transfer = transfer.Config{
		DuplicatesDir: c.String("duplicates-dir"),
		BestFilesDir:  c.String("best-files-dir"),
		FailuresDir:   c.String("failures-dir"),
	}
	if c.Bool("copy") {
		cfg.Transfer.Mode = transfer.ModeCopy
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to create engine: %v", err), 1)
	}
	defer eng.Close()

	progress := make(chan api.Progress, 16)
	go displayProgress(progress)

	result, err := eng.Run(context.Background(), paths, progress)
	close(progress)
	if err != nil {
		return cli.Exit(fmt.Sprintf("clean failed: %v", err), 1)
	}

	printSummary(result)
	fmt.Printf("duplicates relocated to: %s\n", cfg.Transfer.DuplicatesDir)
	return nil
}
