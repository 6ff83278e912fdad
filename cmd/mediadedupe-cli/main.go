package main

import (
	"fmt"
	"os"

	"github.com/HaiderBassem/mediadedupe/cmd/mediadedupe-cli/commands"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "mediadedupe",
		Version: "1.0.0",
		Usage:   "Perceptual photo and video deduplication",
		Commands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Scan directories, fingerprint files, and report duplicate sets",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "path",
						Aliases:  []string{"p"},
						Usage:    "Directory to scan (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Fingerprint cache path",
						Value: "mediadedupe-cache.db",
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of concurrent workers",
						Value:   4,
					},
					&cli.StringFlag{
						Name:  "report-dir",
						Usage: "Directory to write report.txt/json/html into",
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: "Tuning profile: default, performance, accuracy, fast",
						Value: "default",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Load pipeline configuration from a YAML file (overrides --profile)",
					},
				},
				Action: commands.ScanCommand,
			},
			{
				Name:  "clean",
				Usage: "Scan, then relocate duplicates and best files",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "path",
						Aliases:  []string{"p"},
						Usage:    "Directory to scan (repeatable)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Fingerprint cache path",
						Value: "mediadedupe-cache.db",
					},
					&cli.StringFlag{
						Name:     "duplicates-dir",
						Usage:    "Directory to relocate duplicate files into",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "best-files-dir",
						Usage: "Directory to relocate best/representative files into (optional)",
					},
					&cli.StringFlag{
						Name:  "failures-dir",
						Usage: "Directory to relocate files that failed fingerprinting into (optional)",
					},
					&cli.BoolFlag{
						Name:  "copy",
						Usage: "Copy files instead of moving them",
					},
					&cli.StringFlag{
						Name:  "profile",
						Usage: "Tuning profile: default, performance, accuracy, fast",
						Value: "default",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Load pipeline configuration from a YAML file (overrides --profile)",
					},
				},
				Action: commands.CleanCommand,
			},
			{
				Name:  "quality",
				Usage: "Compute the diagnostic sharpness/exposure score of a single image",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "image",
						Aliases:  []string{"i"},
						Usage:    "Image file to analyze",
						Required: true,
					},
				},
				Action: commands.QualityCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
