// Package engine wires the similarity pipeline's components — scanner,
// fingerprint assembler, clusterer, representative selector, and
// transfer — into the single entry point spec.md §5 describes:
// discover files, fingerprint each, cluster near-duplicates, pick
// representatives, relocate the rest.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/HaiderBassem/mediadedupe/internal/cache"
	"github.com/HaiderBassem/mediadedupe/internal/cluster"
	"github.com/HaiderBassem/mediadedupe/internal/extractor"
	"github.com/HaiderBassem/mediadedupe/internal/fingerprint"
	"github.com/HaiderBassem/mediadedupe/internal/hash"
	"github.com/HaiderBassem/mediadedupe/internal/mediaio"
	"github.com/HaiderBassem/mediadedupe/internal/report"
	"github.com/HaiderBassem/mediadedupe/internal/scanner"
	"github.com/HaiderBassem/mediadedupe/internal/selector"
	"github.com/HaiderBassem/mediadedupe/internal/transfer"
	"github.com/HaiderBassem/mediadedupe/internal/utils"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Engine is the central coordinator for a deduplication run.
type Engine struct {
	config    Config
	cache     cache.Store
	scanner   *scanner.Scanner
	assembler *fingerprint.Assembler
	transfer  *transfer.Transfer
	reportGen *report.Generator
	logger    *utils.Logger
}

// NewEngine creates a new deduplication engine with the given
// configuration, wiring the cache, scanner, extractor, and fingerprint
// assembler collaborators.
func NewEngine(cfg Config) (*Engine, error) {
	logConfig := utils.GetDefaultConfig()
	logConfig.Level = cfg.LogLevel
	logger, err := utils.CreateModuleLogger("engine", logConfig)
	if err != nil {
		return nil, fmt.Errorf("engine: create logger: %w", err)
	}

	store, err := cache.NewStore(cache.Config{Type: cfg.CacheType, Path: cfg.CachePath})
	if err != nil {
		return nil, fmt.Errorf("engine: create cache store: %w", err)
	}

	sc := scanner.NewScanner(scanner.Config{
		NumWorkers:       cfg.NumWorkers,
		SupportedFormats: scanner.DefaultConfig().SupportedFormats,
		ExcludeDirs:      scanner.DefaultConfig().ExcludeDirs,
	})

	images := mediaio.NewStdImageDecoder()
	videos := mediaio.NewFFmpegVideoDecoder(cfg.FFmpegPath, cfg.FFprobePath)
	hasher := hash.NewHasher(cfg.Extractor.Resolution, cfg.HashBits)
	ext := extractor.New(images, videos, hasher, cfg.Extractor)

	metadata := mediaio.NewEXIFMetadataProducer()
	stats := mediaio.NewFileStatsProducer(api.DefaultMaxChunkSize)
	assembler := fingerprint.New(store, stats, metadata, ext, cfg.Extractor)

	return &Engine{
		config:    cfg,
		cache:     store,
		scanner:   sc,
		assembler: assembler,
		transfer:  transfer.New(cfg.Transfer),
		reportGen: report.NewGenerator(),
		logger:    logger,
	}, nil
}

// Close releases the engine's cache store.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// Run executes the full pipeline over sourceDirs (spec.md §5): discover
// files, assemble fingerprints concurrently, cluster near-duplicates,
// select representatives, and return the assembled result. progress, if
// non-nil, receives a Progress snapshot per scanned source directory and
// per fingerprinted file; sends never block, and a snapshot is dropped
// when the channel has no room, so callers should keep it buffered or
// read continuously from another goroutine.
func (e *Engine) Run(ctx context.Context, sourceDirs []string, progress chan<- api.Progress) (*api.DeduplicationResult, error) {
	start := time.Now()

	var paths []string
	if err := e.logger.LogOperation("discover", func() error {
		var err error
		paths, err = e.discover(ctx, sourceDirs, progress)
		return err
	}); err != nil {
		return nil, err
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	var infos map[api.FileID]api.FileInfo
	var failures []api.FileFailure
	if err := e.logger.LogOperation("fingerprint", func() error {
		infos, failures = e.fingerprintAll(ctx, paths, progress)
		return nil
	}); err != nil {
		return nil, err
	}
	e.logger.LogPerformance("fingerprint", time.Since(start).Nanoseconds(), len(infos))

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	result := e.clusterAndSelect(infos, failures)
	e.logger.Infof("grouped into %d duplicate sets, %d unique files", len(result.DuplicateSets), len(result.UniqueFiles))

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	if e.hasTransferTargets() {
		e.relocate(result)
	}

	e.logger.Infof("run completed in %v", time.Since(start))
	return result, nil
}

// discover runs the scanner once per source directory and concatenates
// the results.
func (e *Engine) discover(ctx context.Context, sourceDirs []string, progress chan<- api.Progress) ([]string, error) {
	var all []string
	for i, dir := range sourceDirs {
		if err := checkCancelled(ctx); err != nil {
			return nil, err
		}
		found, err := e.scanner.ScanFolder(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("engine: scan %s: %w", dir, err)
		}
		all = append(all, found...)
		reportProgress(progress, api.Progress{
			Stage: "discover", Current: i + 1, Total: len(sourceDirs),
			Percentage: float64(i+1) / float64(len(sourceDirs)) * 100,
			CurrentRef: dir,
		})
	}
	return all, nil
}

// fingerprintAll assembles every discovered file's FileInfo with bounded
// concurrency, collecting per-file failures instead of aborting the run
// (spec.md §7).
func (e *Engine) fingerprintAll(ctx context.Context, paths []string, progress chan<- api.Progress) (map[api.FileID]api.FileInfo, []api.FileFailure) {
	proc := newProcessor(e.assembler, e.config.NumWorkers)
	results := proc.Run(ctx, paths)

	infos := make(map[api.FileID]api.FileInfo, len(paths))
	var failures []api.FileFailure
	for i, r := range results {
		if r.Err != nil {
			failures = append(failures, api.FileFailure{Path: r.Path, Kind: "fingerprint", Err: r.Err})
		} else {
			infos[r.Info.ID] = r.Info
		}
		reportProgress(progress, api.Progress{
			Stage: "fingerprint", Current: i + 1, Total: len(paths),
			Percentage: float64(i+1) / float64(len(paths)) * 100,
			CurrentRef: r.Path,
		})
		e.logger.LogProgress("fingerprint", i+1, len(paths))
	}
	return infos, failures
}

// clusterAndSelect runs DBSCAN over every assembled FileInfo and, for
// each cluster of size >= 2, selects representatives and assembles a
// DuplicateSet (spec.md §4.6/§4.7).
func (e *Engine) clusterAndSelect(infos map[api.FileID]api.FileInfo, failures []api.FileFailure) *api.DeduplicationResult {
	points := make([]cluster.Point, 0, len(infos))
	for id, info := range infos {
		points = append(points, cluster.Point{ID: id, Media: info.Media})
	}

	clusters := cluster.Run(points, cluster.Config{
		Thresholds:  e.config.Thresholds,
		MinPts:      e.config.MinPts,
		Concurrency: e.config.NumWorkers,
	})

	resolve := func(id api.FileID) api.FileInfo { return infos[id] }

	result := &api.DeduplicationResult{Failures: failures}
	for _, c := range clusters {
		if len(c.Members) < 2 {
			result.UniqueFiles = append(result.UniqueFiles, c.Members...)
			continue
		}

		reps := selector.Select(c.Members, resolve, e.config.Thresholds)
		result.DuplicateSets = append(result.DuplicateSets, buildDuplicateSet(c.Members, reps))
	}
	return result
}

// buildDuplicateSet assembles the externally reported DuplicateSet from
// a cluster's full member list and its chosen representatives (first
// entry is bestFile, per selector.Select's contract).
func buildDuplicateSet(members, reps []api.FileID) api.DuplicateSet {
	repSet := make(map[api.FileID]bool, len(reps))
	for _, r := range reps {
		repSet[r] = true
	}

	var duplicates []api.FileID
	for _, m := range members {
		if !repSet[m] {
			duplicates = append(duplicates, m)
		}
	}

	var bestFile api.FileID
	if len(reps) > 0 {
		bestFile = reps[0]
	}

	return api.DuplicateSet{
		BestFile:        bestFile,
		Representatives: reps,
		Duplicates:      duplicates,
	}
}

// hasTransferTargets reports whether the engine's Transfer configuration
// names at least one destination directory.
func (e *Engine) hasTransferTargets() bool {
	t := e.config.Transfer
	return t.DuplicatesDir != "" || t.BestFilesDir != "" || t.FailuresDir != ""
}

// relocate moves or copies duplicate set members, representatives, and
// failed files into their configured destinations. Relocation failures
// are logged, not fatal: the DeduplicationResult already reflects the
// correct grouping regardless of where files end up on disk.
func (e *Engine) relocate(result *api.DeduplicationResult) {
	for _, set := range result.DuplicateSets {
		for _, id := range set.Representatives {
			if _, err := e.transfer.RelocateBestFile(string(id)); err != nil {
				e.logger.Warnf("relocate best file %s: %v", id, err)
			}
		}
		for _, id := range set.Duplicates {
			if _, err := e.transfer.RelocateDuplicate(string(id)); err != nil {
				e.logger.Warnf("relocate duplicate %s: %v", id, err)
			}
		}
	}
	for _, f := range result.Failures {
		if _, err := e.transfer.RelocateFailure(f.Path); err != nil {
			e.logger.Warnf("relocate failure %s: %v", f.Path, err)
		}
	}
}

// GenerateReports writes text/JSON/HTML reports for result into outDir.
func (e *Engine) GenerateReports(result *api.DeduplicationResult, sizeOf report.SizeOf, outDir string) error {
	return e.reportGen.GenerateAll(result, sizeOf, outDir)
}

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return api.ErrCancelled
	default:
		return nil
	}
}

func reportProgress(ch chan<- api.Progress, p api.Progress) {
	if ch == nil {
		return
	}
	select {
	case ch <- p:
	default:
	}
}
