// Package scanner discovers candidate image and video files under a set
// of root directories via a bounded-concurrency directory walk.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/HaiderBassem/mediadedupe/internal/utils"
)

// Scanner handles recursive directory scanning and media file discovery.
type Scanner struct {
	config Config
	filter *Filter
	logger *utils.Logger
}

// Config defines scanner behavior and supported formats.
type Config struct {
	NumWorkers       int
	SupportedFormats []string
	ExcludeDirs      []string
	MaxFileSize      int64
	FollowSymlinks   bool
}

// DefaultConfig returns sensible default scanner configuration, covering
// both still-image and video candidate extensions.
func DefaultConfig() Config {
	return Config{
		NumWorkers: 4,
		SupportedFormats: []string{
			".jpg", ".jpeg", ".png", ".webp", ".tiff", ".tif", ".bmp", ".gif",
			".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v",
		},
		ExcludeDirs:    []string{".git", ".svn", ".hg", "node_modules", "__pycache__"},
		MaxFileSize:    0, // no cap by default; adaptive extraction handles large video files
		FollowSymlinks: false,
	}
}

// NewScanner creates a new directory scanner with the specified configuration.
func NewScanner(cfg Config) *Scanner {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}

	filter := NewFilter()
	filter.AddIncludeExtension(cfg.SupportedFormats...)
	filter.AddExcludeDir(cfg.ExcludeDirs...)
	filter.SetSizeLimits(0, cfg.MaxFileSize)

	logger, _ := utils.CreateModuleLogger("scanner", utils.GetDefaultConfig())

	return &Scanner{config: cfg, filter: filter, logger: logger}
}

// ScanFolder recursively scans a directory for media files.
func (s *Scanner) ScanFolder(ctx context.Context, rootPath string) ([]string, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	start := time.Now()
	var mediaPaths []string
	var jobErrors []error

	err = s.logger.LogOperation(fmt.Sprintf("scan %s", absPath), func() error {
		fileInfo, err := os.Stat(absPath)
		if err != nil {
			return fmt.Errorf("access directory: %w", err)
		}
		if !fileInfo.IsDir() {
			return fmt.Errorf("path is not a directory: %s", absPath)
		}

		pool := NewWorkerPool(s.config.NumWorkers)
		pool.Start(ctx, s)

		var walkErrors []error
		var walkMu sync.Mutex
		go func() {
			s.walkDirectories(ctx, absPath, pool, &walkErrors, &walkMu)
			pool.CloseJobs()
		}()

		results := pool.GetResults()
		errs := pool.GetErrors()
		dirsScanned := 0
		for results != nil || errs != nil {
			select {
			case r, ok := <-results:
				if !ok {
					results = nil
					continue
				}
				dirsScanned++
				if r.Error != nil {
					jobErrors = append(jobErrors, r.Error)
					continue
				}
				mediaPaths = append(mediaPaths, r.Files...)
				s.logger.LogProgress("scan", dirsScanned, dirsScanned+1)
			case e, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				if e != nil {
					jobErrors = append(jobErrors, e)
				}
			}
		}

		walkMu.Lock()
		jobErrors = append(jobErrors, walkErrors...)
		walkMu.Unlock()

		for _, e := range jobErrors {
			s.logger.Warnf("scan error: %v", e)
		}

		if len(jobErrors) > 0 && len(mediaPaths) == 0 {
			return fmt.Errorf("scan failed with %d errors: %w", len(jobErrors), jobErrors[0])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogPerformance(fmt.Sprintf("scan %s", absPath), time.Since(start).Nanoseconds(), len(mediaPaths))
	return mediaPaths, nil
}

// walkDirectories walks the directory tree, submitting each directory as
// a job to the worker pool.
func (s *Scanner) walkDirectories(ctx context.Context, root string, pool *WorkerPool, walkErrors *[]error, mu *sync.Mutex) {
	jobID := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			mu.Lock()
			*walkErrors = append(*walkErrors, fmt.Errorf("access error at %s: %w", path, err))
			mu.Unlock()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if info.IsDir() {
			if !s.filter.ShouldIncludeDir(path) {
				s.logger.Debugf("skipping excluded directory: %s", path)
				return filepath.SkipDir
			}
			pool.SubmitJob(Job{ID: jobID, Path: path, Type: JobTypeScanDir})
			jobID++
		}

		return nil
	})

	if err != nil && err != context.Canceled {
		mu.Lock()
		*walkErrors = append(*walkErrors, fmt.Errorf("directory walk error: %w", err))
		mu.Unlock()
	}
}

// scanDirectory lists one directory's immediate media file entries.
func (s *Scanner) scanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var mediaPaths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filePath := filepath.Join(dir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			s.logger.Debugf("failed to stat %s: %v", filePath, err)
			continue
		}

		if !s.filter.ShouldIncludeFile(filePath, info.Size()) {
			continue
		}

		mediaPaths = append(mediaPaths, filePath)
	}

	return mediaPaths, nil
}

// GetSupportedFormats returns the list of supported media formats.
func (s *Scanner) GetSupportedFormats() []string {
	return s.config.SupportedFormats
}
