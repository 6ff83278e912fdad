// Package transfer resolves target paths for duplicate-set members and
// performs the move/copy to relocate them. Grounded on the teacher's
// internal/filesystem/{organizer,path_utils,safe_operations}.go, merged
// into one small package since spec.md specifies this surface only at
// its interface.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Mode selects whether Transfer relocates files by move or by copy.
type Mode int

const (
	ModeMove Mode = iota
	ModeCopy
)

// Config controls where duplicates/best files/failures land.
type Config struct {
	Mode          Mode
	DuplicatesDir string
	BestFilesDir  string // empty means leave best files in place
	FailuresDir   string // empty means leave failed files in place
}

// Transfer relocates files according to a DeduplicationResult.
type Transfer struct {
	cfg    Config
	logger *logrus.Logger
}

// New creates a Transfer.
func New(cfg Config) *Transfer {
	return &Transfer{cfg: cfg, logger: logrus.New()}
}

// RelocateDuplicate moves or copies a duplicate file into DuplicatesDir,
// preserving the name and resolving conflicts. No-op if DuplicatesDir
// is empty.
func (t *Transfer) RelocateDuplicate(path string) (string, error) {
	if t.cfg.DuplicatesDir == "" {
		return path, nil
	}
	return t.relocate(path, t.cfg.DuplicatesDir)
}

// RelocateBestFile moves or copies a best/representative file into
// BestFilesDir. No-op if BestFilesDir is empty.
func (t *Transfer) RelocateBestFile(path string) (string, error) {
	if t.cfg.BestFilesDir == "" {
		return path, nil
	}
	return t.relocate(path, t.cfg.BestFilesDir)
}

// RelocateFailure moves or copies a file that failed fingerprinting
// into FailuresDir for later inspection. No-op if FailuresDir is empty.
func (t *Transfer) RelocateFailure(path string) (string, error) {
	if t.cfg.FailuresDir == "" {
		return path, nil
	}
	return t.relocate(path, t.cfg.FailuresDir)
}

func (t *Transfer) relocate(sourcePath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}

	destPath := resolveConflict(filepath.Join(destDir, filepath.Base(sourcePath)))

	switch t.cfg.Mode {
	case ModeCopy:
		if err := copyFile(sourcePath, destPath); err != nil {
			return "", fmt.Errorf("copy file: %w", err)
		}
	default:
		if err := os.Rename(sourcePath, destPath); err != nil {
			return "", fmt.Errorf("move file: %w", err)
		}
	}

	t.logger.Debugf("relocated %s -> %s", sourcePath, destPath)
	return destPath, nil
}

func copyFile(source, destination string) error {
	data, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	return os.WriteFile(destination, data, 0644)
}

// resolveConflict appends a numeric suffix, then a timestamp, until it
// finds a path that doesn't already exist.
func resolveConflict(path string) string {
	if !exists(path) {
		return path
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	for i := 1; i < 1000; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, i, ext))
		if !exists(candidate) {
			return candidate
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, timestamp, ext))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
