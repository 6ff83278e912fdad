// Package fingerprint implements the File Fingerprint Assembler
// (spec.md §4.3): the path→hash→job-cache pipeline that turns a
// discovered path into an api.FileInfo, recomputing only what changed
// since the last run.
package fingerprint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/HaiderBassem/mediadedupe/internal/cache"
	"github.com/HaiderBassem/mediadedupe/internal/extractor"
	"github.com/HaiderBassem/mediadedupe/internal/mediaio"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Assembler wires together the cache and the mediaio/extractor
// collaborators to implement getFileInfo.
type Assembler struct {
	Cache     cache.Store
	Stats     mediaio.StatsProducer
	Metadata  mediaio.MetadataProducer
	Extractor *extractor.Extractor
	Config    extractor.Config
	locks     *cache.KeyLock
}

// New constructs an Assembler.
func New(store cache.Store, stats mediaio.StatsProducer, metadata mediaio.MetadataProducer, ext *extractor.Extractor, cfg extractor.Config) *Assembler {
	return &Assembler{
		Cache:     store,
		Stats:     stats,
		Metadata:  metadata,
		Extractor: ext,
		Config:    cfg,
		locks:     cache.NewKeyLock(64),
	}
}

// GetFileInfo implements spec.md §4.3's three-step contract.
func (a *Assembler) GetFileInfo(ctx context.Context, path string) (api.FileInfo, error) {
	stats, err := a.resolveStats(path)
	if err != nil {
		return api.FileInfo{}, err
	}

	isImage := !IsVideoPath(path)
	cfgHash := jobConfigHash(a.Config, isImage)

	media, err := a.getOrComputeMedia(ctx, path, stats.ContentHash, cfgHash, isImage)
	if err != nil {
		return api.FileInfo{}, err
	}

	metadata, err := a.getOrComputeMetadata(path, stats.ContentHash)
	if err != nil {
		return api.FileInfo{}, err
	}

	return api.FileInfo{
		ID:       api.FileID(path),
		Path:     path,
		Media:    media,
		Metadata: metadata,
		Stats:    stats,
	}, nil
}

// resolveStats implements step 1: path→hash lookup with stat-based
// invalidation.
func (a *Assembler) resolveStats(path string) (api.FileStats, error) {
	a.locks.Lock(path)
	defer a.locks.Unlock(path)

	contentHash, ok, err := a.Cache.PathHash(path)
	if err != nil {
		return api.FileStats{}, fmt.Errorf("fingerprint: path hash lookup: %w", err)
	}
	if ok {
		cached, hit, err := a.lookupFileStats(contentHash)
		if err != nil {
			return api.FileStats{}, err
		}
		if hit && statsFresh(cached, path) {
			return cached, nil
		}
	}

	stats, err := a.Stats.Stat(path)
	if err != nil {
		return api.FileStats{}, fmt.Errorf("fingerprint: %w: %v", api.ErrInvalidInput, err)
	}

	if err := a.storeFileStats(stats); err != nil {
		return api.FileStats{}, err
	}
	if err := a.Cache.SetPathHash(path, stats.ContentHash); err != nil {
		return api.FileStats{}, fmt.Errorf("fingerprint: set path hash: %w", err)
	}
	return stats, nil
}

// statsFresh reports whether the file's current on-disk size/mtime
// still match a previously cached FileStats, without recomputing the
// content hash.
func statsFresh(cached api.FileStats, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() == cached.Size && info.ModTime().Equal(cached.ModifiedAt)
}

func (a *Assembler) lookupFileStats(contentHash string) (api.FileStats, bool, error) {
	data, ok, err := a.Cache.Get(cache.NamespaceFileStats, contentHash)
	if err != nil || !ok {
		return api.FileStats{}, false, err
	}
	var stats api.FileStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return api.FileStats{}, false, fmt.Errorf("fingerprint: %w: unmarshal cached stats: %v", api.ErrCacheInconsistency, err)
	}
	return stats, true, nil
}

func (a *Assembler) storeFileStats(stats api.FileStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("fingerprint: marshal stats: %w", err)
	}
	if err := a.Cache.Put(cache.NamespaceFileStats, stats.ContentHash, data, ""); err != nil {
		return fmt.Errorf("fingerprint: store stats: %w", err)
	}
	return nil
}

// getOrComputeMedia implements step 2 for the adaptiveExtraction
// sub-job.
func (a *Assembler) getOrComputeMedia(ctx context.Context, path, contentHash, cfgHash string, isImage bool) (api.MediaInfo, error) {
	a.locks.Lock(contentHash)
	defer a.locks.Unlock(contentHash)

	if data, ok, err := a.Cache.Get(cache.NamespaceAdaptiveExtraction, contentHash); err != nil {
		return api.MediaInfo{}, fmt.Errorf("fingerprint: get cached media: %w", err)
	} else if ok {
		if storedCfg, _, err := a.Cache.GetConfig(cache.NamespaceAdaptiveExtraction, contentHash); err == nil && storedCfg == cfgHash {
			var media api.MediaInfo
			if err := json.Unmarshal(data, &media); err == nil {
				return media, nil
			}
		}
	}

	var media api.MediaInfo
	var err error
	if isImage {
		media, err = a.Extractor.ExtractImage(path)
	} else {
		media, err = a.Extractor.ExtractVideo(ctx, path)
	}
	if err != nil {
		return api.MediaInfo{}, err
	}

	data, err := json.Marshal(media)
	if err != nil {
		return api.MediaInfo{}, fmt.Errorf("fingerprint: marshal media: %w", err)
	}
	if err := a.Cache.Put(cache.NamespaceAdaptiveExtraction, contentHash, data, cfgHash); err != nil {
		return api.MediaInfo{}, fmt.Errorf("fingerprint: store media: %w", err)
	}
	return media, nil
}

// getOrComputeMetadata implements step 2 for the metadata sub-job.
// Metadata extraction has no configurable knobs, so its config hash is
// the fixed string "v1".
func (a *Assembler) getOrComputeMetadata(path, contentHash string) (api.Metadata, error) {
	const cfgHash = "v1"

	a.locks.Lock(contentHash)
	defer a.locks.Unlock(contentHash)

	if data, ok, err := a.Cache.Get(cache.NamespaceMetadata, contentHash); err != nil {
		return api.Metadata{}, fmt.Errorf("fingerprint: get cached metadata: %w", err)
	} else if ok {
		if storedCfg, _, err := a.Cache.GetConfig(cache.NamespaceMetadata, contentHash); err == nil && storedCfg == cfgHash {
			var meta api.Metadata
			if err := json.Unmarshal(data, &meta); err == nil {
				return meta, nil
			}
		}
	}

	meta, err := a.Metadata.Extract(path)
	if err != nil {
		return api.Metadata{}, fmt.Errorf("fingerprint: extract metadata: %w", err)
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return api.Metadata{}, fmt.Errorf("fingerprint: marshal metadata: %w", err)
	}
	if err := a.Cache.Put(cache.NamespaceMetadata, contentHash, data, cfgHash); err != nil {
		return api.Metadata{}, fmt.Errorf("fingerprint: store metadata: %w", err)
	}
	return meta, nil
}
