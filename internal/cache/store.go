// Package cache implements the persistent content-addressed cache
// (spec.md §4.3 cache layer, §6 cache layout): a key-value store with
// sub-namespaces fileStats, metadata, adaptiveExtraction, each paired
// with a _config namespace, plus a path_index namespace.
package cache

import "fmt"

// Namespace identifies one of the cache's result sub-stores.
type Namespace string

const (
	NamespaceFileStats          Namespace = "fileStats"
	NamespaceMetadata           Namespace = "metadata"
	NamespaceAdaptiveExtraction Namespace = "adaptiveExtraction"
)

// namespaces lists every result namespace, for backends that need to
// pre-create buckets/tables.
var namespaces = []Namespace{NamespaceFileStats, NamespaceMetadata, NamespaceAdaptiveExtraction}

func configNamespace(ns Namespace) Namespace {
	return ns + "_config"
}

// Store is the persistent cache's interface, generalizing the teacher's
// index.Store from a single fingerprint index to the namespaced
// job-result cache spec.md §4.3/§6 describes.
type Store interface {
	// Get looks up the cached JSON-encoded result for key in namespace
	// ns. ok is false on a cache miss.
	Get(ns Namespace, key string) (data []byte, ok bool, err error)

	// Put writes the result and its job-config hash atomically: a
	// cache entry is only valid when result and config agree (spec.md
	// §5).
	Put(ns Namespace, key string, data []byte, configHash string) error

	// GetConfig returns the job-config hash stored alongside key, if
	// any.
	GetConfig(ns Namespace, key string) (configHash string, ok bool, err error)

	// PathHash looks up the last-known content hash for a
	// discovered path.
	PathHash(path string) (contentHash string, ok bool, err error)

	// SetPathHash records path's current content hash.
	SetPathHash(path, contentHash string) error

	Close() error
}

// Type selects a Store backend.
type Type string

const (
	TypeBolt   Type = "bolt"
	TypeSQLite Type = "sqlite"
	TypeMemory Type = "memory"
)

// Config configures NewStore.
type Config struct {
	Type Type
	Path string // file path for bolt/sqlite backends; ignored for memory
}

// NewStore constructs a Store backend per cfg.Type, mirroring the
// teacher's index.NewStore factory.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Type {
	case TypeBolt, "":
		return NewBoltStore(cfg.Path)
	case TypeSQLite:
		return NewSQLiteStore(cfg.Path)
	case TypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("cache: unknown store type %q", cfg.Type)
	}
}
