package domain

import (
	"path/filepath"
	"time"
)

const (
	// DriftDirName is the name of the internal workspace directory.
	DriftDirName = ".drift"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// InvalidResolvesFileName is the name of the invalid resolves cache file.
	InvalidResolvesFileName = "invalid-resolves.json"

	// DriftFileName is the name of the project configuration file.
	DriftFileName = "drift.yaml"

	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "drift.work.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// DefaultCacheMaxAge is how long a failed resolution is remembered.
	DefaultCacheMaxAge = 24 * time.Hour
)

// DefaultCachePath returns the default path of the invalid resolves cache.
// It joins .drift, cache and invalid-resolves.json.
func DefaultCachePath() string {
	return filepath.Join(DriftDirName, CacheDirName, InvalidResolvesFileName)
}
