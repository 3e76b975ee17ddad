package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidVersion is returned when explicit version components violate the version invariants.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidNotation is returned when a dependency or module notation cannot be parsed.
	ErrInvalidNotation = zerr.New("invalid dependency notation")

	// ErrInvalidIgnoreLevel is returned when an ignore rule names an unknown level.
	ErrInvalidIgnoreLevel = zerr.New("invalid ignore level, expected 'all', 'major', 'minor' or 'micro'")

	// ErrInvalidRule is returned when a policy rule is neither a module nor a dependency rule.
	ErrInvalidRule = zerr.New("invalid policy rule")

	// ErrResolutionFailed is returned when a dependency cannot be resolved by any repository.
	ErrResolutionFailed = zerr.New("failed to resolve dependency")

	// ErrModuleNotFound is returned when a repository does not know the requested module.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrNoMatchingVersion is returned when no published version matches the requested range.
	ErrNoMatchingVersion = zerr.New("no matching version")

	// ErrRepositoryRequestFailed is returned when a repository request fails.
	ErrRepositoryRequestFailed = zerr.New("repository request failed")

	// ErrRepositoryParseFailed is returned when a repository response cannot be parsed.
	ErrRepositoryParseFailed = zerr.New("failed to parse repository response")

	// ErrNoRepositories is returned when no repository or catalog is configured.
	ErrNoRepositories = zerr.New("no repositories configured")

	// ErrCacheOpenFailed is returned when the invalid resolves cache store cannot be opened.
	ErrCacheOpenFailed = zerr.New("failed to open invalid resolves cache")

	// ErrCacheLockFailed is returned when the cache file lock cannot be acquired.
	ErrCacheLockFailed = zerr.New("failed to lock invalid resolves cache")

	// ErrCacheReadFailed is returned when the cache file cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read invalid resolves cache")

	// ErrCacheUnmarshalFailed is returned when the cache file cannot be unmarshaled.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal invalid resolves cache")

	// ErrCacheMarshalFailed is returned when the cache cannot be marshaled.
	ErrCacheMarshalFailed = zerr.New("failed to marshal invalid resolves cache")

	// ErrCacheWriteFailed is returned when the cache file cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write invalid resolves cache")

	// ErrCacheSessionClosed is returned when a closed cache session is used.
	ErrCacheSessionClosed = zerr.New("cache session is closed")

	// ErrCacheCleanFailed is returned when the cache file cannot be removed.
	ErrCacheCleanFailed = zerr.New("failed to clean invalid resolves cache")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find drift.yaml or drift.work.yaml")

	// ErrInvalidProjectName is returned when a project name contains invalid characters.
	ErrInvalidProjectName = zerr.New("invalid project name")

	// ErrDuplicateProjectName is returned when two projects share a name.
	ErrDuplicateProjectName = zerr.New("duplicate project name")

	// ErrInvalidPlugin is returned when a plugin entry has no id.
	ErrInvalidPlugin = zerr.New("plugin id must not be empty")

	// ErrInvalidDuration is returned when a configured duration cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrInvalidParallelism is returned when the configured parallelism is not positive.
	ErrInvalidParallelism = zerr.New("parallelism must be positive")

	// ErrCheckFailed is returned when the update check cannot complete.
	ErrCheckFailed = zerr.New("update check failed")

	// ErrOutdatedDependencies is returned when outdated dependencies were found and the
	// caller asked to fail on them.
	ErrOutdatedDependencies = zerr.New("outdated dependencies found")
)
