package ports

import "go.trai.ch/drift/internal/core/domain"

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// InvalidResolvesCache remembers dependencies that failed to resolve.
// Implementations are safe for concurrent use.
type InvalidResolvesCache interface {
	// Get returns the remembered failure for dep, if it has not expired.
	Get(dep domain.Dependency) (domain.FailedResolve, bool)

	// Put records a failure for dep.
	Put(dep domain.Dependency, cause string)
}

// KeyValueStore is the storage backing an InvalidResolvesCache.
type KeyValueStore interface {
	// Open acquires exclusive access to the store until the session is closed.
	Open() (Session, error)
}

// Session is an exclusive view of a KeyValueStore.
type Session interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	// Close persists pending changes and releases the store.
	Close() error
}

// CacheFactory opens the invalid resolves cache described by the settings.
type CacheFactory interface {
	Open(settings domain.CacheSettings) InvalidResolvesCache

	// Clean removes the persisted cache.
	Clean(settings domain.CacheSettings) error
}
