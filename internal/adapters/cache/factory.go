package cache

import (
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
)

var _ ports.CacheFactory = (*Factory)(nil)

// Factory opens file backed caches.
type Factory struct {
	logger ports.Logger
}

// NewFactory returns a Factory that reports store failures to logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// Open returns the cache described by settings. A disabled cache never remembers.
func (f *Factory) Open(settings domain.CacheSettings) ports.InvalidResolvesCache {
	if settings.Disabled {
		return Noop{}
	}
	maxAge := settings.MaxAge
	if maxAge <= 0 {
		maxAge = domain.DefaultCacheMaxAge
	}
	return NewInvalidResolves(NewFileStore(cachePath(settings)), maxAge, f.logger)
}

// Clean removes the cache file and its lock file.
func (f *Factory) Clean(settings domain.CacheSettings) error {
	return NewFileStore(cachePath(settings)).Remove()
}

func cachePath(settings domain.CacheSettings) string {
	if settings.Path == "" {
		return domain.DefaultCachePath()
	}
	return settings.Path
}
