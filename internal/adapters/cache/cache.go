// Package cache remembers dependency resolutions that failed so that they are not
// attempted again until the entry expires.
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InvalidResolvesCache = (*InvalidResolves)(nil)

// InvalidResolves is a TTL cache of failed resolutions on top of a KeyValueStore.
// Store failures disable the cache for the rest of the process.
type InvalidResolves struct {
	store  ports.KeyValueStore
	maxAge time.Duration
	now    func() time.Time
	logger ports.Logger

	disabled atomic.Bool
	warnOnce sync.Once
}

// Option configures an InvalidResolves cache.
type Option func(*InvalidResolves)

// WithClock sets the time source used for timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(c *InvalidResolves) {
		c.now = now
	}
}

// NewInvalidResolves returns a cache whose entries expire after maxAge.
func NewInvalidResolves(store ports.KeyValueStore, maxAge time.Duration, logger ports.Logger, opts ...Option) *InvalidResolves {
	c := &InvalidResolves{
		store:  store,
		maxAge: maxAge,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type record struct {
	Group      string    `json:"group"`
	Name       string    `json:"name"`
	Version    string    `json:"version,omitempty"`
	Classifier string    `json:"classifier,omitempty"`
	Type       string    `json:"type,omitempty"`
	Cause      string    `json:"cause"`
	Timestamp  time.Time `json:"timestamp"`
}

func newRecord(dep domain.Dependency, cause string, ts time.Time) record {
	return record{
		Group:      dep.Group,
		Name:       dep.Name,
		Version:    dep.Version.String(),
		Classifier: dep.Classifier,
		Type:       dep.ArtifactType(),
		Cause:      cause,
		Timestamp:  ts.UTC(),
	}
}

func (r record) failedResolve() domain.FailedResolve {
	return domain.FailedResolve{
		Dependency: domain.Dependency{
			Group:      r.Group,
			Name:       r.Name,
			Version:    domain.ParseVersion(r.Version),
			Classifier: r.Classifier,
			Type:       r.Type,
		},
		Cause:     r.Cause,
		Timestamp: r.Timestamp,
	}
}

// Key returns the storage key of dep.
func Key(dep domain.Dependency) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(dep.Key()))
}

// Get returns the remembered failure for dep. Expired entries are removed and reported
// as a miss.
func (c *InvalidResolves) Get(dep domain.Dependency) (domain.FailedResolve, bool) {
	if c.disabled.Load() {
		return domain.FailedResolve{}, false
	}

	var (
		hit   domain.FailedResolve
		found bool
	)
	err := c.withSession(func(s ports.Session) error {
		key := Key(dep)
		data, ok, err := s.Get(key)
		if err != nil || !ok {
			return err
		}

		var r record
		if err := json.Unmarshal(data, &r); err != nil {
			c.logger.Debug(fmt.Sprintf("dropping unreadable cache entry for %s", dep))
			return s.Delete(key)
		}
		if c.now().Sub(r.Timestamp) >= c.maxAge {
			return s.Delete(key)
		}

		hit, found = r.failedResolve(), true
		return nil
	})
	if err != nil {
		c.disable(err)
		return domain.FailedResolve{}, false
	}
	return hit, found
}

// Put records a failure for dep, replacing any earlier entry.
func (c *InvalidResolves) Put(dep domain.Dependency, cause string) {
	if c.disabled.Load() {
		return
	}

	data, err := json.Marshal(newRecord(dep, cause, c.now()))
	if err != nil {
		c.disable(zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error()))
		return
	}

	err = c.withSession(func(s ports.Session) error {
		return s.Put(Key(dep), data)
	})
	if err != nil {
		c.disable(err)
	}
}

// Disabled reports whether a store failure turned the cache off.
func (c *InvalidResolves) Disabled() bool {
	return c.disabled.Load()
}

func (c *InvalidResolves) withSession(fn func(ports.Session) error) (err error) {
	s, err := c.store.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}

func (c *InvalidResolves) disable(err error) {
	c.disabled.Store(true)
	c.warnOnce.Do(func() {
		c.logger.Warn("invalid resolves cache disabled")
		c.logger.Error(err)
	})
}

// Noop is a cache that never remembers anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(domain.Dependency) (domain.FailedResolve, bool) {
	return domain.FailedResolve{}, false
}

// Put discards the failure.
func (Noop) Put(domain.Dependency, string) {}
