// Package finder implements the update finder chain: a base finder resolving version
// probes and the decorators that rename, cache and filter its results.
package finder

import (
	"context"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/drift/internal/engine/provider"
)

// Func finds the candidate resolutions for a dependency.
type Func func(ctx context.Context, dep domain.Dependency) []domain.Resolution

// Decorator wraps a Func.
type Decorator func(Func) Func

// Chain folds the decorators around base. The first decorator wraps base directly.
func Chain(base Func, decorators ...Decorator) Func {
	f := base
	for _, d := range decorators {
		f = d(f)
	}
	return f
}

// FromResolver adapts a resolver to a Func resolving exactly the given coordinate.
// Results for other modules are dropped and a resolver error becomes a single failed
// resolution.
func FromResolver(resolver ports.DependencyResolver) Func {
	return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
		results, err := resolver.Resolve(ctx, dep)
		if err != nil {
			return []domain.Resolution{domain.Failed(dep, err.Error())}
		}

		out := make([]domain.Resolution, 0, len(results))
		for _, r := range results {
			if r.Dependency().Module() == dep.Module() {
				out = append(out, r)
			}
		}
		return out
	}
}

// Base resolves every probe of the dependency with resolve. Failures of probes that
// are allowed to fail are logged and dropped.
func Base(probes provider.Func, resolve Func, logger ports.Logger) Func {
	return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
		var out []domain.Resolution
		for _, probe := range probes(dep) {
			if ctx.Err() != nil {
				return out
			}

			for _, r := range resolve(ctx, dep.WithVersion(probe.Version)) {
				if r.IsFailed() && probe.FailureAllowed {
					logger.Debug("skipping expected failure for " + r.Dependency().String() + ": " + r.Cause())
					continue
				}
				out = append(out, r)
			}
		}
		return out
	}
}

// Cache short-circuits coordinates that are known to fail and records new failures.
func Cache(cache ports.InvalidResolvesCache) Decorator {
	return func(next Func) Func {
		return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
			if hit, ok := cache.Get(dep); ok {
				return []domain.Resolution{domain.Failed(hit.Dependency, hit.Cause)}
			}

			results := next(ctx, dep)
			if ctx.Err() != nil {
				// A cancelled lookup says nothing about the coordinate.
				return results
			}
			for _, r := range results {
				if r.IsFailed() {
					cache.Put(r.Dependency(), r.Cause())
				}
			}
			return results
		}
	}
}

// Rename rewrites dependencies of the rule's module before delegating.
func Rename(rule domain.RenameRule) Decorator {
	return func(next Func) Func {
		return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
			if dep.Module() != rule.From {
				return next(ctx, dep)
			}
			return next(ctx, rule.Apply(dep))
		}
	}
}

// FilterOlder drops resolved candidates of the dependency's own module whose version
// sorts below the dependency's version.
func FilterOlder(next Func) Func {
	return Filter(func(dep domain.Dependency, r domain.Resolution) bool {
		c := r.Dependency()
		return !r.IsFailed() && c.Module() == dep.Module() && c.Version.Compare(dep.Version) < 0
	})(next)
}

// Filter returns a decorator dropping the resolutions for which drop returns true.
func Filter(drop func(dep domain.Dependency, r domain.Resolution) bool) Decorator {
	return func(next Func) Func {
		return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
			results := next(ctx, dep)
			out := results[:0:0]
			for _, r := range results {
				if !drop(dep, r) {
					out = append(out, r)
				}
			}
			return out
		}
	}
}

// Skip returns a decorator that finds nothing for dependencies matched by skip.
func Skip(skip func(dep domain.Dependency) bool) Decorator {
	return func(next Func) Func {
		return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
			if skip(dep) {
				return nil
			}
			return next(ctx, dep)
		}
	}
}

// Traced records a span per dependency.
func Traced(tracer ports.Tracer) Decorator {
	return func(next Func) Func {
		return func(ctx context.Context, dep domain.Dependency) []domain.Resolution {
			ctx, span := tracer.Start(ctx, "find "+dep.Module().String(),
				ports.WithAttribute("dependency", dep.String()))
			defer span.End()

			results := next(ctx, dep)
			span.SetAttribute("candidates", len(results))
			return results
		}
	}
}
