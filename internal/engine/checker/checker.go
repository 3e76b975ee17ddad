// Package checker runs the update finder chain over the declared dependencies.
package checker

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/engine/finder"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Checker finds the updates of a list of dependencies.
type Checker struct {
	find        finder.Func
	parallelism int
}

// New creates a Checker. A parallelism below one means the number of CPUs.
func New(find finder.Func, parallelism int) *Checker {
	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}
	return &Checker{find: find, parallelism: parallelism}
}

// Check returns one Update per dependency, in input order. Candidates are de-duplicated
// and sorted ascending by version.
func (c *Checker) Check(ctx context.Context, deps []domain.Dependency) ([]domain.Update, error) {
	if len(deps) == 0 {
		return nil, nil
	}

	updates := make([]domain.Update, len(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)

	for i, dep := range deps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			updates[i] = domain.Update{
				Dependency: dep,
				Candidates: Sort(Dedupe(c.find(gctx, dep))),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCheckFailed.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCheckFailed.Error())
	}
	return updates, nil
}

// Dedupe removes repeated resolutions, keeping the first occurrence. A failure and a
// success of the same coordinate are distinct.
func Dedupe(results []domain.Resolution) []domain.Resolution {
	seen := make(map[string]struct{}, len(results))
	out := make([]domain.Resolution, 0, len(results))
	for _, r := range results {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Sort orders resolutions ascending by version. Among equal versions successes come
// first, then the order is by coordinate.
func Sort(results []domain.Resolution) []domain.Resolution {
	slices.SortStableFunc(results, func(a, b domain.Resolution) int {
		if c := a.Dependency().Version.Compare(b.Dependency().Version); c != 0 {
			return c
		}
		if a.IsFailed() != b.IsFailed() {
			if a.IsFailed() {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Key(), b.Key())
	})
	return results
}
