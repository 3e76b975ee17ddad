package repository

import (
	"context"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
)

var _ ports.DependencyResolver = Chain(nil)

// Chain tries each resolver in order and returns the first successful result.
// When every resolver fails the last error is returned.
type Chain []ports.DependencyResolver

// Resolve implements ports.DependencyResolver.
func (c Chain) Resolve(ctx context.Context, dep domain.Dependency) ([]domain.Resolution, error) {
	if len(c) == 0 {
		return nil, domain.ErrNoRepositories
	}

	var lastErr error
	for _, r := range c {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results, err := r.Resolve(ctx, dep)
		if err == nil {
			return results, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
