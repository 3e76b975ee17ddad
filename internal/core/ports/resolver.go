package ports

import (
	"context"

	"go.trai.ch/drift/internal/core/domain"
)

// DependencyResolver resolves a dependency, whose version may be a range, against the
// configured repositories.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type DependencyResolver interface {
	// Resolve returns the resolutions for dep. Results may include modules other than the
	// requested one. An error means the dependency could not be resolved at all.
	Resolve(ctx context.Context, dep domain.Dependency) ([]domain.Resolution, error)
}

// ResolverFactory builds a resolver for a set of repository settings.
type ResolverFactory interface {
	NewResolver(settings domain.RepositorySettings) (DependencyResolver, error)
}
