package repository

import (
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
)

var _ ports.ResolverFactory = (*Factory)(nil)

// Factory builds resolvers from repository settings. The catalogue, when set, is
// consulted before the Maven repositories.
type Factory struct{}

// NewFactory returns a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewResolver implements ports.ResolverFactory.
func (f *Factory) NewResolver(settings domain.RepositorySettings) (ports.DependencyResolver, error) {
	var chain Chain
	if settings.CatalogPath != "" {
		catalog, err := LoadCatalog(settings.CatalogPath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, catalog)
	}
	for _, url := range settings.URLs {
		chain = append(chain, NewMaven(url))
	}
	if len(chain) == 0 {
		return nil, domain.ErrNoRepositories
	}
	return chain, nil
}
