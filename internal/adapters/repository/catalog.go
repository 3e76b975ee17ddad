package repository

import (
	"context"
	"os"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.DependencyResolver = (*Catalog)(nil)

// Catalog resolves against a fixed listing of published versions per module.
type Catalog struct {
	modules map[domain.ModuleIdentifier][]domain.Version
}

// catalogFile is the on-disk form: module notation to published versions.
//
//	modules:
//	  org.example:plugin: ["0.1", "0.2"]
type catalogFile struct {
	Modules map[string][]string `yaml:"modules"`
}

// NewCatalog builds a catalogue from module notations and their published versions.
func NewCatalog(modules map[string][]string) (*Catalog, error) {
	c := &Catalog{modules: make(map[domain.ModuleIdentifier][]domain.Version, len(modules))}
	for notation, versions := range modules {
		m, err := domain.ParseModuleNotation(notation)
		if err != nil {
			return nil, err
		}
		c.modules[m] = append(c.modules[m], parseVersions(versions)...)
	}
	return c, nil
}

// LoadCatalog reads a catalogue file.
func LoadCatalog(path string) (*Catalog, error) {
	//nolint:gosec // Path comes from the workspace configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryParseFailed.Error()), "path", path)
	}

	c, err := NewCatalog(file.Modules)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return c, nil
}

// Resolve returns the highest catalogued version matched by dep.
func (c *Catalog) Resolve(ctx context.Context, dep domain.Dependency) ([]domain.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	published, ok := c.modules[dep.Module()]
	if !ok {
		return nil, zerr.With(domain.ErrModuleNotFound, "module", dep.Module().String())
	}
	return resolveFrom(dep, published)
}
