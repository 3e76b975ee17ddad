// Package repository implements the DependencyResolver port over published version
// listings: an offline YAML catalogue and Maven repositories.
package repository

import (
	"slices"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/zerr"
)

// Select returns the highest published version matched by probe. An empty probe
// matches every version.
func Select(probe domain.Version, published []domain.Version) (domain.Version, bool) {
	if probe.IsEmpty() {
		probe = domain.AnyVersion()
	}

	var (
		best  domain.Version
		found bool
	)
	for _, v := range published {
		if !probe.Matches(v) {
			continue
		}
		if !found || best.Less(v) {
			best, found = v, true
		}
	}
	return best, found
}

// resolveFrom resolves dep against the published versions of its module.
func resolveFrom(dep domain.Dependency, published []domain.Version) ([]domain.Resolution, error) {
	v, ok := Select(dep.Version, published)
	if !ok {
		err := zerr.With(domain.ErrNoMatchingVersion, "module", dep.Module().String())
		return nil, zerr.With(err, "version", dep.Version.String())
	}
	return []domain.Resolution{domain.Resolved(dep.WithVersion(v))}, nil
}

func parseVersions(raw []string) []domain.Version {
	out := make([]domain.Version, 0, len(raw))
	for _, s := range raw {
		v := domain.ParseVersion(s)
		if v.IsEmpty() {
			continue
		}
		out = append(out, v)
	}
	slices.SortStableFunc(out, func(a, b domain.Version) int { return a.Compare(b) })
	return out
}
