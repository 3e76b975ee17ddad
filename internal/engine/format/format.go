// Package format renders updates as single lines.
package format

import (
	"strings"

	"go.trai.ch/drift/internal/core/domain"
)

const arrow = " -> "

// Update renders an update from its declared dependency to its newer candidates.
func Update(u domain.Update) string {
	newer := u.Newer()
	deps := make([]domain.Dependency, 0, len(newer))
	for _, r := range newer {
		deps = append(deps, r.Dependency())
	}
	return Plugin(u.Dependency, deps)
}

// Diff renders the coordinates once up to the deepest level shared by all of them and
// lists the diverging tails in brackets, e.g. "g:n:[1.0 -> 1.1]". Classifier and type
// are part of the tails only when they differ between the coordinates.
func Diff(original domain.Dependency, updates []domain.Dependency) string {
	all := make([]domain.Dependency, 0, len(updates)+1)
	all = append(all, original)
	all = append(all, updates...)

	common := 0
	for common < 3 && same(all, func(d domain.Dependency) string { return levels(d)[common] }) {
		common++
	}
	foldClassifier := !same(all, func(d domain.Dependency) string { return d.Classifier })
	foldType := !same(all, domain.Dependency.ArtifactType)

	if common == 3 {
		return original.String()
	}

	var b strings.Builder

	for _, level := range levels(original)[:common] {
		b.WriteString(level)
		b.WriteByte(':')
	}

	b.WriteByte('[')
	for i, d := range all {
		if i > 0 {
			b.WriteString(arrow)
		}
		b.WriteString(strings.Join(levels(d)[common:], ":"))
		if foldClassifier && d.Classifier != "" {
			b.WriteByte(':')
			b.WriteString(d.Classifier)
		}
		if foldType && d.ArtifactType() != domain.DefaultType {
			b.WriteByte('@')
			b.WriteString(d.ArtifactType())
		}
	}
	b.WriteByte(']')

	if !foldClassifier && original.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(original.Classifier)
	}
	if !foldType && original.ArtifactType() != domain.DefaultType {
		b.WriteByte('@')
		b.WriteString(original.ArtifactType())
	}
	return b.String()
}

// Plugin renders plugin marker coordinates as "id '<id>' version '<versions>'" and
// falls back to Diff for anything else.
func Plugin(original domain.Dependency, updates []domain.Dependency) string {
	if !domain.IsPluginMarker(original) {
		return Diff(original, updates)
	}

	versions := []string{original.Version.String()}
	for _, d := range updates {
		if d.Group != original.Group || !domain.IsPluginMarker(d) {
			return Diff(original, updates)
		}
		versions = append(versions, d.Version.String())
	}
	return "id '" + original.Group + "' version '" + strings.Join(versions, arrow) + "'"
}

func levels(d domain.Dependency) []string {
	return []string{d.Group, d.Name, d.Version.String()}
}

func same(deps []domain.Dependency, key func(domain.Dependency) string) bool {
	for _, d := range deps[1:] {
		if key(d) != key(deps[0]) {
			return false
		}
	}
	return true
}
