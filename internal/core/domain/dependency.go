package domain

import "strings"

// DefaultType is the artifact type assumed when none is declared.
const DefaultType = "jar"

// ModuleIdentifier identifies a module by group and name.
type ModuleIdentifier struct {
	Group string
	Name  string
}

// String renders the module as "group:name".
func (m ModuleIdentifier) String() string {
	return m.Group + ":" + m.Name
}

// Dependency is a declared or resolved dependency coordinate.
// Its identity is the full group, name, version, classifier and type tuple.
type Dependency struct {
	Group      string
	Name       string
	Version    Version
	Classifier string
	Type       string
}

// NewDependency returns a dependency of the default type.
func NewDependency(group, name string, version Version) Dependency {
	return Dependency{Group: group, Name: name, Version: version, Type: DefaultType}
}

// Module returns the module the dependency belongs to.
func (d Dependency) Module() ModuleIdentifier {
	return ModuleIdentifier{Group: d.Group, Name: d.Name}
}

// WithVersion returns a copy of d with the given version.
func (d Dependency) WithVersion(v Version) Dependency {
	out := d
	out.Version = v
	return out
}

// ArtifactType returns the type, falling back to DefaultType.
func (d Dependency) ArtifactType() string {
	if d.Type == "" {
		return DefaultType
	}
	return d.Type
}

// SameArtifact reports whether both dependencies share module, classifier and type.
func (d Dependency) SameArtifact(o Dependency) bool {
	return d.Module() == o.Module() && d.Classifier == o.Classifier && d.ArtifactType() == o.ArtifactType()
}

// Equal reports whether both dependencies have the same identity.
func (d Dependency) Equal(o Dependency) bool {
	return d.SameArtifact(o) && d.Version.Equal(o.Version)
}

// Key returns a canonical string for the full coordinate. Qualifiers are lowercased so
// that equal dependencies share a key.
func (d Dependency) Key() string {
	var b strings.Builder
	b.WriteString(d.Group)
	b.WriteByte(':')
	b.WriteString(d.Name)
	b.WriteByte(':')
	b.WriteString(strings.ToLower(d.Version.String()))
	b.WriteByte(':')
	b.WriteString(d.Classifier)
	b.WriteByte('@')
	b.WriteString(d.ArtifactType())
	return b.String()
}

// String renders the dependency in "group:name:version[:classifier][@type]" notation.
// The type is omitted when it is the default.
func (d Dependency) String() string {
	var b strings.Builder
	b.WriteString(d.Group)
	b.WriteByte(':')
	b.WriteString(d.Name)
	if !d.Version.IsEmpty() || d.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(d.Version.String())
	}
	if d.Classifier != "" {
		b.WriteByte(':')
		b.WriteString(d.Classifier)
	}
	if t := d.ArtifactType(); t != DefaultType {
		b.WriteByte('@')
		b.WriteString(t)
	}
	return b.String()
}
