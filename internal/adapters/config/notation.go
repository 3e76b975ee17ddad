package config

import (
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Notation is a coordinate written either as a "group:name:version" string or as a map
// of coordinate fields.
type Notation struct {
	Text   string
	Fields map[string]string
}

// UnmarshalYAML accepts a scalar or a mapping.
func (n *Notation) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.Text = value.Value
		return nil
	case yaml.MappingNode:
		return value.Decode(&n.Fields)
	default:
		err := zerr.With(domain.ErrInvalidNotation, "line", value.Line)
		return zerr.With(err, "reason", "expected a string or a map")
	}
}

func (n Notation) isMap() bool {
	return n.Fields != nil
}

// Module parses the notation as a module identifier.
func (n Notation) Module() (domain.ModuleIdentifier, error) {
	if n.isMap() {
		return domain.ModuleFromMap(n.Fields)
	}
	return domain.ParseModuleNotation(n.Text)
}

// Dependency parses the notation as a dependency.
func (n Notation) Dependency() (domain.Dependency, error) {
	if n.isMap() {
		return domain.DependencyFromMap(n.Fields)
	}
	return domain.ParseDependencyNotation(n.Text)
}
