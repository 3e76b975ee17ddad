package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// IgnoreLevel selects which updates of a module an ignore rule suppresses.
type IgnoreLevel int

const (
	// IgnoreAll suppresses every update of the module.
	IgnoreAll IgnoreLevel = iota
	// IgnoreMajor suppresses updates crossing a major version boundary.
	IgnoreMajor
	// IgnoreMinor additionally suppresses updates crossing a minor version boundary.
	IgnoreMinor
	// IgnoreMicro additionally suppresses updates crossing a micro version boundary.
	IgnoreMicro
)

// ParseIgnoreLevel parses "all", "major", "minor" or "micro". The empty string is "all".
func ParseIgnoreLevel(s string) (IgnoreLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return IgnoreAll, nil
	case "major":
		return IgnoreMajor, nil
	case "minor":
		return IgnoreMinor, nil
	case "micro":
		return IgnoreMicro, nil
	default:
		return 0, zerr.With(ErrInvalidIgnoreLevel, "level", s)
	}
}

// Precision returns the finest precision whose wildcard probes the level suppresses.
// It is meaningless for IgnoreAll.
func (l IgnoreLevel) Precision() Precision {
	return Precision(l - 1)
}

// String returns the configuration name of the level.
func (l IgnoreLevel) String() string {
	switch l {
	case IgnoreAll:
		return "all"
	case IgnoreMajor:
		return "major"
	case IgnoreMinor:
		return "minor"
	case IgnoreMicro:
		return "micro"
	default:
		return "unknown"
	}
}

// ModuleIgnore suppresses updates of a module up to a level.
type ModuleIgnore struct {
	Module ModuleIdentifier
	Level  IgnoreLevel
}

// DependencyIgnore suppresses candidates of a dependency whose version lies in the
// range given by the dependency's version.
type DependencyIgnore struct {
	Dependency Dependency
}

// RenameRule migrates a module to another coordinate before looking for updates.
// A zero To.Version means the rule does not set a version.
type RenameRule struct {
	From ModuleIdentifier
	To   Dependency
}

// Apply rewrites dep according to the rule. When the module changes and the rule does
// not set a version, the version becomes the universal wildcard.
func (r RenameRule) Apply(dep Dependency) Dependency {
	out := dep
	out.Group = r.To.Group
	out.Name = r.To.Name
	if r.To.Classifier != "" {
		out.Classifier = r.To.Classifier
	}
	if HasExplicitType(r.To) {
		out.Type = r.To.Type
	}

	switch {
	case HasExplicitVersion(r.To):
		out.Version = r.To.Version
	case out.Module() != dep.Module():
		out.Version = AnyVersion()
	}
	return out
}

// PolicySpec is the declarative form of an update policy as read from configuration.
type PolicySpec struct {
	ModuleIgnores     []ModuleIgnore
	DependencyIgnores []DependencyIgnore
	Renames           []RenameRule
}

// IsEmpty reports whether the spec declares no rule.
func (p PolicySpec) IsEmpty() bool {
	return len(p.ModuleIgnores) == 0 && len(p.DependencyIgnores) == 0 && len(p.Renames) == 0
}

// Merge returns a spec applying the rules of p followed by those of o.
func (p PolicySpec) Merge(o PolicySpec) PolicySpec {
	return PolicySpec{
		ModuleIgnores:     append(append([]ModuleIgnore(nil), p.ModuleIgnores...), o.ModuleIgnores...),
		DependencyIgnores: append(append([]DependencyIgnore(nil), p.DependencyIgnores...), o.DependencyIgnores...),
		Renames:           append(append([]RenameRule(nil), p.Renames...), o.Renames...),
	}
}
