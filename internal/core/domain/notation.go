package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

var (
	moduleKeys     = []string{"group", "name"}
	dependencyKeys = []string{"group", "name", "version", "classifier", "type"}
)

// ParseModuleNotation parses "group:name".
func ParseModuleNotation(notation string) (ModuleIdentifier, error) {
	fields := strings.Split(strings.TrimSpace(notation), ":")
	if len(fields) != 2 {
		return ModuleIdentifier{}, invalidNotation(notation, "expected group:name")
	}
	m := ModuleIdentifier{Group: fields[0], Name: fields[1]}
	if m.Group == "" || m.Name == "" {
		return ModuleIdentifier{}, invalidNotation(notation, "group and name must not be empty")
	}
	return m, nil
}

// ParseDependencyNotation parses "group:name[:version[:classifier]][@type]". The type
// stays empty unless declared.
func ParseDependencyNotation(notation string) (Dependency, error) {
	text := strings.TrimSpace(notation)
	var typ string
	if at := strings.LastIndexByte(text, '@'); at >= 0 {
		typ = text[at+1:]
		text = text[:at]
		if typ == "" {
			return Dependency{}, invalidNotation(notation, "type must not be empty")
		}
	}

	fields := strings.Split(text, ":")
	if len(fields) < 2 || len(fields) > 4 {
		return Dependency{}, invalidNotation(notation, "expected group:name[:version[:classifier]][@type]")
	}
	if fields[0] == "" || fields[1] == "" {
		return Dependency{}, invalidNotation(notation, "group and name must not be empty")
	}

	dep := Dependency{Group: fields[0], Name: fields[1], Type: typ}
	if len(fields) > 2 {
		dep.Version = ParseVersion(fields[2])
	}
	if len(fields) > 3 {
		dep.Classifier = fields[3]
	}
	return dep, nil
}

// ModuleFromMap builds a module from a map with the keys "group" and "name".
func ModuleFromMap(m map[string]string) (ModuleIdentifier, error) {
	if err := checkKeys(m, moduleKeys, moduleKeys); err != nil {
		return ModuleIdentifier{}, err
	}
	return ModuleIdentifier{Group: m["group"], Name: m["name"]}, nil
}

// DependencyFromMap builds a dependency from a map with the keys "group", "name" and
// optionally "version", "classifier" and "type".
func DependencyFromMap(m map[string]string) (Dependency, error) {
	if err := checkKeys(m, moduleKeys, dependencyKeys); err != nil {
		return Dependency{}, err
	}
	dep := Dependency{
		Group:      m["group"],
		Name:       m["name"],
		Version:    ParseVersion(m["version"]),
		Classifier: m["classifier"],
		Type:       m["type"],
	}
	return dep, nil
}

// HasExplicitVersion reports whether the map or notation form declared a version.
func HasExplicitVersion(dep Dependency) bool {
	return !dep.Version.IsEmpty()
}

// HasExplicitType reports whether the map or notation form declared a type.
func HasExplicitType(dep Dependency) bool {
	return dep.Type != ""
}

func checkKeys(m map[string]string, required, allowed []string) error {
	for _, key := range required {
		if m[key] == "" {
			return zerr.With(zerr.With(ErrInvalidNotation, "notation", formatMap(m)), "missing", key)
		}
	}
	for key := range m {
		if !slices.Contains(allowed, key) {
			return zerr.With(zerr.With(ErrInvalidNotation, "notation", formatMap(m)), "unknown", key)
		}
	}
	return nil
}

func formatMap(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func invalidNotation(notation, reason string) error {
	return zerr.With(zerr.With(ErrInvalidNotation, "notation", notation), "reason", reason)
}
