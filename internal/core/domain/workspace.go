package domain

import "time"

// Workspace is the loaded configuration: shared settings and the projects to check.
type Workspace struct {
	// Root is the directory holding the configuration file.
	Root         string
	Repositories RepositorySettings
	Cache        CacheSettings
	// Parallelism bounds the number of dependencies checked concurrently. Zero means
	// the number of CPUs.
	Parallelism int
	Projects    []Project
}

// Project is a set of declared dependencies with the policy that applies to them.
// In a workspace the policy already includes the workspace-wide rules.
type Project struct {
	Name         string
	Dir          string
	Dependencies []Dependency
	Plugins      []Dependency
	Policy       PolicySpec
}

// RepositorySettings describes where published versions are looked up.
type RepositorySettings struct {
	// URLs are Maven repository base URLs, tried in order.
	URLs []string
	// CatalogPath points at an offline YAML catalog of published versions.
	CatalogPath string
}

// CacheSettings configures the invalid resolves cache.
type CacheSettings struct {
	Path     string
	MaxAge   time.Duration
	Disabled bool
}

// PluginMarkerSuffix is appended to a plugin id to form the name of its marker artifact.
const PluginMarkerSuffix = ".gradle.plugin"

// PluginDependency returns the marker coordinate of a build plugin.
func PluginDependency(id string, version Version) Dependency {
	return NewDependency(id, id+PluginMarkerSuffix, version)
}

// IsPluginMarker reports whether dep is the marker coordinate of a plugin.
func IsPluginMarker(dep Dependency) bool {
	return dep.Name == dep.Group+PluginMarkerSuffix
}

// Report is the rendered outcome of an update check for one project.
type Report struct {
	Project  string
	Outdated []string
	UpToDate int
	Failed   []string
}
