// Package config provides the configuration loader for drift.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Mode represents the configuration mode of drift.
type Mode string

const (
	// ModeWorkspace indicates that drift has a workfile.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates that drift has only one driftfile.
	ModeStandalone Mode = "standalone"
)

var validProjectNameRegex = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")

// Load finds the configuration above cwd and returns the workspace it describes.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadDriftfile(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(domain.ErrConfigNotFound, "mode", mode)
	}
}

// DiscoverRoot returns the directory holding the configuration that applies to cwd.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	configPath, _, err := l.findConfiguration(cwd)
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// findConfiguration walks up from cwd. A workfile anywhere above wins over the nearest
// driftfile.
func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := filepath.Clean(cwd)
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := os.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			driftfilePath := filepath.Join(currentDir, domain.DriftFileName)
			if _, err := os.Stat(driftfilePath); err == nil {
				standaloneCandidate = driftfilePath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadDriftfile(configPath string) (*domain.Workspace, error) {
	var driftfile Driftfile
	if err := readAndUnmarshalYAML(configPath, &driftfile); err != nil {
		return nil, err
	}

	root := filepath.Dir(configPath)
	ws, err := buildWorkspace(root, driftfile.Settings)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	name := driftfile.Project
	if name == "" {
		name = filepath.Base(root)
	}
	project, err := buildProject(name, root, &driftfile, domain.PolicySpec{})
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}
	ws.Projects = []domain.Project{project}

	return ws, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.Workspace, error) {
	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	root := filepath.Dir(configPath)
	ws, err := buildWorkspace(root, workfile.Settings)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	global, err := buildPolicy(workfile.Policy)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	projectPaths, err := resolveProjectPaths(root, workfile.Projects)
	if err != nil {
		return nil, err
	}

	projectNames := make(map[string]string)
	for _, projectPath := range projectPaths {
		project, ok, err := l.loadProject(root, projectPath, global)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		relPath, _ := filepath.Rel(root, projectPath)
		if existingPath, exists := projectNames[project.Name]; exists {
			err := zerr.With(domain.ErrDuplicateProjectName, "project_name", project.Name)
			err = zerr.With(err, "first_occurrence", existingPath)
			return nil, zerr.With(err, "duplicate_at", relPath)
		}
		projectNames[project.Name] = relPath

		ws.Projects = append(ws.Projects, project)
	}

	return ws, nil
}

func (l *Loader) loadProject(root, projectPath string, global domain.PolicySpec) (domain.Project, bool, error) {
	relPath, _ := filepath.Rel(root, projectPath)

	info, err := os.Stat(projectPath)
	if err != nil {
		return domain.Project{}, false, err
	}
	if !info.IsDir() {
		return domain.Project{}, false, nil
	}

	driftfilePath := filepath.Join(projectPath, domain.DriftFileName)
	if _, statErr := os.Stat(driftfilePath); os.IsNotExist(statErr) {
		l.Logger.Warn(fmt.Sprintf("%s missing in project %s, skipping", domain.DriftFileName, relPath))
		return domain.Project{}, false, nil
	}

	var driftfile Driftfile
	if err := readAndUnmarshalYAML(driftfilePath, &driftfile); err != nil {
		return domain.Project{}, false, zerr.With(err, "directory", relPath)
	}

	if !driftfile.Settings.isEmpty() {
		l.Logger.Warn(fmt.Sprintf("repository, cache and parallelism settings in %s are ignored in workspace mode", relPath))
	}

	name := driftfile.Project
	if name == "" {
		name = filepath.Base(projectPath)
	}
	project, err := buildProject(name, projectPath, &driftfile, global)
	if err != nil {
		return domain.Project{}, false, zerr.With(err, "directory", relPath)
	}
	return project, true, nil
}

func resolveProjectPaths(root string, patterns []string) ([]string, error) {
	projectPaths := make(map[string]struct{})
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, zerr.Wrap(err, "glob pattern failed: "+pattern)
		}
		for _, match := range matches {
			projectPaths[match] = struct{}{}
		}
	}

	sortedPaths := make([]string, 0, len(projectPaths))
	for p := range projectPaths {
		sortedPaths = append(sortedPaths, p)
	}
	slices.Sort(sortedPaths)
	return sortedPaths, nil
}

func buildWorkspace(root string, s Settings) (*domain.Workspace, error) {
	if s.Parallelism < 0 {
		return nil, zerr.With(domain.ErrInvalidParallelism, "parallelism", s.Parallelism)
	}

	ws := &domain.Workspace{
		Root: root,
		Repositories: domain.RepositorySettings{
			URLs: slices.Clone(s.Repositories),
		},
		Cache: domain.CacheSettings{
			Path:   filepath.Join(root, domain.DefaultCachePath()),
			MaxAge: domain.DefaultCacheMaxAge,
		},
		Parallelism: s.Parallelism,
	}
	if s.Catalog != "" {
		ws.Repositories.CatalogPath = resolvePath(root, s.Catalog)
	}

	if s.Cache != nil {
		ws.Cache.Disabled = s.Cache.Disabled
		if s.Cache.Path != "" {
			ws.Cache.Path = resolvePath(root, s.Cache.Path)
		}
		if s.Cache.MaxAge != "" {
			maxAge, err := time.ParseDuration(s.Cache.MaxAge)
			if err != nil || maxAge <= 0 {
				return nil, zerr.With(domain.ErrInvalidDuration, "maxAge", s.Cache.MaxAge)
			}
			ws.Cache.MaxAge = maxAge
		}
	}

	return ws, nil
}

func buildProject(name, dir string, driftfile *Driftfile, global domain.PolicySpec) (domain.Project, error) {
	if !validProjectNameRegex.MatchString(name) {
		return domain.Project{}, zerr.With(domain.ErrInvalidProjectName, "project_name", name)
	}

	project := domain.Project{Name: name, Dir: dir}

	for _, n := range driftfile.Dependencies {
		dep, err := n.Dependency()
		if err != nil {
			return domain.Project{}, err
		}
		project.Dependencies = append(project.Dependencies, dep)
	}

	for _, p := range driftfile.Plugins {
		if p.ID == "" {
			return domain.Project{}, zerr.With(domain.ErrInvalidPlugin, "version", p.Version)
		}
		project.Plugins = append(project.Plugins, domain.PluginDependency(p.ID, domain.ParseVersion(p.Version)))
	}

	local, err := buildPolicy(driftfile.Policy)
	if err != nil {
		return domain.Project{}, err
	}
	project.Policy = global.Merge(local)

	return project, nil
}

func buildPolicy(dto PolicyDTO) (domain.PolicySpec, error) {
	var spec domain.PolicySpec

	for i, rule := range dto.Ignore {
		switch {
		case rule.Module != nil && rule.Dependency == nil:
			module, err := rule.Module.Module()
			if err != nil {
				return domain.PolicySpec{}, err
			}
			level, err := domain.ParseIgnoreLevel(rule.Level)
			if err != nil {
				return domain.PolicySpec{}, zerr.With(err, "module", module.String())
			}
			spec.ModuleIgnores = append(spec.ModuleIgnores, domain.ModuleIgnore{Module: module, Level: level})
		case rule.Dependency != nil && rule.Module == nil && rule.Level == "":
			dep, err := rule.Dependency.Dependency()
			if err != nil {
				return domain.PolicySpec{}, err
			}
			spec.DependencyIgnores = append(spec.DependencyIgnores, domain.DependencyIgnore{Dependency: dep})
		default:
			err := zerr.With(domain.ErrInvalidRule, "rule", fmt.Sprintf("ignore[%d]", i))
			return domain.PolicySpec{}, zerr.With(err, "reason", "expected either module with optional level or dependency")
		}
	}

	for _, rule := range dto.Rename {
		from, err := rule.From.Module()
		if err != nil {
			return domain.PolicySpec{}, err
		}
		to, err := rule.To.Dependency()
		if err != nil {
			return domain.PolicySpec{}, err
		}
		spec.Renames = append(spec.Renames, domain.RenameRule{From: from, To: to})
	}

	return spec, nil
}

func resolvePath(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(root, p))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "file", configPath)
	}

	return nil
}
