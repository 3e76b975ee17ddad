package config

// Workfile represents the structure of the drift.work.yaml configuration file.
type Workfile struct {
	Settings `yaml:",inline"`
	Policy   PolicyDTO `yaml:"policy"`
	Projects []string  `yaml:"projects"`
}

// Driftfile represents the structure of the drift.yaml configuration file.
type Driftfile struct {
	Settings     `yaml:",inline"`
	Project      string      `yaml:"project"`
	Dependencies []Notation  `yaml:"dependencies"`
	Plugins      []PluginDTO `yaml:"plugins"`
	Policy       PolicyDTO   `yaml:"policy"`
}

// Settings are the options shared by the whole run. In workspace mode they are read
// from the workfile only.
type Settings struct {
	Repositories []string  `yaml:"repositories"`
	Catalog      string    `yaml:"catalog"`
	Cache        *CacheDTO `yaml:"cache"`
	Parallelism  int       `yaml:"parallelism"`
}

func (s Settings) isEmpty() bool {
	return len(s.Repositories) == 0 && s.Catalog == "" && s.Cache == nil && s.Parallelism == 0
}

// CacheDTO configures the invalid resolves cache.
type CacheDTO struct {
	Path     string `yaml:"path"`
	MaxAge   string `yaml:"maxAge"`
	Disabled bool   `yaml:"disabled"`
}

// PluginDTO declares a build plugin by id.
type PluginDTO struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

// PolicyDTO holds the update policy rules.
type PolicyDTO struct {
	Ignore []IgnoreDTO `yaml:"ignore"`
	Rename []RenameDTO `yaml:"rename"`
}

// IgnoreDTO ignores updates of a module up to a level, or of specific dependency versions.
type IgnoreDTO struct {
	Module     *Notation `yaml:"module"`
	Level      string    `yaml:"level"`
	Dependency *Notation `yaml:"dependency"`
}

// RenameDTO redirects lookups of a module to another coordinate.
type RenameDTO struct {
	From Notation `yaml:"from"`
	To   Notation `yaml:"to"`
}
