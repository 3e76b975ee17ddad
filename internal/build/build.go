// Package build holds build-time information.
package build

// Build information. Overwritten by linker flags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
