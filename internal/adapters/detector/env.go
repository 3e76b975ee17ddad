// Package detector decides whether reports are colored.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/drift/internal/ui/output"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode of reports.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeColor renders with colors.
	ModeColor
	// ModePlain renders without escape sequences.
	ModePlain
)

// DetectEnvironment returns the recommended output mode for stdout.
// It checks if stdout is a TTY and if CI or NO_COLOR are set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)
}

func detect(isTTY bool, getenv func(string) string) OutputMode {
	ci := getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI || getenv("NO_COLOR") != "" {
		return ModePlain
	}
	return ModeColor
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "always", "never", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "always":
		return ModeColor
	case "never":
		return ModePlain
	default:
		return autoDetected
	}
}

// Profile returns the color profile for mode.
func Profile(mode OutputMode) termenv.Profile {
	switch mode {
	case ModePlain:
		return termenv.Ascii
	case ModeColor:
		if p := output.ColorProfile(); p != termenv.Ascii {
			return p
		}
		return termenv.ANSI
	default:
		return Profile(DetectEnvironment())
	}
}
