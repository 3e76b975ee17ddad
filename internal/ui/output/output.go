// Package output creates termenv outputs with a consistent color profile.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorDisabled reports whether NO_COLOR is set.
func ColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ColorProfile returns the profile detected from the environment, or Ascii when
// NO_COLOR is set.
func ColorProfile() termenv.Profile {
	if ColorDisabled() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI returns the basic ANSI profile used for non-interactive output, or
// Ascii when NO_COLOR is set.
func ColorProfileANSI() termenv.Profile {
	if ColorDisabled() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New creates a termenv.Output using ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile creates a termenv.Output with the profile returned by profileFn.
// A nil writer means stderr.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// Plain returns an output that never emits escape sequences.
func Plain(w io.Writer) *termenv.Output {
	return NewWithProfile(w, func() termenv.Profile { return termenv.Ascii })
}
