package detector_test

import (
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/drift/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		env      map[string]string
		expected detector.OutputMode
	}{
		{name: "terminal", isTTY: true, expected: detector.ModeColor},
		{name: "pipe", isTTY: false, expected: detector.ModePlain},
		{name: "CI=true forces plain", isTTY: true, env: map[string]string{"CI": "true"}, expected: detector.ModePlain},
		{name: "CI=1 forces plain", isTTY: true, env: map[string]string{"CI": "1"}, expected: detector.ModePlain},
		{name: "CI=false keeps color", isTTY: true, env: map[string]string{"CI": "false"}, expected: detector.ModeColor},
		{name: "NO_COLOR", isTTY: true, env: map[string]string{"NO_COLOR": "1"}, expected: detector.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.expected, detector.DetectExported(tt.isTTY, getenv))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModePlain, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{name: "auto respects detection", autoDetected: detector.ModeColor, userFlag: "auto", expected: detector.ModeColor},
		{name: "empty respects detection", autoDetected: detector.ModePlain, userFlag: "", expected: detector.ModePlain},
		{name: "always overrides", autoDetected: detector.ModePlain, userFlag: "always", expected: detector.ModeColor},
		{name: "never overrides", autoDetected: detector.ModeColor, userFlag: "never", expected: detector.ModePlain},
		{name: "unknown falls back", autoDetected: detector.ModeColor, userFlag: "sometimes", expected: detector.ModeColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.ResolveMode(tt.autoDetected, tt.userFlag))
		})
	}
}

func TestProfile(t *testing.T) {
	assert.Equal(t, termenv.Ascii, detector.Profile(detector.ModePlain))
	assert.NotEqual(t, termenv.Ascii, detector.Profile(detector.ModeColor))

	t.Setenv("CI", "true")
	assert.Equal(t, termenv.Ascii, detector.Profile(detector.ModeAuto))
}
