package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drift/internal/core/domain"
)

func TestParseIgnoreLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.IgnoreLevel
	}{
		{"", domain.IgnoreAll},
		{"all", domain.IgnoreAll},
		{"Major", domain.IgnoreMajor},
		{"minor", domain.IgnoreMinor},
		{"micro", domain.IgnoreMicro},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := domain.ParseIgnoreLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}

	_, err := domain.ParseIgnoreLevel("patch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidIgnoreLevel.Error())
}

func TestIgnoreLevel_Precision(t *testing.T) {
	assert.Equal(t, domain.PrecisionMajor, domain.IgnoreMajor.Precision())
	assert.Equal(t, domain.PrecisionMicro, domain.IgnoreMicro.Precision())
}

func TestRenameRule_Apply(t *testing.T) {
	dep := domain.NewDependency("g", "n", domain.ParseVersion("1.2.3"))

	t.Run("module without version", func(t *testing.T) {
		rule := domain.RenameRule{
			From: domain.ModuleIdentifier{Group: "g", Name: "n"},
			To:   domain.Dependency{Group: "g2", Name: "n2", Type: domain.DefaultType},
		}
		assert.Equal(t, "g2:n2:+", rule.Apply(dep).String())
	})

	t.Run("explicit version", func(t *testing.T) {
		rule := domain.RenameRule{
			From: domain.ModuleIdentifier{Group: "g", Name: "n"},
			To:   domain.NewDependency("g2", "n2", domain.ParseVersion("3.0")),
		}
		assert.Equal(t, "g2:n2:3.0", rule.Apply(dep).String())
	})

	t.Run("same module keeps version", func(t *testing.T) {
		rule := domain.RenameRule{
			From: domain.ModuleIdentifier{Group: "g", Name: "n"},
			To:   domain.Dependency{Group: "g", Name: "n", Classifier: "jdk8"},
		}
		assert.Equal(t, "g:n:1.2.3:jdk8", rule.Apply(dep).String())
	})

	t.Run("declared default type", func(t *testing.T) {
		aar := dep
		aar.Type = "aar"

		to, err := domain.ParseDependencyNotation("g:n@jar")
		require.NoError(t, err)
		rule := domain.RenameRule{From: domain.ModuleIdentifier{Group: "g", Name: "n"}, To: to}

		out := rule.Apply(aar)
		assert.Equal(t, "jar", out.ArtifactType())
		assert.Equal(t, "g:n:1.2.3", out.String())
	})

	t.Run("undeclared type keeps artifact type", func(t *testing.T) {
		aar := dep
		aar.Type = "aar"

		to, err := domain.ParseDependencyNotation("g2:n2")
		require.NoError(t, err)
		rule := domain.RenameRule{From: domain.ModuleIdentifier{Group: "g", Name: "n"}, To: to}

		assert.Equal(t, "g2:n2:+@aar", rule.Apply(aar).String())
	})
}

func TestPolicySpec_Merge(t *testing.T) {
	a := domain.PolicySpec{ModuleIgnores: []domain.ModuleIgnore{{Module: domain.ModuleIdentifier{Group: "a", Name: "a"}}}}
	b := domain.PolicySpec{ModuleIgnores: []domain.ModuleIgnore{{Module: domain.ModuleIdentifier{Group: "b", Name: "b"}}}}

	merged := a.Merge(b)
	require.Len(t, merged.ModuleIgnores, 2)
	assert.Equal(t, "a", merged.ModuleIgnores[0].Module.Group)
	assert.Equal(t, "b", merged.ModuleIgnores[1].Module.Group)
	assert.Len(t, a.ModuleIgnores, 1)
	assert.True(t, domain.PolicySpec{}.IsEmpty())
	assert.False(t, merged.IsEmpty())
}

func TestPluginMarker(t *testing.T) {
	dep := domain.PluginDependency("org.example", domain.ParseVersion("0.1"))
	assert.Equal(t, "org.example:org.example.gradle.plugin:0.1", dep.String())
	assert.True(t, domain.IsPluginMarker(dep))
	assert.False(t, domain.IsPluginMarker(domain.NewDependency("org.example", "plugin", domain.ParseVersion("0.1"))))
}
