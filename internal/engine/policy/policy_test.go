package policy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports/mocks"
	"go.trai.ch/drift/internal/engine/checker"
	"go.trai.ch/drift/internal/engine/finder"
	"go.trai.ch/drift/internal/engine/policy"
	"go.trai.ch/drift/internal/engine/provider"
	"go.uber.org/mock/gomock"
)

var module = domain.ModuleIdentifier{Group: "g", Name: "n"}

func dep(notation string) domain.Dependency {
	d, err := domain.ParseDependencyNotation(notation)
	if err != nil {
		panic(err)
	}
	return d
}

func versions(probes []domain.Probe) []string {
	out := make([]string, 0, len(probes))
	for _, p := range probes {
		out = append(out, p.Version.String())
	}
	return out
}

func rendered(results []domain.Resolution) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.String())
	}
	return out
}

func TestIgnore_Levels(t *testing.T) {
	tests := []struct {
		level    domain.IgnoreLevel
		expected []string
	}{
		{domain.IgnoreMajor, []string{"1.+", "1.2.+", "1.2.3.+"}},
		{domain.IgnoreMinor, []string{"1.2.+", "1.2.3.+"}},
		{domain.IgnoreMicro, []string{"1.2.3.+"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			p := policy.NewBuilder().Ignore(module, tt.level).Build()
			probes := p.Provider(provider.Default)

			assert.Equal(t, tt.expected, versions(probes(dep("g:n:1.2.3"))))
			assert.Equal(t, []string{"+", "1.+", "1.2.+", "1.2.3.+"}, versions(probes(dep("g:other:1.2.3"))))
		})
	}
}

func TestIgnore_All(t *testing.T) {
	p := policy.NewBuilder().Ignore(module, domain.IgnoreAll).Build()

	base := func(_ context.Context, d domain.Dependency) []domain.Resolution {
		return []domain.Resolution{domain.Resolved(d.WithVersion(domain.ParseVersion("9.0")))}
	}
	f := p.Finder(base)

	assert.Empty(t, f(context.Background(), dep("g:n:1.0")))
	assert.Equal(t, []string{"g:other:9.0"}, rendered(f(context.Background(), dep("g:other:1.0"))))
}

func TestIgnoreDependency(t *testing.T) {
	base := func(context.Context, domain.Dependency) []domain.Resolution {
		return []domain.Resolution{
			domain.Resolved(dep("g:n:1.2.3")),
			domain.Resolved(dep("g:n:2.0")),
			domain.Resolved(dep("g:n:2.1")),
			domain.Resolved(dep("g:n:3.0")),
			domain.Failed(dep("g:n:2.+"), "boom"),
		}
	}

	p := policy.NewBuilder().IgnoreDependency(dep("g:n:2.+")).Build()
	got := p.Finder(base)(context.Background(), dep("g:n:1.2.3"))
	assert.Equal(t, []string{"g:n:1.2.3", "g:n:3.0", "g:n:2.+ (failed: boom)"}, rendered(got))

	classified := policy.NewBuilder().IgnoreDependency(dep("g:n:2.+:sources")).Build()
	got = classified.Finder(base)(context.Background(), dep("g:n:1.2.3"))
	assert.Len(t, got, 5, "a different classifier is another artifact")
}

func TestRename(t *testing.T) {
	var probed []string
	base := func(_ context.Context, d domain.Dependency) []domain.Resolution {
		probed = append(probed, d.String())
		return []domain.Resolution{domain.Resolved(d.WithVersion(domain.ParseVersion("0.5")))}
	}

	p := policy.NewBuilder().Rename(domain.RenameRule{From: module, To: dep("g2:n2")}).Build()
	got := p.Finder(base)(context.Background(), dep("g:n:1.2.3"))

	assert.Equal(t, []string{"g2:n2:+"}, probed)
	assert.Equal(t, []string{"g2:n2:0.5"}, rendered(got), "renamed candidates are not filtered as older")
}

func TestFinder_FiltersOlder(t *testing.T) {
	base := func(context.Context, domain.Dependency) []domain.Resolution {
		return []domain.Resolution{domain.Resolved(dep("g:n:0.9")), domain.Resolved(dep("g:n:1.1"))}
	}

	got := policy.NewBuilder().Build().Finder(base)(context.Background(), dep("g:n:1.0"))
	assert.Equal(t, []string{"g:n:1.1"}, rendered(got))
}

func TestMerge(t *testing.T) {
	global := policy.NewBuilder().Ignore(module, domain.IgnoreMajor).Build()
	project := policy.NewBuilder().Ignore(domain.ModuleIdentifier{Group: "g", Name: "other"}, domain.IgnoreMajor).Build()

	probes := global.Merge(project).Provider(provider.Default)

	assert.NotContains(t, versions(probes(dep("g:n:1.2"))), "+")
	assert.NotContains(t, versions(probes(dep("g:other:1.2"))), "+")
	assert.Contains(t, versions(probes(dep("g:third:1.2"))), "+")
}

func TestFromSpec(t *testing.T) {
	spec := domain.PolicySpec{
		ModuleIgnores: []domain.ModuleIgnore{{Module: module, Level: domain.IgnoreMinor}},
		Renames:       []domain.RenameRule{{From: domain.ModuleIdentifier{Group: "old", Name: "lib"}, To: dep("new:lib")}},
	}
	p := policy.FromSpec(spec)

	assert.Equal(t, []string{"1.2.+"}, versions(p.Provider(provider.Default)(dep("g:n:1.2"))))

	var probed domain.Dependency
	base := func(_ context.Context, d domain.Dependency) []domain.Resolution {
		probed = d
		return nil
	}
	p.Finder(finder.Func(base))(context.Background(), dep("old:lib:1.0"))
	assert.Equal(t, "new:lib:+", probed.String())
}

func TestBuild_IsImmutable(t *testing.T) {
	b := policy.NewBuilder()
	first := b.Build()
	b.Ignore(module, domain.IgnoreMajor)

	assert.Contains(t, versions(first.Provider(provider.Default)(dep("g:n:1.0"))), "+")
}

// onlyLatest resolves the universal wildcard to 0.2 and fails every other probe.
func onlyLatest(_ context.Context, d domain.Dependency) []domain.Resolution {
	if d.Version.String() == "+" {
		return []domain.Resolution{domain.Resolved(d.WithVersion(domain.ParseVersion("0.2")))}
	}
	return []domain.Resolution{domain.Failed(d, "none")}
}

func checkWith(t *testing.T, p *policy.Policy, d domain.Dependency) domain.Update {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	find := p.Finder(finder.Base(p.Provider(provider.Default), onlyLatest, log))
	updates, err := checker.New(find, 1).Check(context.Background(), []domain.Dependency{d})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	return updates[0]
}

func TestCheck_IgnoreMajorHidesWildcardOnlyUpdate(t *testing.T) {
	plugin := domain.ModuleIdentifier{Group: "org.example", Name: "plugin"}
	d := dep("org.example:plugin:0.1")

	u := checkWith(t, policy.NewBuilder().Build(), d)
	assert.True(t, u.IsOutdated())

	u = checkWith(t, policy.NewBuilder().Ignore(plugin, domain.IgnoreMajor).Build(), d)
	assert.False(t, u.IsOutdated())
	assert.Empty(t, u.Newer())
}

func TestIgnore_FollowsRename(t *testing.T) {
	plugin := domain.ModuleIdentifier{Group: "org.example", Name: "plugin"}
	rename := domain.RenameRule{From: plugin, To: dep("org.new:plugin")}
	d := dep("org.example:plugin:0.1")

	for _, level := range []domain.IgnoreLevel{domain.IgnoreAll, domain.IgnoreMajor} {
		t.Run(level.String(), func(t *testing.T) {
			p := policy.NewBuilder().Ignore(plugin, level).Rename(rename).Build()
			assert.False(t, checkWith(t, p, d).IsOutdated())
		})
	}

	t.Run("rule on the new module", func(t *testing.T) {
		p := policy.NewBuilder().Rename(rename).Ignore(rename.To.Module(), domain.IgnoreAll).Build()
		assert.False(t, checkWith(t, p, d).IsOutdated())
	})

	t.Run("unrelated module", func(t *testing.T) {
		p := policy.NewBuilder().Ignore(module, domain.IgnoreMajor).Rename(rename).Build()
		assert.True(t, checkWith(t, p, d).IsOutdated())
	})
}

func TestRename_DeclarationOrder(t *testing.T) {
	a := domain.ModuleIdentifier{Group: "g", Name: "a"}
	b := domain.ModuleIdentifier{Group: "g", Name: "b"}

	probe := func(p *policy.Policy) string {
		var probed domain.Dependency
		base := func(_ context.Context, d domain.Dependency) []domain.Resolution {
			probed = d
			return nil
		}
		p.Finder(base)(context.Background(), dep("g:a:1.0"))
		return probed.String()
	}

	chained := policy.NewBuilder().
		Rename(domain.RenameRule{From: a, To: dep("g:b")}).
		Rename(domain.RenameRule{From: b, To: dep("g:c:2.0")}).
		Build()
	assert.Equal(t, "g:c:2.0", probe(chained))

	reversed := policy.NewBuilder().
		Rename(domain.RenameRule{From: b, To: dep("g:c:2.0")}).
		Rename(domain.RenameRule{From: a, To: dep("g:b")}).
		Build()
	assert.Equal(t, "g:b:+", probe(reversed), "a rule only sees the results of earlier rules")

	global := policy.NewBuilder().Rename(domain.RenameRule{From: a, To: dep("g:b")}).Build()
	project := policy.NewBuilder().Rename(domain.RenameRule{From: a, To: dep("g:x")}).Build()
	assert.Equal(t, "g:b:+", probe(global.Merge(project)), "the global rename applies first")
}
