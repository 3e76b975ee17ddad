// Package policy compiles ignore and rename rules into decorators of the version
// provider and the update finder chain.
package policy

import (
	"slices"

	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/engine/finder"
	"go.trai.ch/drift/internal/engine/provider"
)

// Policy is an immutable set of provider and finder decorators.
type Policy struct {
	ignores []domain.ModuleIgnore
	renames []domain.RenameRule
	filters []finder.Decorator
}

// Builder accumulates rules into a Policy.
type Builder struct {
	policy Policy
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Ignore suppresses updates of a module. IgnoreAll drops the module entirely; the other
// levels drop the probes crossing that version boundary or a coarser one. The rule
// follows the module through renames.
func (b *Builder) Ignore(module domain.ModuleIdentifier, level domain.IgnoreLevel) *Builder {
	b.policy.ignores = append(b.policy.ignores, domain.ModuleIgnore{Module: module, Level: level})
	return b
}

// IgnoreDependency drops candidates of the same artifact whose version lies in the
// range of dep's version. A dependency without version covers every version.
func (b *Builder) IgnoreDependency(dep domain.Dependency) *Builder {
	rng := dep.Version
	if rng.IsEmpty() {
		rng = domain.AnyVersion()
	}

	b.policy.filters = append(b.policy.filters, finder.Filter(func(_ domain.Dependency, r domain.Resolution) bool {
		c := r.Dependency()
		return !r.IsFailed() && c.SameArtifact(dep) && rng.Matches(c.Version)
	}))
	return b
}

// Rename migrates a module before looking for updates. Renames apply in the order they
// were added, so a later rule sees the result of an earlier one.
func (b *Builder) Rename(rule domain.RenameRule) *Builder {
	b.policy.renames = append(b.policy.renames, rule)
	return b
}

// Spec adds every rule of a declarative policy.
func (b *Builder) Spec(spec domain.PolicySpec) *Builder {
	for _, r := range spec.ModuleIgnores {
		b.Ignore(r.Module, r.Level)
	}
	for _, r := range spec.DependencyIgnores {
		b.IgnoreDependency(r.Dependency)
	}
	for _, r := range spec.Renames {
		b.Rename(r)
	}
	return b
}

// Build returns the policy. The builder may be reused; later rules do not affect
// policies already built.
func (b *Builder) Build() *Policy {
	return &Policy{
		ignores: clone(b.policy.ignores),
		renames: clone(b.policy.renames),
		filters: clone(b.policy.filters),
	}
}

// FromSpec builds the policy of a declarative spec.
func FromSpec(spec domain.PolicySpec) *Policy {
	return NewBuilder().Spec(spec).Build()
}

// Merge returns a policy applying the rules of p and then those of o.
func (p *Policy) Merge(o *Policy) *Policy {
	return &Policy{
		ignores: append(clone(p.ignores), o.ignores...),
		renames: append(clone(p.renames), o.renames...),
		filters: append(clone(p.filters), o.filters...),
	}
}

// Provider wraps base with the level ignores of the policy. Probes are generated for the
// renamed dependency, so each rule also matches the modules its module is renamed to.
func (p *Policy) Provider(base provider.Func) provider.Func {
	decorators := make([]provider.Decorator, 0, len(p.ignores))
	for _, rule := range p.ignores {
		if rule.Level == domain.IgnoreAll {
			continue
		}
		modules := p.renamedTo(rule.Module)
		limit := rule.Level.Precision()
		decorators = append(decorators, provider.Filter(func(dep domain.Dependency, probe domain.Probe) bool {
			return slices.Contains(modules, dep.Module()) && probe.Version.Precision() <= limit
		}))
	}
	return provider.Chain(base, decorators...)
}

// Finder wraps base with the renames, then with finder.FilterOlder, then with the
// ignore filters. Candidates of a renamed module are never compared with the declared
// version.
func (p *Policy) Finder(base finder.Func) finder.Func {
	decorators := make([]finder.Decorator, 0, len(p.renames)+len(p.filters)+2)
	// The outermost rename runs first.
	for i := len(p.renames) - 1; i >= 0; i-- {
		decorators = append(decorators, finder.Rename(p.renames[i]))
	}
	decorators = append(decorators, finder.FilterOlder)
	decorators = append(decorators, p.filters...)
	if skipped := p.skipped(); len(skipped) > 0 {
		decorators = append(decorators, finder.Skip(func(dep domain.Dependency) bool {
			for _, m := range p.renamedTo(dep.Module()) {
				if slices.Contains(skipped, m) {
					return true
				}
			}
			return false
		}))
	}
	return finder.Chain(base, decorators...)
}

// renamedTo returns module followed by every module the renames move it to.
func (p *Policy) renamedTo(module domain.ModuleIdentifier) []domain.ModuleIdentifier {
	modules := []domain.ModuleIdentifier{module}
	for _, r := range p.renames {
		to := r.To.Module()
		if slices.Contains(modules, r.From) && !slices.Contains(modules, to) {
			modules = append(modules, to)
		}
	}
	return modules
}

func (p *Policy) skipped() []domain.ModuleIdentifier {
	var out []domain.ModuleIdentifier
	for _, rule := range p.ignores {
		if rule.Level == domain.IgnoreAll {
			out = append(out, rule.Module)
		}
	}
	return out
}

func clone[T any](s []T) []T {
	return append([]T(nil), s...)
}
