// Package provider generates the version ranges probed when looking for updates.
package provider

import "go.trai.ch/drift/internal/core/domain"

// Func returns the probes for a dependency, ordered from coarse to fine.
type Func func(dep domain.Dependency) []domain.Probe

// Decorator wraps a Func.
type Decorator func(Func) Func

// Chain folds the decorators around base. The first decorator wraps base directly.
func Chain(base Func, decorators ...Decorator) Func {
	f := base
	for _, d := range decorators {
		f = d(f)
	}
	return f
}

// Default probes every concrete component of the dependency's version with a wildcard,
// plus the universal wildcard. When the version stops at a concrete component, the next
// finer level is probed as well, with failures allowed.
func Default(dep domain.Dependency) []domain.Probe {
	v := dep.Version
	probes := []domain.Probe{{Version: domain.AnyVersion()}}

	for p := domain.PrecisionMajor; p <= domain.PrecisionPatch; p++ {
		c := v.Component(p)
		if c.IsConcrete() {
			probes = append(probes, domain.Probe{Version: v.With(p, domain.Wildcard())})
			continue
		}
		if c.IsAbsent() && p > domain.PrecisionMajor && v.Component(p-1).IsConcrete() {
			probes = append(probes, domain.Probe{Version: v.With(p, domain.Wildcard()), FailureAllowed: true})
		}
		break
	}

	return Dedupe(probes)
}

// Dedupe removes probes with equal versions, keeping the position of the first
// occurrence. A probe that must not fail wins over one that may.
func Dedupe(probes []domain.Probe) []domain.Probe {
	out := make([]domain.Probe, 0, len(probes))
	index := make(map[string]int, len(probes))
	for _, p := range probes {
		key := p.Version.String()
		if i, ok := index[key]; ok {
			out[i].FailureAllowed = out[i].FailureAllowed && p.FailureAllowed
			continue
		}
		index[key] = len(out)
		out = append(out, p)
	}
	return out
}

// Filter returns a decorator dropping the probes for which drop returns true.
func Filter(drop func(dep domain.Dependency, probe domain.Probe) bool) Decorator {
	return func(next Func) Func {
		return func(dep domain.Dependency) []domain.Probe {
			probes := next(dep)
			out := probes[:0:0]
			for _, p := range probes {
				if !drop(dep, p) {
					out = append(out, p)
				}
			}
			return out
		}
	}
}
