package domain

import "time"

// Resolution is the outcome of resolving a dependency: either a resolved coordinate or a
// failure carrying the coordinate that was attempted and its cause.
type Resolution struct {
	dep   Dependency
	cause string
	fail  bool
}

// Resolved returns a successful resolution.
func Resolved(dep Dependency) Resolution {
	return Resolution{dep: dep}
}

// Failed returns a failed resolution of dep.
func Failed(dep Dependency, cause string) Resolution {
	return Resolution{dep: dep, cause: cause, fail: true}
}

// Dependency returns the resolved or attempted coordinate.
func (r Resolution) Dependency() Dependency {
	return r.dep
}

// IsFailed reports whether the resolution failed.
func (r Resolution) IsFailed() bool {
	return r.fail
}

// Cause returns the failure cause, or "" for a successful resolution.
func (r Resolution) Cause() string {
	return r.cause
}

// Key identifies the resolution for de-duplication.
func (r Resolution) Key() string {
	if r.fail {
		return "!" + r.dep.Key()
	}
	return r.dep.Key()
}

// String renders the coordinate, marking failures.
func (r Resolution) String() string {
	if r.fail {
		return r.dep.String() + " (failed: " + r.cause + ")"
	}
	return r.dep.String()
}

// Probe is a version range to resolve. Failures of probes with FailureAllowed set are
// expected and not reported.
type Probe struct {
	Version        Version
	FailureAllowed bool
}

// Update pairs a declared dependency with the candidates found for it, ascending by version.
type Update struct {
	Dependency Dependency
	Candidates []Resolution
}

// IsOutdated reports whether at least one resolved candidate differs from the declared
// dependency.
func (u Update) IsOutdated() bool {
	return len(u.Newer()) > 0
}

// Newer returns the resolved candidates that differ from the declared dependency.
func (u Update) Newer() []Resolution {
	var out []Resolution
	for _, c := range u.Candidates {
		if !c.IsFailed() && !c.Dependency().Equal(u.Dependency) {
			out = append(out, c)
		}
	}
	return out
}

// Failures returns the failed candidates.
func (u Update) Failures() []Resolution {
	var out []Resolution
	for _, c := range u.Candidates {
		if c.IsFailed() {
			out = append(out, c)
		}
	}
	return out
}

// FailedResolve is a remembered failed resolution attempt.
type FailedResolve struct {
	Dependency Dependency
	Cause      string
	Timestamp  time.Time
}
