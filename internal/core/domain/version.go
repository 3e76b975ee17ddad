package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Precision identifies a component of a Version.
type Precision int

const (
	// PrecisionMajor is the first version component.
	PrecisionMajor Precision = iota
	// PrecisionMinor is the second version component.
	PrecisionMinor
	// PrecisionMicro is the third version component.
	PrecisionMicro
	// PrecisionPatch is the fourth version component.
	PrecisionPatch
)

const precisionCount = int(PrecisionPatch) + 1

// String returns the lowercase name of the precision.
func (p Precision) String() string {
	switch p {
	case PrecisionMajor:
		return "major"
	case PrecisionMinor:
		return "minor"
	case PrecisionMicro:
		return "micro"
	case PrecisionPatch:
		return "patch"
	default:
		return "precision(" + strconv.Itoa(int(p)) + ")"
	}
}

// Version is a dotted version number of up to four components, any of which may be
// a wildcard, followed by an optional qualifier. Versions are immutable values.
type Version struct {
	parts     [precisionCount]NumberWildcard
	qualifier string
}

// AnyVersion returns the universal wildcard "+".
func AnyVersion() Version {
	var v Version
	v.parts[PrecisionMajor] = Wildcard()
	return v
}

// NewVersion builds a Version from explicit components.
// It rejects gaps between components, components following a wildcard,
// and a qualifier following a wildcard.
func NewVersion(qualifier string, parts ...NumberWildcard) (Version, error) {
	var v Version
	if len(parts) > precisionCount {
		return Version{}, zerr.With(ErrInvalidVersion, "components", len(parts))
	}
	copy(v.parts[:], parts)
	v.qualifier = qualifier

	closed := false
	for i, part := range v.parts {
		if closed && !part.IsAbsent() {
			return Version{}, zerr.With(ErrInvalidVersion, "precision", Precision(i).String())
		}
		if part.IsAbsent() || part.IsWildcard() {
			closed = true
		}
	}
	if qualifier != "" && v.HasWildcard() {
		return Version{}, zerr.With(ErrInvalidVersion, "qualifier", qualifier)
	}
	return v, nil
}

// ParseVersion parses a version string. Parsing never fails: fields that cannot be
// read are left absent and unconsumed text becomes the qualifier.
func ParseVersion(text string) Version {
	var v Version
	rest := text
	parsed := false

	for p := PrecisionMajor; p <= PrecisionPatch; p++ {
		candidate := rest
		if p > PrecisionMajor {
			next, ok := consumeSeparator(candidate, p)
			if !ok {
				break
			}
			candidate = next
		}

		part, remaining, ok := scanComponent(candidate)
		if !ok {
			break
		}
		v.parts[p] = part
		rest = remaining
		parsed = true

		if part.IsWildcard() {
			// Nothing may follow a wildcard.
			return v
		}
	}

	if parsed && rest != "" && strings.ContainsRune("-._", rune(rest[0])) {
		rest = rest[1:]
	}
	v.qualifier = rest
	return v
}

func consumeSeparator(s string, p Precision) (string, bool) {
	if s == "" {
		return s, false
	}
	switch {
	case s[0] == '.':
		return s[1:], true
	case s[0] == '_' && p == PrecisionPatch:
		return s[1:], true
	default:
		return s, false
	}
}

func scanComponent(s string) (NumberWildcard, string, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	wildcard := end < len(s) && s[end] == '+'

	if end == 0 {
		if wildcard {
			return Wildcard(), s[1:], true
		}
		return NumberWildcard{}, s, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return NumberWildcard{}, s, false
	}
	if wildcard {
		return NumberWithWildcard(n), s[end+1:], true
	}
	return Number(n), s[end:], true
}

// Component returns the component at the given precision.
func (v Version) Component(p Precision) NumberWildcard {
	return v.parts[p]
}

// Major returns the major component.
func (v Version) Major() NumberWildcard { return v.parts[PrecisionMajor] }

// Minor returns the minor component.
func (v Version) Minor() NumberWildcard { return v.parts[PrecisionMinor] }

// Micro returns the micro component.
func (v Version) Micro() NumberWildcard { return v.parts[PrecisionMicro] }

// Patch returns the patch component.
func (v Version) Patch() NumberWildcard { return v.parts[PrecisionPatch] }

// Qualifier returns the trailing qualifier, or "" if there is none.
func (v Version) Qualifier() string {
	return v.qualifier
}

// Precision returns the precision of the last non-absent component.
// It returns -1 when no component is present.
func (v Version) Precision() Precision {
	for i := precisionCount - 1; i >= 0; i-- {
		if !v.parts[i].IsAbsent() {
			return Precision(i)
		}
	}
	return -1
}

// IsEmpty reports whether the version has no component and no qualifier.
func (v Version) IsEmpty() bool {
	return v.Precision() < 0 && v.qualifier == ""
}

// HasWildcard reports whether any component is a wildcard.
func (v Version) HasWildcard() bool {
	for _, part := range v.parts {
		if part.IsWildcard() {
			return true
		}
	}
	return false
}

// With returns a copy of v with the component at p replaced by n.
// When n is a wildcard or absent, deeper components and the qualifier are cleared.
// Callers keep the components contiguous.
func (v Version) With(p Precision, n NumberWildcard) Version {
	out := v
	out.parts[p] = n
	if n.IsWildcard() || n.IsAbsent() {
		for i := int(p) + 1; i < precisionCount; i++ {
			out.parts[i] = Absent()
		}
		out.qualifier = ""
	}
	return out
}

// WithQualifier returns a copy of v with the given qualifier.
// The qualifier is dropped if v contains a wildcard.
func (v Version) WithQualifier(q string) Version {
	out := v
	if out.HasWildcard() {
		q = ""
	}
	out.qualifier = q
	return out
}

// String renders the version up to its last non-absent component.
func (v Version) String() string {
	var b strings.Builder
	last := int(v.Precision())
	for i := 0; i <= last; i++ {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(v.parts[i].String())
	}
	if v.qualifier != "" {
		if last >= 0 {
			b.WriteByte('-')
		}
		b.WriteString(v.qualifier)
	}
	return b.String()
}

// Compare orders versions component by component and then by qualifier.
// A version without qualifier sorts after any qualified version with the same numbers.
func (v Version) Compare(o Version) int {
	for i := range v.parts {
		if c := v.parts[i].Compare(o.parts[i]); c != 0 {
			return c
		}
	}
	return compareQualifiers(v.qualifier, o.qualifier)
}

func compareQualifiers(a, b string) int {
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// Matches reports whether o lies inside the range described by v.
// Components are checked from major to patch and matching succeeds at the first
// wildcard of v. Without a wildcard, the qualifiers must be equal as well.
func (v Version) Matches(o Version) bool {
	for i := range v.parts {
		if !v.parts[i].Contains(o.parts[i]) {
			return false
		}
		if v.parts[i].IsWildcard() {
			return true
		}
	}
	return strings.EqualFold(v.qualifier, o.qualifier)
}

// Equal reports whether both versions have identical components and qualifiers
// that are equal ignoring case.
func (v Version) Equal(o Version) bool {
	return v.parts == o.parts && strings.EqualFold(v.qualifier, o.qualifier)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	*v = ParseVersion(string(text))
	return nil
}
