package domain

import (
	"cmp"
	"strconv"
)

// NumberWildcard is a single version component. It is either absent, a concrete
// non-negative number, a wildcard ("+"), or a number followed by a wildcard ("1+"),
// which stands for any number at least as large as the given one.
type NumberWildcard struct {
	number   int
	present  bool
	wildcard bool
}

// Absent returns a component that carries no information.
func Absent() NumberWildcard {
	return NumberWildcard{}
}

// Number returns a concrete component.
func Number(n int) NumberWildcard {
	return NumberWildcard{number: n, present: true}
}

// Wildcard returns a component matching any number.
func Wildcard() NumberWildcard {
	return NumberWildcard{wildcard: true}
}

// NumberWithWildcard returns a component matching any number >= n.
func NumberWithWildcard(n int) NumberWildcard {
	return NumberWildcard{number: n, present: true, wildcard: true}
}

// IsAbsent reports whether the component carries neither a number nor a wildcard.
func (n NumberWildcard) IsAbsent() bool {
	return !n.present && !n.wildcard
}

// IsWildcard reports whether the component is a wildcard, with or without a minimum.
func (n NumberWildcard) IsWildcard() bool {
	return n.wildcard
}

// IsConcrete reports whether the component is a plain number.
func (n NumberWildcard) IsConcrete() bool {
	return n.present && !n.wildcard
}

// HasNumber reports whether the component carries a number.
func (n NumberWildcard) HasNumber() bool {
	return n.present
}

// Num returns the number of the component, or 0 if it carries none.
func (n NumberWildcard) Num() int {
	return n.number
}

// Compare orders two components. When exactly one side is a wildcard, the wildcard
// side is greater. Otherwise the numbers are compared, an absent number sorting
// below any present one.
func (n NumberWildcard) Compare(o NumberWildcard) int {
	if n.wildcard != o.wildcard {
		if n.wildcard {
			return 1
		}
		return -1
	}
	switch {
	case !n.present && !o.present:
		return 0
	case !n.present:
		return -1
	case !o.present:
		return 1
	}
	return cmp.Compare(n.number, o.number)
}

// Contains reports whether o falls inside the range described by n.
func (n NumberWildcard) Contains(o NumberWildcard) bool {
	if !n.wildcard {
		return n == o
	}
	if o.IsAbsent() {
		return false
	}
	if !n.present {
		return true
	}
	return o.present && o.number >= n.number
}

// String renders the component as it appears in a version string.
func (n NumberWildcard) String() string {
	s := ""
	if n.present {
		s = strconv.Itoa(n.number)
	}
	if n.wildcard {
		s += "+"
	}
	return s
}
