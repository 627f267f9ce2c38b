package filter

import (
	"fmt"
	"strings"
)

// IndexMatch decides whether an array index satisfies an Array FilterPart:
// an exact value, a set of values, or a half-open range [lo, hi).
type IndexMatch struct {
	exact []int64 // one or more explicit/union-of-exact indices
	hasRange bool
	lo, hi int64 // [lo, hi)
}

// Exact returns an IndexMatch that accepts only idx.
func Exact(idx int64) IndexMatch {
	return IndexMatch{exact: []int64{idx}}
}

// Set returns an IndexMatch that accepts any of idxs.
func Set(idxs []int64) IndexMatch {
	return IndexMatch{exact: idxs}
}

// Range returns an IndexMatch that accepts any index in [lo, hi).
func Range(lo, hi int64) IndexMatch {
	return IndexMatch{hasRange: true, lo: lo, hi: hi}
}

// Matches reports whether idx satisfies this IndexMatch.
func (m IndexMatch) Matches(idx int64) bool {
	if m.hasRange && idx >= m.lo && idx < m.hi {
		return true
	}
	for _, e := range m.exact {
		if e == idx {
			return true
		}
	}
	return false
}

// String renders the match for diagnostics.
func (m IndexMatch) String() string {
	if m.hasRange {
		return fmt.Sprintf("%d:%d", m.lo, m.hi)
	}
	parts := make([]string, len(m.exact))
	for i, e := range m.exact {
		parts[i] = fmt.Sprintf("%d", e)
	}
	return strings.Join(parts, ",")
}
