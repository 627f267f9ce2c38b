// Package filter implements the compiled path predicate that the selective
// parser consults at every value position to choose between keep, descend,
// and skip mode.
package filter

import (
	"fmt"
	"strings"

	"github.com/kompass-sh/sjq/internal/jsonpath"
)

// PartKind discriminates the two cases of FilterPart.
type PartKind int

const (
	// BranchPart matches an object field step.
	BranchPart PartKind = iota
	// ArrayPart matches an array index step.
	ArrayPart
)

// FilterPart is one positional element of a Parts filter: either a Branch
// (object field, matched by NameMatch) or an Array slot (matched by
// IndexMatch). A branch part never accepts an index step and vice versa.
type FilterPart struct {
	Kind PartKind
	Name NameMatch
	Index IndexMatch
}

// Branch returns a FilterPart that matches an object field by name.
func Branch(m NameMatch) FilterPart {
	return FilterPart{Kind: BranchPart, Name: m}
}

// Array returns a FilterPart that matches an array slot by index.
func Array(m IndexMatch) FilterPart {
	return FilterPart{Kind: ArrayPart, Index: m}
}

// matchesStep reports whether this part accepts the given path step. A
// kind mismatch (branch part against an index step, or vice versa) always
// fails.
func (p FilterPart) matchesStep(s jsonpath.Step) bool {
	switch p.Kind {
	case BranchPart:
		return s.Kind == jsonpath.Field && p.Name.Matches(s.Name)
	case ArrayPart:
		return s.Kind == jsonpath.Index && p.Index.Matches(s.Idx)
	default:
		return false
	}
}

// FilterKind discriminates the three cases of Filter.
type FilterKind int

const (
	// AllKind matches every path.
	AllKind FilterKind = iota
	// PartsKind matches a positional pattern, one FilterPart per path step.
	PartsKind
	// UnionKind matches if any branch filter matches.
	UnionKind
)

// Filter is the compiled predicate over paths. The zero value is not
// meaningful; construct with All, NewParts, or Union.
type Filter struct {
	Kind FilterKind
	Parts []FilterPart
	Branch []Filter
}

// All returns the filter that matches every path.
func All() Filter {
	return Filter{Kind: AllKind}
}

// NewParts returns a Parts filter matching the given positional pattern.
func NewParts(parts []FilterPart) Filter {
	return Filter{Kind: PartsKind, Parts: parts}
}

// NewUnion returns a filter that matches if any of branches matches.
func NewUnion(branches []Filter) Filter {
	return Filter{Kind: UnionKind, Branch: branches}
}

// IsMatch reports whether path is an exact match for the filter: the
// current sub-document should be fully parsed and pushed into the pipeline.
func (f Filter) IsMatch(path *jsonpath.Path) bool {
	switch f.Kind {
	case AllKind:
		return true
	case PartsKind:
		steps := path.Iter()
		if len(steps) != len(f.Parts) {
			return false
		}
		for i, part := range f.Parts {
			if !part.matchesStep(steps[i]) {
				return false
			}
		}
		return true
	case UnionKind:
		for _, b := range f.Branch {
			if b.IsMatch(path) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String renders the compiled filter tree for diagnostics (sjq config
// explain).
func (f Filter) String() string {
	switch f.Kind {
	case AllKind:
		return "."
	case PartsKind:
		var b strings.Builder
		for _, p := range f.Parts {
			switch p.Kind {
			case BranchPart:
				b.WriteByte('.')
				b.WriteString(p.Name.String())
			case ArrayPart:
				fmt.Fprintf(&b, "[%s]", p.Index.String())
			}
		}
		return b.String()
	case UnionKind:
		parts := make([]string, len(f.Branch))
		for i, b := range f.Branch {
			parts[i] = b.String()
		}
		return strings.Join(parts, ",")
	default:
		return "?"
	}
}

// IsSubpath reports whether some extension of path could still match: the
// parser should descend into substructure rather than skip it outright.
func (f Filter) IsSubpath(path *jsonpath.Path) bool {
	switch f.Kind {
	case AllKind:
		return true
	case PartsKind:
		steps := path.Iter()
		if len(steps) > len(f.Parts) {
			return false
		}
		for i := 0; i < len(steps); i++ {
			if !f.Parts[i].matchesStep(steps[i]) {
				return false
			}
		}
		return true
	case UnionKind:
		for _, b := range f.Branch {
			if b.IsSubpath(path) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
