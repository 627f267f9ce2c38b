package querylang

import (
	"fmt"
	"strings"

	"github.com/kompass-sh/sjq/internal/value"
)

// PathStepKind distinguishes a field step from an index step in a PathExpr.
type PathStepKind int

const (
	PathField PathStepKind = iota
	PathIndex
)

// PathStep is one step of a PathExpr.
type PathStep struct {
	Kind PathStepKind
	Name string
	Idx int64
}

// PathExpr is a literal path used as a stage argument, distinct from
// filter.Filter: where a Filter is a predicate consulted by the streaming
// parser against its current position, a PathExpr is evaluated directly
// against an already-materialized value.Value by stages like Select, Sum,
// and Mean.
type PathExpr struct {
	Steps []PathStep
}

// Eval walks v according to the path's steps, returning the sub-value and
// true if every step resolved, or the zero Value and false at the first
// missing field or out-of-range index.
func (p PathExpr) Eval(v value.Value) (value.Value, bool) {
	cur := v
	for _, step := range p.Steps {
		var ok bool
		switch step.Kind {
		case PathField:
			cur, ok = cur.Field(step.Name)
		case PathIndex:
			cur, ok = cur.Element(step.Idx)
		}
		if !ok {
			return value.Value{}, false
		}
	}
	return cur, true
}

// String renders the path in dotted form for diagnostics, e.g. ".a[2].b".
func (p PathExpr) String() string {
	if len(p.Steps) == 0 {
		return "."
	}
	var b strings.Builder
	for _, s := range p.Steps {
		switch s.Kind {
		case PathField:
			b.WriteByte('.')
			b.WriteString(s.Name)
		case PathIndex:
			fmt.Fprintf(&b, "[%d]", s.Idx)
		}
	}
	return b.String()
}
