package querylang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kompass-sh/sjq/internal/value"
)

// StageArgKind discriminates the three argument forms a stage can take
// ( `stage = ident (number | string | path)*`).
type StageArgKind int

const (
	ArgNumber StageArgKind = iota
	ArgString
	ArgPath
)

// StageArg is one positional argument to a stage invocation.
type StageArg struct {
	Kind StageArgKind
	Num value.NumberVal
	Str string
	Path PathExpr
}

// StageSpec is one `| stage` segment of a compiled query: a stage name and
// its raw arguments, not yet resolved against the stage registry. Resolving
// a StageSpec into a runnable stage (and catching unknown names or
// arity/type mismatches) is internal/stage's job, not querylang's — keeping
// the DSL's grammar independent of which stages happen to be registered.
type StageSpec struct {
	Name string
	Args []StageArg
	Pos int
}

// String renders the argument for diagnostics (sjq config explain).
func (a StageArg) String() string {
	switch a.Kind {
	case ArgNumber:
		if a.Num.Kind == value.KindInt {
			return strconv.FormatInt(a.Num.Int, 10)
		}
		return strconv.FormatFloat(a.Num.Float, 'g', -1, 64)
	case ArgString:
		return strconv.Quote(a.Str)
	case ArgPath:
		return a.Path.String()
	default:
		return "?"
	}
}

// String renders the stage invocation for diagnostics.
func (s StageSpec) String() string {
	parts := make([]string, 0, len(s.Args)+1)
	parts = append(parts, s.Name)
	for _, a := range s.Args {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, " ")
}

// FormatStagePlan renders a compiled stage pipeline for diagnostics.
func FormatStagePlan(specs []StageSpec) string {
	if len(specs) == 0 {
		return "(none)"
	}
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = fmt.Sprintf("%d: %s", i, s.String())
	}
	return strings.Join(parts, "\n")
}
