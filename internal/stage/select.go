package stage

import (
	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/value"
)

// Select extracts the sub-value at path and forwards it if present,
// dropping the value silently if path does not resolve.
type Select struct {
	path querylang.PathExpr
	successor Stage
}

// NewSelect returns a Select stage extracting path before forwarding to
// successor.
func NewSelect(path querylang.PathExpr, successor Stage) *Select {
	return &Select{path: path, successor: successor}
}

func (s *Select) Ingest(v value.Value) error {
	sub, ok := s.path.Eval(v)
	if !ok {
		return nil
	}
	return s.successor.Ingest(sub)
}

func (s *Select) Finish() error { return s.successor.Finish() }
