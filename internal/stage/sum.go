package stage

import (
	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/value"
)

// Sum accumulates the numeric values found at path across every ingested
// value, emitting the total to its successor on Finish.
type Sum struct {
	path querylang.PathExpr
	strict bool
	successor Stage
	acc value.NumberVal
}

// NewSum returns a Sum stage over path. If strict, a missing path fails
// with MissingValueError instead of being skipped.
func NewSum(path querylang.PathExpr, strict bool, successor Stage) *Sum {
	return &Sum{path: path, strict: strict, successor: successor, acc: value.Int64(0)}
}

func (s *Sum) Ingest(v value.Value) error {
	sub, ok := s.path.Eval(v)
	if !ok {
		if s.strict {
			return &MissingValueError{Path: s.path.String()}
		}
		return nil
	}
	if sub.Kind != value.Number {
		return &NotANumberError{Path: s.path.String(), Got: sub.Kind}
	}
	s.acc = s.acc.Add(sub.Num)
	return nil
}

// Finish forwards the accumulated total, then propagates Finish and
// resets the accumulator so a re-run of the same stage instance starts
// clean.
func (s *Sum) Finish() error {
	if err := s.successor.Ingest(value.NumberValue(s.acc)); err != nil {
		return err
	}
	if err := s.successor.Finish(); err != nil {
		return err
	}
	s.acc = value.Int64(0)
	return nil
}
