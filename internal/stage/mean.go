package stage

import (
	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/value"
)

// Mean accumulates a float sum and a count of numeric values found at path,
// emitting their ratio on Finish.
type Mean struct {
	path querylang.PathExpr
	strict bool
	successor Stage
	sum float64
	count int64
}

// NewMean returns a Mean stage over path. If strict, a missing path fails
// with MissingValueError instead of being skipped.
func NewMean(path querylang.PathExpr, strict bool, successor Stage) *Mean {
	return &Mean{path: path, strict: strict, successor: successor}
}

func (m *Mean) Ingest(v value.Value) error {
	sub, ok := m.path.Eval(v)
	if !ok {
		if m.strict {
			return &MissingValueError{Path: m.path.String()}
		}
		return nil
	}
	if sub.Kind != value.Number {
		return &NotANumberError{Path: m.path.String(), Got: sub.Kind}
	}
	m.sum += sub.Num.AsFloat()
	m.count++
	return nil
}

// Finish emits sum/count as a float if count > 0, otherwise emits nothing,
// then propagates Finish and resets.
func (m *Mean) Finish() error {
	if m.count > 0 {
		if err := m.successor.Ingest(value.NumberValue(value.Float64(m.sum / float64(m.count)))); err != nil {
			return err
		}
	}
	if err := m.successor.Finish(); err != nil {
		return err
	}
	m.sum, m.count = 0, 0
	return nil
}
