package stage

import (
	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/value"
)

// FieldValue resolves the value AddField inserts: either a literal captured
// at compile time, or a path evaluated against the ingested value itself
// (letting a query copy one field's value under a new name, e.g.
// `add_field "total".amount`).
type FieldValue struct {
	literal value.Value
	isLiteral bool
	path querylang.PathExpr
}

// LiteralFieldValue returns a FieldValue that always resolves to v.
func LiteralFieldValue(v value.Value) FieldValue {
	return FieldValue{literal: v, isLiteral: true}
}

// PathFieldValue returns a FieldValue that resolves by evaluating path
// against the value AddField is ingesting.
func PathFieldValue(path querylang.PathExpr) FieldValue {
	return FieldValue{path: path}
}

func (f FieldValue) resolve(input value.Value) (value.Value, bool) {
	if f.isLiteral {
		return f.literal, true
	}
	return f.path.Eval(input)
}

// AddField inserts (or overwrites) a field on each ingested object value
// and forwards it to the successor. When a path-valued field does not
// resolve, the object is forwarded unchanged. Non-object input fails
// with NotAnObjectError.
type AddField struct {
	key string
	value FieldValue
	successor Stage
}

// NewAddField returns an AddField stage inserting key (resolved via value)
// before forwarding to successor.
func NewAddField(key string, fv FieldValue, successor Stage) *AddField {
	return &AddField{key: key, value: fv, successor: successor}
}

func (a *AddField) Ingest(v value.Value) error {
	if v.Kind != value.Object {
		return &NotAnObjectError{Got: v.Kind}
	}
	if resolved, ok := a.value.resolve(v); ok {
		v.Set(a.key, resolved)
	}
	return a.successor.Ingest(v)
}

func (a *AddField) Finish() error { return a.successor.Finish() }
