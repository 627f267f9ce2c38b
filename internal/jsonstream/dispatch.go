// Package jsonstream implements the three JSON parsing strategies: a full
// keep parser that materializes a value.Value, a skip parser that lexes
// without allocating, and the selective dispatcher that chooses between
// keep, skip, and structural descent at every value position by
// consulting a compiled filter.Filter. This dispatcher is the heart of
// the engine.
package jsonstream

import "github.com/kompass-sh/sjq/internal/lexer"

// ValueKind identifies which JSON production starts at the reader's current
// position, determined by a single rune of lookahead.
type ValueKind int

const (
	KindObject ValueKind = iota
	KindArray
	KindString
	KindNumber
	KindTrue
	KindFalse
	KindNull
)

// PeekKind inspects the next non-whitespace rune and reports which value
// production is about to start, without consuming anything. It is shared by
// the keep, skip, and selective parsers so the three stay in lockstep on
// what counts as a valid value.
func PeekKind(rd *lexer.Reader) (ValueKind, error) {
	rd.SkipWhitespace()
	ch, err := rd.Peek()
	if err != nil {
		return 0, lexer.Errorf(rd.Pos(), "unexpected end of input, expected a value")
	}
	switch {
	case ch == '{':
		return KindObject, nil
	case ch == '[':
		return KindArray, nil
	case ch == '"':
		return KindString, nil
	case ch == 't':
		return KindTrue, nil
	case ch == 'f':
		return KindFalse, nil
	case ch == 'n':
		return KindNull, nil
	case ch == '-' || ch == '+' || (ch >= '0' && ch <= '9'):
		return KindNumber, nil
	default:
		return 0, lexer.Errorf(rd.Pos(), "unexpected character %q, expected a value", ch)
	}
}
