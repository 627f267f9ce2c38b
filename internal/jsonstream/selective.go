package jsonstream

import (
	"github.com/kompass-sh/sjq/internal/filter"
	"github.com/kompass-sh/sjq/internal/jsonpath"
	"github.com/kompass-sh/sjq/internal/lexer"
	"github.com/kompass-sh/sjq/internal/value"
)

// Emit is called once for every value at a path the filter fully matches.
// Returning an error aborts the parse: selective.Parse propagates it
// unchanged, which lets a pipeline stage failure stop the
// engine mid-stream without first draining the rest of the input.
type Emit func(path *jsonpath.Path, v value.Value) error

// Parse runs the tri-modal dispatch over the value starting at the
// reader's current position: at every position it
// asks f whether path is a match (fully parse and Emit), a subpath (descend
// structurally, recursing into object members and array elements), or
// neither (skip without allocating). path is the caller's scratchpad; Parse
// pushes and pops it in lockstep with descent so it always reflects the
// current position on return.
func Parse(rd *lexer.Reader, f filter.Filter, path *jsonpath.Path, maxLen int, emit Emit) error {
	if f.IsMatch(path) {
		v, err := ParseValue(rd, maxLen)
		if err != nil {
			return err
		}
		return emit(path, v)
	}
	if !f.IsSubpath(path) {
		return SkipValue(rd, maxLen)
	}

	rd.SkipWhitespace()
	kind, err := PeekKind(rd)
	if err != nil {
		return err
	}
	switch kind {
	case KindObject:
		return descendObject(rd, f, path, maxLen, emit)
	case KindArray:
		return descendArray(rd, f, path, maxLen, emit)
	default:
		// A subpath match at a scalar position means the pattern is longer
		// than the document is deep: nothing further to descend into, so the
		// scalar itself is simply skipped.
		return SkipValue(rd, maxLen)
	}
}

func descendObject(rd *lexer.Reader, f filter.Filter, path *jsonpath.Path, maxLen int, emit Emit) error {
	rd.Next() // consume '{'
	rd.SkipWhitespace()
	ch, err := rd.Peek()
	if err != nil {
		return lexer.Errorf(rd.Pos(), "unterminated object")
	}
	if ch == '}' {
		rd.Next()
		return nil
	}
	for {
		rd.SkipWhitespace()
		if ch, err := rd.Next(); err != nil || ch != '"' {
			return lexer.Errorf(rd.Pos(), "expected object key")
		}
		key, err := lexer.ReadString(rd, maxLen)
		if err != nil {
			return err
		}
		rd.SkipWhitespace()
		if ch, err := rd.Next(); err != nil || ch != ':' {
			return lexer.Errorf(rd.Pos(), "expected ':' after object key")
		}
		rd.SkipWhitespace()

		path.PushField(key)
		err = Parse(rd, f, path, maxLen, emit)
		path.PopField()
		if err != nil {
			return err
		}

		rd.SkipWhitespace()
		sep, err := rd.Next()
		if err != nil {
			return lexer.Errorf(rd.Pos(), "unterminated object")
		}
		if sep == '}' {
			return nil
		}
		if sep != ',' {
			return lexer.Errorf(rd.Pos(), "expected ',' or '}' in object")
		}
	}
}

func descendArray(rd *lexer.Reader, f filter.Filter, path *jsonpath.Path, maxLen int, emit Emit) error {
	rd.Next() // consume '['
	rd.SkipWhitespace()
	ch, err := rd.Peek()
	if err != nil {
		return lexer.Errorf(rd.Pos(), "unterminated array")
	}
	if ch == ']' {
		rd.Next()
		return nil
	}

	path.PushIndex()
	first := true
	for {
		if !first {
			path.IncIndex()
		}
		first = false

		rd.SkipWhitespace()
		if err := Parse(rd, f, path, maxLen, emit); err != nil {
			path.PopIndex()
			return err
		}

		rd.SkipWhitespace()
		sep, err := rd.Next()
		if err != nil {
			path.PopIndex()
			return lexer.Errorf(rd.Pos(), "unterminated array")
		}
		if sep == ']' {
			path.PopIndex()
			return nil
		}
		if sep != ',' {
			path.PopIndex()
			return lexer.Errorf(rd.Pos(), "expected ',' or ']' in array")
		}
	}
}
