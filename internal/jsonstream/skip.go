package jsonstream

import "github.com/kompass-sh/sjq/internal/lexer"

// SkipValue lexes the JSON value starting at the reader's current position
// and discards it without allocating a value.Value. It still fully
// validates structure and consumes exactly one value's worth of input, so
// a subsequent read resumes at the right place.
func SkipValue(rd *lexer.Reader, maxLen int) error {
	rd.SkipWhitespace()
	kind, err := PeekKind(rd)
	if err != nil {
		return err
	}
	switch kind {
	case KindObject:
		return skipObject(rd, maxLen)
	case KindArray:
		return skipArray(rd, maxLen)
	case KindString:
		rd.Next()
		_, err := lexer.ReadString(rd, maxLen)
		return err
	case KindNumber:
		_, _, err := lexer.ReadNumber(rd)
		return err
	case KindTrue:
		return lexer.ReadKeyword(rd, "true")
	case KindFalse:
		return lexer.ReadKeyword(rd, "false")
	case KindNull:
		return lexer.ReadKeyword(rd, "null")
	default:
		return lexer.Errorf(rd.Pos(), "unreachable value kind")
	}
}

func skipObject(rd *lexer.Reader, maxLen int) error {
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
		if _, err := lexer.ReadString(rd, maxLen); err != nil {
			return err
		}
		rd.SkipWhitespace()
		if ch, err := rd.Next(); err != nil || ch != ':' {
			return lexer.Errorf(rd.Pos(), "expected ':' after object key")
		}
		rd.SkipWhitespace()
		if err := SkipValue(rd, maxLen); err != nil {
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

func skipArray(rd *lexer.Reader, maxLen int) error {
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
	for {
		rd.SkipWhitespace()
		if err := SkipValue(rd, maxLen); err != nil {
			return err
		}
		rd.SkipWhitespace()
		sep, err := rd.Next()
		if err != nil {
			return lexer.Errorf(rd.Pos(), "unterminated array")
		}
		if sep == ']' {
			return nil
		}
		if sep != ',' {
			return lexer.Errorf(rd.Pos(), "expected ',' or ']' in array")
		}
	}
}
