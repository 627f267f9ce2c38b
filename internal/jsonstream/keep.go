package jsonstream

import (
	"strconv"

	"github.com/kompass-sh/sjq/internal/lexer"
	"github.com/kompass-sh/sjq/internal/value"
)

// ParseValue fully materializes the JSON value starting at the reader's
// current position into a value.Value. It is
// used whenever the selective dispatcher decides the current path is a
// match: from there down, everything is kept.
func ParseValue(rd *lexer.Reader, maxLen int) (value.Value, error) {
	rd.SkipWhitespace()
	kind, err := PeekKind(rd)
	if err != nil {
		return value.Value{}, err
	}
	switch kind {
	case KindObject:
		return parseObject(rd, maxLen)
	case KindArray:
		return parseArray(rd, maxLen)
	case KindString:
		rd.Next()
		s, err := lexer.ReadString(rd, maxLen)
		if err != nil {
			return value.Value{}, err
		}
		return value.StringValue(s), nil
	case KindNumber:
		return parseNumber(rd)
	case KindTrue:
		if err := lexer.ReadKeyword(rd, "true"); err != nil {
			return value.Value{}, err
		}
		return value.BoolValue(true), nil
	case KindFalse:
		if err := lexer.ReadKeyword(rd, "false"); err != nil {
			return value.Value{}, err
		}
		return value.BoolValue(false), nil
	case KindNull:
		if err := lexer.ReadKeyword(rd, "null"); err != nil {
			return value.Value{}, err
		}
		return value.NullValue(), nil
	default:
		return value.Value{}, lexer.Errorf(rd.Pos(), "unreachable value kind")
	}
}

func parseNumber(rd *lexer.Reader) (value.Value, error) {
	text, kind, err := lexer.ReadNumber(rd)
	if err != nil {
		return value.Value{}, err
	}
	if kind == lexer.IntegerNumber {
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// ReadNumber already validated the lexical shape, so the only
			// way ParseInt fails here is overflowing int64; that is a
			// parse error, not a silent promotion to float.
			return value.Value{}, lexer.Errorf(rd.Pos(), "integer %q overflows 64 bits", text)
		}
		return value.NumberValue(value.Int64(n)), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return value.Value{}, lexer.Errorf(rd.Pos(), "invalid number %q: %v", text, err)
	}
	return value.NumberValue(value.Float64(f)), nil
}

func parseObject(rd *lexer.Reader, maxLen int) (value.Value, error) {
	rd.Next() // consume '{'
	obj := value.EmptyObject()
	rd.SkipWhitespace()
	ch, err := rd.Peek()
	if err != nil {
		return value.Value{}, lexer.Errorf(rd.Pos(), "unterminated object")
	}
	if ch == '}' {
		rd.Next()
		return obj, nil
	}
	for {
		rd.SkipWhitespace()
		ch, err := rd.Next()
		if err != nil || ch != '"' {
			return value.Value{}, lexer.Errorf(rd.Pos(), "expected object key")
		}
		key, err := lexer.ReadString(rd, maxLen)
		if err != nil {
			return value.Value{}, err
		}
		rd.SkipWhitespace()
		if ch, err := rd.Next(); err != nil || ch != ':' {
			return value.Value{}, lexer.Errorf(rd.Pos(), "expected ':' after object key")
		}
		rd.SkipWhitespace()
		val, err := ParseValue(rd, maxLen)
		if err != nil {
			return value.Value{}, err
		}
		obj.Set(key, val)

		rd.SkipWhitespace()
		sep, err := rd.Next()
		if err != nil {
			return value.Value{}, lexer.Errorf(rd.Pos(), "unterminated object")
		}
		if sep == '}' {
			return obj, nil
		}
		if sep != ',' {
			return value.Value{}, lexer.Errorf(rd.Pos(), "expected ',' or '}' in object")
		}
	}
}

func parseArray(rd *lexer.Reader, maxLen int) (value.Value, error) {
	rd.Next() // consume '['
	arr := value.EmptyArray()
	rd.SkipWhitespace()
	ch, err := rd.Peek()
	if err != nil {
		return value.Value{}, lexer.Errorf(rd.Pos(), "unterminated array")
	}
	if ch == ']' {
		rd.Next()
		return arr, nil
	}
	for {
		rd.SkipWhitespace()
		val, err := ParseValue(rd, maxLen)
		if err != nil {
			return value.Value{}, err
		}
		arr.Arr = append(arr.Arr, val)

		rd.SkipWhitespace()
		sep, err := rd.Next()
		if err != nil {
			return value.Value{}, lexer.Errorf(rd.Pos(), "unterminated array")
		}
		if sep == ']' {
			return arr, nil
		}
		if sep != ',' {
			return value.Value{}, lexer.Errorf(rd.Pos(), "expected ',' or ']' in array")
		}
	}
}
