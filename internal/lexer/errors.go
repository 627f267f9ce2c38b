package lexer

import "fmt"

// ParseError is a fatal lexical/syntactic error raised while reading the
// input character stream: unexpected token, unterminated string, number
// overflow, or text-length exceeded.
// Position is the absolute character offset at which the error was
// detected, reported to satisfy requirement that lexer errors
// include position.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Msg)
}

// Errorf builds a ParseError at the given position.
func Errorf(pos int, format string, args...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
