// Package lexer implements the shared character stream and lexical
// primitives (whitespace, strings, numbers, identifiers, regex literals)
// used by both the keep and skip parsers: decoding bytes to codepoints
// with Unicode normalization and an elastic, checkpointable lookahead
// buffer.
package lexer

import (
	"bufio"
	"io"

	"golang.org/x/text/unicode/norm"
)

// Reader presents an input byte stream as a position-tracked, checkpointable
// stream of NFC-normalized runes. It is the single source of characters for
// every parser in the engine.
//
// Steady-state memory is bounded by releasing runes behind the oldest live
// checkpoint: callers that hold a Mark for the
// duration of a token should Release it once the token is fully consumed.
type Reader struct {
	br *bufio.Reader
	buf []rune
	floor int // absolute rune index of buf[0]
	pos int // absolute rune index of the next rune to read
}

// NewReader wraps r, normalizing its UTF-8 byte stream to NFC before
// decoding runes, so stored string values and field names compare equal
// under Unicode-equivalent spellings regardless of source encoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(norm.NFC.Reader(r), 64*1024)}
}

// fill ensures at least one more rune is available at rd.pos, reading
// through EOF or a real I/O error.
func (rd *Reader) fill() error {
	for rd.pos-rd.floor >= len(rd.buf) {
		ch, _, err := rd.br.ReadRune()
		if err != nil {
			return err
		}
		rd.buf = append(rd.buf, ch)
	}
	return nil
}

// Peek returns the next rune without consuming it. It returns io.EOF when
// the stream is exhausted.
func (rd *Reader) Peek() (rune, error) {
	if err := rd.fill(); err != nil {
		return 0, err
	}
	return rd.buf[rd.pos-rd.floor], nil
}

// Next consumes and returns the next rune.
func (rd *Reader) Next() (rune, error) {
	ch, err := rd.Peek()
	if err != nil {
		return 0, err
	}
	rd.pos++
	return ch, nil
}

// Mark returns a checkpoint identifying the current position. Pass it to
// Reset to rewind, or to Release once it is no longer needed.
func (rd *Reader) Mark() int { return rd.pos }

// Reset rewinds the stream to a previously taken Mark.
func (rd *Reader) Reset(mark int) { rd.pos = mark }

// Release discards buffered runes older than mark, bounding memory use to
// the span between the oldest live Mark and the current position. It is a
// no-op if mark is not ahead of the current floor.
func (rd *Reader) Release(mark int) {
	if mark <= rd.floor {
		return
	}
	drop := mark - rd.floor
	if drop > len(rd.buf) {
		drop = len(rd.buf)
	}
	rd.buf = rd.buf[drop:]
	rd.floor += drop
}

// Pos returns the current absolute character offset, used for error
// reporting.
func (rd *Reader) Pos() int { return rd.pos }

// SkipWhitespace consumes zero or more ASCII whitespace characters.
func (rd *Reader) SkipWhitespace() {
	for {
		ch, err := rd.Peek()
		if err != nil {
			return
		}
		switch ch {
		case ' ', '\t', '\n', '\r':
			rd.pos++
		default:
			return
		}
	}
}

// AtEOF reports whether the stream has no more runes available.
func (rd *Reader) AtEOF() bool {
	_, err := rd.Peek()
	return err != nil
}
