package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPeekNextPos(t *testing.T) {
	rd := NewReader(strings.NewReader("ab"))
	ch, err := rd.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', ch)
	assert.Equal(t, 0, rd.Pos())

	ch, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, 'a', ch)
	assert.Equal(t, 1, rd.Pos())
}

func TestReaderMarkReset(t *testing.T) {
	rd := NewReader(strings.NewReader("hello"))
	mark := rd.Mark()
	rd.Next()
	rd.Next()
	rd.Reset(mark)
	ch, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, 'h', ch)
}

func TestReaderSkipWhitespace(t *testing.T) {
	rd := NewReader(strings.NewReader(" \t\nx"))
	rd.SkipWhitespace()
	ch, err := rd.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'x', ch)
}

func TestReaderAtEOF(t *testing.T) {
	rd := NewReader(strings.NewReader(""))
	assert.True(t, rd.AtEOF())
}

func TestReaderNFCNormalization(t *testing.T) {
	// "e" + combining acute accent (NFD) should normalize to the precomposed
	// "é" (NFC) as it is decoded.
	decomposed := "é"
	rd := NewReader(strings.NewReader(decomposed))
	var out []rune
	for {
		ch, err := rd.Next()
		if err != nil {
			break
		}
		out = append(out, ch)
	}
	assert.Equal(t, []rune("é"), out)
}

func TestReadStringSimple(t *testing.T) {
	rd := NewReader(strings.NewReader(`hello"`))
	s, err := ReadString(rd, 100)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestReadStringEscapes(t *testing.T) {
	rd := NewReader(strings.NewReader(`a\nb\tc\"d"`))
	s, err := ReadString(rd, 100)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\"d", s)
}

func TestReadStringUnicodeEscape(t *testing.T) {
	rd := NewReader(strings.NewReader("\\u0041\""))
	s, err := ReadString(rd, 100)
	require.NoError(t, err)
	assert.Equal(t, "A", s)
}

func TestReadStringUnterminated(t *testing.T) {
	rd := NewReader(strings.NewReader(`abc`))
	_, err := ReadString(rd, 100)
	assert.Error(t, err)
}

func TestReadStringExceedsMaxLen(t *testing.T) {
	rd := NewReader(strings.NewReader(`abcdef"`))
	_, err := ReadString(rd, 3)
	assert.Error(t, err)
}

func TestReadIdentifier(t *testing.T) {
	rd := NewReader(strings.NewReader("field_1 rest"))
	id, err := ReadIdentifier(rd, 100)
	require.NoError(t, err)
	assert.Equal(t, "field_1", id)
}

func TestReadIdentifierMustStartWithLetter(t *testing.T) {
	rd := NewReader(strings.NewReader("1abc"))
	_, err := ReadIdentifier(rd, 100)
	assert.Error(t, err)
}

func TestReadRegexLiteral(t *testing.T) {
	rd := NewReader(strings.NewReader(`^a\/b$/`))
	pattern, err := ReadRegexLiteral(rd, 100)
	require.NoError(t, err)
	assert.Equal(t, `^a/b$`, pattern)
}

func TestReadNumberInteger(t *testing.T) {
	rd := NewReader(strings.NewReader("-42,"))
	text, kind, err := ReadNumber(rd)
	require.NoError(t, err)
	assert.Equal(t, "-42", text)
	assert.Equal(t, IntegerNumber, kind)
}

func TestReadNumberFloat(t *testing.T) {
	rd := NewReader(strings.NewReader("3.14e-2]"))
	text, kind, err := ReadNumber(rd)
	require.NoError(t, err)
	assert.Equal(t, "3.14e-2", text)
	assert.Equal(t, FloatNumber, kind)
}

func TestReadNumberRequiresDigit(t *testing.T) {
	rd := NewReader(strings.NewReader("-"))
	_, _, err := ReadNumber(rd)
	assert.Error(t, err)
}

func TestReadKeywordMismatchResets(t *testing.T) {
	rd := NewReader(strings.NewReader("nul,"))
	mark := rd.Mark()
	err := ReadKeyword(rd, "null")
	assert.Error(t, err)
	assert.Equal(t, mark, rd.Pos(), "a failed keyword match rewinds the reader")
}

func TestParseErrorMessage(t *testing.T) {
	err := Errorf(7, "bad token %q", "x")
	assert.Equal(t, `parse error at position 7: bad token "x"`, err.Error())
}
