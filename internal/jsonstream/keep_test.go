package jsonstream

import (
	"strings"
	"testing"

	"github.com/kompass-sh/sjq/internal/lexer"
	"github.com/kompass-sh/sjq/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) value.Value {
	t.Helper()
	rd := lexer.NewReader(strings.NewReader(text))
	v, err := ParseValue(rd, 4096)
	require.NoError(t, err)
	return v
}

func TestParseValueScalars(t *testing.T) {
	assert.True(t, parse(t, "null").Equal(value.NullValue()))
	assert.True(t, parse(t, "true").Equal(value.BoolValue(true)))
	assert.True(t, parse(t, "false").Equal(value.BoolValue(false)))
	assert.True(t, parse(t, `"hi"`).Equal(value.StringValue("hi")))
	assert.True(t, parse(t, "42").Equal(value.NumberValue(value.Int64(42))))
	assert.True(t, parse(t, "4.5").Equal(value.NumberValue(value.Float64(4.5))))
}

func TestParseValueObject(t *testing.T) {
	v := parse(t, `{"a": 1, "b": [1, 2]}`)
	assert.Equal(t, value.Object, v.Kind)

	a, ok := v.Field("a")
	require.True(t, ok)
	assert.True(t, a.Equal(value.NumberValue(value.Int64(1))))

	b, ok := v.Field("b")
	require.True(t, ok)
	assert.Equal(t, value.Array, b.Kind)
	assert.Len(t, b.Arr, 2)
}

func TestParseValueEmptyContainers(t *testing.T) {
	assert.True(t, parse(t, "{}").Equal(value.EmptyObject()))
	assert.True(t, parse(t, "[]").Equal(value.EmptyArray()))
}

func TestParseValueNestedArray(t *testing.T) {
	v := parse(t, `[[1,2],[3]]`)
	assert.Len(t, v.Arr, 2)
	assert.Len(t, v.Arr[0].Arr, 2)
	assert.Len(t, v.Arr[1].Arr, 1)
}

func TestParseValueDuplicateKeyLastWins(t *testing.T) {
	v := parse(t, `{"a": 1, "a": 2}`)
	assert.Len(t, v.Obj, 1)
	a, _ := v.Field("a")
	assert.True(t, a.Equal(value.NumberValue(value.Int64(2))))
}

func TestParseValueMalformedObject(t *testing.T) {
	rd := lexer.NewReader(strings.NewReader(`{"a": 1,}`))
	_, err := ParseValue(rd, 4096)
	assert.Error(t, err)
}

func TestParseValueTrailingWhitespaceTolerated(t *testing.T) {
	rd := lexer.NewReader(strings.NewReader(" { \"a\": 1 } "))
	v, err := ParseValue(rd, 4096)
	require.NoError(t, err)
	a, ok := v.Field("a")
	require.True(t, ok)
	assert.True(t, a.Equal(value.NumberValue(value.Int64(1))))
}

func TestParseValueIntegerOverflowIsError(t *testing.T) {
	rd := lexer.NewReader(strings.NewReader("99999999999999999999"))
	_, err := ParseValue(rd, 4096)
	assert.Error(t, err)
}
