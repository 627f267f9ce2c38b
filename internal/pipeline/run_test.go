package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runQuery(t *testing.T, query, input string) string {
	t.Helper()
	var out strings.Builder
	err := Run(context.Background(), Options{
			Query: query,
			Input: strings.NewReader(input),
			Output: &out,
			MaxTextLength: 4096,
	})
	require.NoError(t, err)
	return out.String()
}

func TestIdentityPass(t *testing.T) {
	out := runQuery(t, ".", `{"abc":1}`+"\n"+`{"arthur":"pomme","1":1}`)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.JSONEq(t, `{"abc":1}`, lines[0])
	assert.JSONEq(t, `{"arthur":"pomme","1":1}`, lines[1])
}

func TestFieldFilter(t *testing.T) {
	out := runQuery(t, ".a", `{"a":1}{"a":2}{"b":3}`)
	assert.Equal(t, "1\n2\n", out)
}

func TestMeanAggregation(t *testing.T) {
	out := runQuery(t, ".abc | mean.", `{"abc":1}{"abc":2}{"abc":-1.1}{"abc":1234}{"abc":-34.837}`)
	assert.Equal(t, "240.2126\n", out)
}

func TestNestedSelectThenMean(t *testing.T) {
	input := `{"a":{"b":1,"a":10000}}{"b":-10000,"a":{"b":-1.1}}{"a":{"b":1234}}{"a":{"b":2}}{"a":{"b":-34.837}}`
	out := runQuery(t, ". | mean.a.b", input)
	assert.Equal(t, "240.2126\n", out)
}

func TestPipeWhitespaceTolerance(t *testing.T) {
	input := `{"abc":1}{"abc":2}{"abc":-1.1}{"abc":1234}{"abc":-34.837}`
	variants := []string{
		".abc|mean.",
		".abc |mean.",
		".abc| mean.",
		".abc | mean.",
	}
	var first string
	for i, q := range variants {
		out := runQuery(t, q, input)
		if i == 0 {
			first = out
		} else {
			assert.Equal(t, first, out, q)
		}
	}
}

func TestSkipIdempotence(t *testing.T) {
	out := runQuery(t, ".nonexistent", `{"a":1,"b":[1,2,3],"c":{"d":{"e":5}}}`+`{"a":2}`)
	assert.Empty(t, out)
}

func TestSumZeroValuesEmitsZero(t *testing.T) {
	out := runQuery(t, ".missing | sum.", `{"a":1}{"a":2}`)
	assert.Equal(t, "0\n", out)
}

func TestMeanZeroValuesEmitsNothing(t *testing.T) {
	out := runQuery(t, ".missing | mean.", `{"a":1}{"a":2}`)
	assert.Empty(t, out)
}

func TestUnionOrderIrrelevantToSet(t *testing.T) {
	input := `{"a":1,"b":2}`
	outAB := runQuery(t, ".a,.b", input)
	outBA := runQuery(t, ".b,.a", input)
	linesAB := strings.Fields(outAB)
	linesBA := strings.Fields(outBA)
	assert.ElementsMatch(t, linesAB, linesBA)
}

func TestQuerySyntaxErrorIsInitError(t *testing.T) {
	var out strings.Builder
	err := Run(context.Background(), Options{
			Query: ".a |",
			Input: strings.NewReader(`{}`),
			Output: &out,
			MaxTextLength: 4096,
	})
	require.Error(t, err)
	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, CategoryInit, engineErr.Category)
	assert.Equal(t, ExitError, engineErr.Code)
}

func TestUnknownStageIsInitError(t *testing.T) {
	var out strings.Builder
	err := Run(context.Background(), Options{
			Query: ". | bogus",
			Input: strings.NewReader(`{}`),
			Output: &out,
			MaxTextLength: 4096,
	})
	require.Error(t, err)
	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, CategoryInit, engineErr.Category)
}

func TestStrictMissingValueIsPipelineError(t *testing.T) {
	var out strings.Builder
	err := Run(context.Background(), Options{
			Query: ". | sum.missing",
			Input: strings.NewReader(`{"a":1}`),
			Output: &out,
			MaxTextLength: 4096,
			Strict: true,
	})
	require.Error(t, err)
	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, CategoryPipeline, engineErr.Category)
}

func TestMalformedInputIsParseError(t *testing.T) {
	var out strings.Builder
	err := Run(context.Background(), Options{
			Query: ".",
			Input: strings.NewReader(`{"a":`),
			Output: &out,
			MaxTextLength: 4096,
	})
	require.Error(t, err)
	var engineErr *EngineError
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, CategoryParse, engineErr.Category)
}

func TestPrettyOutput(t *testing.T) {
	var out strings.Builder
	err := Run(context.Background(), Options{
			Query: ".",
			Input: strings.NewReader(`{"a":1}`),
			Output: &out,
			MaxTextLength: 4096,
			Pretty: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
}
