package stage

import (
	"strings"
	"testing"

	"github.com/kompass-sh/sjq/internal/querylang"
	"github.com/kompass-sh/sjq/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name string) querylang.PathExpr {
	return querylang.PathExpr{Steps: []querylang.PathStep{{Kind: querylang.PathField, Name: name}}}
}

func obj(k string, v value.Value) value.Value {
	o := value.EmptyObject()
	o.Set(k, v)
	return o
}

func TestWriteStageCompact(t *testing.T) {
	var b strings.Builder
	w := NewWrite(&b, false)
	require.NoError(t, w.Ingest(value.NumberValue(value.Int64(1))))
	require.NoError(t, w.Finish())
	assert.Equal(t, "1\n", b.String())
}

func TestSelectForwardsSubValue(t *testing.T) {
	var b strings.Builder
	sel := NewSelect(field("a"), NewWrite(&b, false))
	require.NoError(t, sel.Ingest(obj("a", value.NumberValue(value.Int64(5)))))
	require.NoError(t, sel.Finish())
	assert.Equal(t, "5\n", b.String())
}

func TestSelectDropsMissingPathSilently(t *testing.T) {
	var b strings.Builder
	sel := NewSelect(field("missing"), NewWrite(&b, false))
	require.NoError(t, sel.Ingest(obj("a", value.NumberValue(value.Int64(5)))))
	require.NoError(t, sel.Finish())
	assert.Empty(t, b.String())
}

func TestAddFieldOverwritesAndForwards(t *testing.T) {
	var b strings.Builder
	af := NewAddField("tag", LiteralFieldValue(value.StringValue("x")), NewWrite(&b, false))
	require.NoError(t, af.Ingest(obj("a", value.NumberValue(value.Int64(1)))))
	require.NoError(t, af.Finish())
	assert.Equal(t, `{"a":1,"tag":"x"}`+"\n", b.String())
}

func TestAddFieldFromPathCopiesValue(t *testing.T) {
	var b strings.Builder
	af := NewAddField("copy", PathFieldValue(field("a")), NewWrite(&b, false))
	require.NoError(t, af.Ingest(obj("a", value.NumberValue(value.Int64(7)))))
	require.NoError(t, af.Finish())
	assert.Equal(t, `{"a":7,"copy":7}`+"\n", b.String())
}

func TestAddFieldOnNonObjectFails(t *testing.T) {
	af := NewAddField("tag", LiteralFieldValue(value.StringValue("x")), NewWrite(&strings.Builder{}, false))
	err := af.Ingest(value.NumberValue(value.Int64(1)))
	assert.Error(t, err)
	var notObj *NotAnObjectError
	assert.ErrorAs(t, err, &notObj)
}

func TestSumAccumulatesAndResetsAfterFinish(t *testing.T) {
	var b strings.Builder
	s := NewSum(field("n"), false, NewWrite(&b, false))
	require.NoError(t, s.Ingest(obj("n", value.NumberValue(value.Int64(1)))))
	require.NoError(t, s.Ingest(obj("n", value.NumberValue(value.Int64(2)))))
	require.NoError(t, s.Finish())
	assert.Equal(t, "3\n", b.String())

	b.Reset()
	require.NoError(t, s.Finish())
	assert.Equal(t, "0\n", b.String(), "Finish resets the accumulator")
}

func TestSumPromotesToFloat(t *testing.T) {
	var b strings.Builder
	s := NewSum(querylang.PathExpr{}, false, NewWrite(&b, false))
	require.NoError(t, s.Ingest(value.NumberValue(value.Int64(1))))
	require.NoError(t, s.Ingest(value.NumberValue(value.Float64(1.5))))
	require.NoError(t, s.Finish())
	assert.Equal(t, "2.5\n", b.String())
}

func TestSumNonStrictSkipsMissing(t *testing.T) {
	var b strings.Builder
	s := NewSum(field("n"), false, NewWrite(&b, false))
	require.NoError(t, s.Ingest(obj("other", value.NullValue())))
	require.NoError(t, s.Finish())
	assert.Equal(t, "0\n", b.String())
}

func TestSumStrictFailsOnMissing(t *testing.T) {
	s := NewSum(field("n"), true, NewWrite(&strings.Builder{}, false))
	err := s.Ingest(obj("other", value.NullValue()))
	assert.Error(t, err)
	var missing *MissingValueError
	assert.ErrorAs(t, err, &missing)
}

func TestSumNotANumber(t *testing.T) {
	s := NewSum(field("n"), false, NewWrite(&strings.Builder{}, false))
	err := s.Ingest(obj("n", value.StringValue("x")))
	assert.Error(t, err)
	var notNum *NotANumberError
	assert.ErrorAs(t, err, &notNum)
}

func TestMeanEmitsAverage(t *testing.T) {
	var b strings.Builder
	m := NewMean(querylang.PathExpr{}, false, NewWrite(&b, false))
	for _, n := range []int64{1, 2, 3} {
		require.NoError(t, m.Ingest(value.NumberValue(value.Int64(n))))
	}
	require.NoError(t, m.Finish())
	assert.Equal(t, "2\n", b.String())
}

func TestMeanZeroCountEmitsNothing(t *testing.T) {
	var b strings.Builder
	m := NewMean(field("missing"), false, NewWrite(&b, false))
	require.NoError(t, m.Finish())
	assert.Empty(t, b.String())
}

func TestRegistryUnknownStage(t *testing.T) {
	_, err := Build(nil, []querylang.StageSpec{{Name: "bogus"}}, NewWrite(&strings.Builder{}, false), BuildOptions{})
	assert.Error(t, err)
	var unknown *UnknownStageError
	assert.ErrorAs(t, err, &unknown)
}

func TestRegistryArgCountMismatch(t *testing.T) {
	_, err := Build(nil, []querylang.StageSpec{{Name: "select"}}, NewWrite(&strings.Builder{}, false), BuildOptions{})
	assert.Error(t, err)
	var mismatch *ArgCountError
	assert.ErrorAs(t, err, &mismatch)
}

func TestRegistryArgTypeMismatch(t *testing.T) {
	specs := []querylang.StageSpec{{Name: "select", Args: []querylang.StageArg{{Kind: querylang.ArgNumber, Num: value.Int64(1)}}}}
	_, err := Build(nil, specs, NewWrite(&strings.Builder{}, false), BuildOptions{})
	assert.Error(t, err)
	var typeErr *ArgTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestRegistryBuildsChainInOrder(t *testing.T) {
	var b strings.Builder
	specs := []querylang.StageSpec{
		{Name: "select", Args: []querylang.StageArg{{Kind: querylang.ArgPath, Path: field("a")}}},
	}
	head, err := Build(nil, specs, NewWrite(&b, false), BuildOptions{})
	require.NoError(t, err)
	require.NoError(t, head.Ingest(obj("a", value.NumberValue(value.Int64(9)))))
	require.NoError(t, head.Finish())
	assert.Equal(t, "9\n", b.String())
}
