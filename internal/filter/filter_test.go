package filter

import (
	"testing"

	"github.com/kompass-sh/sjq/internal/jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllMatchesEveryPath(t *testing.T) {
	f := All()
	p := jsonpath.New()
	assert.True(t, f.IsMatch(p))
	assert.True(t, f.IsSubpath(p))

	p.PushField("deep")
	assert.True(t, f.IsMatch(p))
	assert.True(t, f.IsSubpath(p))
}

func TestPartsExactMatch(t *testing.T) {
	f := NewParts([]FilterPart{Branch(Literal("items")), Array(Exact(0))})

	p := jsonpath.New()
	p.PushField("items")
	p.PushIndex()

	assert.True(t, f.IsMatch(p))

	p.IncIndex()
	assert.False(t, f.IsMatch(p), "index 1 does not satisfy Exact(0)")
}

func TestPartsSubpathPrefix(t *testing.T) {
	f := NewParts([]FilterPart{Branch(Literal("a")), Branch(Literal("b"))})

	p := jsonpath.New()
	assert.True(t, f.IsSubpath(p), "root is always a subpath prefix")

	p.PushField("a")
	assert.True(t, f.IsSubpath(p))
	assert.False(t, f.IsMatch(p), "pattern has more parts than the path")

	p.PushField("wrong")
	assert.False(t, f.IsSubpath(p))
}

func TestPartsKindMismatchNeverMatches(t *testing.T) {
	f := NewParts([]FilterPart{Branch(Literal("a"))})
	p := jsonpath.New()
	p.PushIndex()
	assert.False(t, f.IsMatch(p), "a branch part never matches an index step")
}

func TestUnionIsDisjunction(t *testing.T) {
	f := NewUnion([]Filter{
			NewParts([]FilterPart{Branch(Literal("a"))}),
			NewParts([]FilterPart{Branch(Literal("b"))}),
	})

	pa := jsonpath.New()
	pa.PushField("a")
	assert.True(t, f.IsMatch(pa))

	pc := jsonpath.New()
	pc.PushField("c")
	assert.False(t, f.IsMatch(pc))
}

func TestNameMatchRegex(t *testing.T) {
	m, err := Regex("^item_[0-9]+$")
	require.NoError(t, err)
	assert.True(t, m.Matches("item_12"))
	assert.False(t, m.Matches("item_x"))
}

func TestIndexMatchRangeIsHalfOpen(t *testing.T) {
	m := Range(2, 5)
	assert.False(t, m.Matches(1))
	assert.True(t, m.Matches(2))
	assert.True(t, m.Matches(4))
	assert.False(t, m.Matches(5))
}

func TestIndexMatchSet(t *testing.T) {
	m := Set([]int64{1, 3, 5})
	assert.True(t, m.Matches(3))
	assert.False(t, m.Matches(2))
}
