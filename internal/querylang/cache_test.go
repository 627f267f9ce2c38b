package querylang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReturnsEquivalentCompilation(t *testing.T) {
	c := NewCache()
	f1, stages1, err := c.Compile(".a | mean.", 4096)
	require.NoError(t, err)
	f2, stages2, err := c.Compile(".a | mean.", 4096)
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
	assert.Equal(t, stages1, stages2)
}

func TestCacheKeysByMaxLenToo(t *testing.T) {
	key1 := cacheKey(".a", 100)
	key2 := cacheKey(".a", 200)
	assert.NotEqual(t, key1, key2)
}

func TestCachePropagatesCompileErrors(t *testing.T) {
	c := NewCache()
	_, _, err := c.Compile(".a |", 4096)
	assert.Error(t, err)
}
