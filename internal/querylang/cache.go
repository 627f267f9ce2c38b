package querylang

import (
	"sync"

	"github.com/kompass-sh/sjq/internal/filter"
	"github.com/zeebo/xxh3"
)

// compiled bundles the result of a successful Compile call.
type compiled struct {
	filter filter.Filter
	stages []StageSpec
}

// Cache memoizes Compile by an xxh3 hash of the query text and max length,
// so repeated invocations of an identical query — the common case for a
// saved profile () or repeated MCP tool calls
// () — skip recompilation. It is safe for concurrent use,
// which matters once serve-mcp runs multiple engine instances at once.
type Cache struct {
	mu sync.RWMutex
	byKey map[uint64]compiled
}

// NewCache returns an empty compiled-query cache.
func NewCache() *Cache {
	return &Cache{byKey: make(map[uint64]compiled)}
}

// Compile returns the cached compilation of query if present, compiling and
// storing it otherwise. A cache hit never re-invokes the parser.
func (c *Cache) Compile(query string, maxLen int) (filter.Filter, []StageSpec, error) {
	key := cacheKey(query, maxLen)

	c.mu.RLock()
	if got, ok := c.byKey[key]; ok {
		c.mu.RUnlock()
		return got.filter, got.stages, nil
	}
	c.mu.RUnlock()

	f, stages, err := Compile(query, maxLen)
	if err != nil {
		return filter.Filter{}, nil, err
	}

	c.mu.Lock()
	c.byKey[key] = compiled{filter: f, stages: stages}
	c.mu.Unlock()

	return f, stages, nil
}

func cacheKey(query string, maxLen int) uint64 {
	h := xxh3.New()
	h.WriteString(query)
	var lenBytes [8]byte
	for i := range lenBytes {
		lenBytes[i] = byte(maxLen >> (8 * i))
	}
	h.Write(lenBytes[:])
	return h.Sum64()
}
