package schema

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of libraries a Compiler keeps when
// constructed with a non-positive size.
const DefaultCacheSize = 64

// Compiler memoizes Parse by schema text. It is safe for concurrent use.
// Failed compilations are not cached.
type Compiler struct {
	cache  *lru.Cache
	mu     sync.Mutex
	hits   uint64
	misses uint64
}

func NewCompiler(size int) *Compiler {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Compiler{cache: lru.New(size)}
}

// Compile returns the Library for text, parsing it only on a cache miss.
func (c *Compiler) Compile(text string) (*Library, error) {
	key := blake3.Sum256([]byte(text))

	c.mu.Lock()
	if v, ok := c.cache.Get(key); ok {
		c.hits++
		c.mu.Unlock()
		Logger().Debug("schema cache hit", zap.Binary("key", key[:8]))
		return v.(*Library), nil
	}
	c.misses++
	c.mu.Unlock()

	lib, err := Parse(text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(key, lib)
	c.mu.Unlock()
	Logger().Debug("schema cache miss", zap.Binary("key", key[:8]), zap.Int("structures", lib.Len()))
	return lib, nil
}

// Stats reports cache hits and misses since construction.
func (c *Compiler) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len is the number of cached libraries.
func (c *Compiler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}
