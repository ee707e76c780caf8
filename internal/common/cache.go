package common

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	CacheKeyBlogs = "blogs"
	CacheKeyUsers = "users"
)

// Cache wraps go-cache with a generation counter. Every Delete or Flush bumps the
// generation, so a value read from the database before an invalidation is never stored
// after it.
type Cache struct {
	*cache.Cache

	mu  sync.Mutex
	gen uint64
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{Cache: cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Generation returns the current invalidation count. Take it before reading the
// database and hand it to SetIfCurrent.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gen
}

// SetIfCurrent stores value only if nothing was invalidated since gen was taken.
func (c *Cache) SetIfCurrent(gen uint64, key string, value interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)

	return true
}

// Delete removes every given key; missing keys are ignored.
func (c *Cache) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for _, key := range keys {
		c.Cache.Delete(key)
	}
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.Cache.Flush()
}

func CacheKeyBlog(id int) string {
	return "blog:" + strconv.Itoa(id)
}

func CacheKeyUser(id int) string {
	return "user:" + strconv.Itoa(id)
}
