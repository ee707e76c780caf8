package common

import "testing"

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyBlogs, []string{"a"})

	if _, ok := cache.Get(CacheKeyBlogs); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_Delete(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyBlogs, "blogs")
	cache.Set(CacheKeyUsers, "users")
	cache.Set(CacheKeyUser(1), "user")

	cache.Delete(CacheKeyBlogs, CacheKeyUsers, "missing")

	if _, ok := cache.Get(CacheKeyBlogs); ok {
		t.Error("expected blogs key to be deleted")
	}
	if _, ok := cache.Get(CacheKeyUsers); ok {
		t.Error("expected users key to be deleted")
	}
	if _, ok := cache.Get(CacheKeyUser(1)); !ok {
		t.Error("expected user key to survive")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyBlog(7), "value")
	cache.Flush()

	if _, ok := cache.Get(CacheKeyBlog(7)); ok {
		t.Error("expected cache to be flushed")
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKeyBlog(3); got != "blog:3" {
		t.Errorf("unexpected blog key %q", got)
	}
	if got := CacheKeyUser(12); got != "user:12" {
		t.Errorf("unexpected user key %q", got)
	}
}

func TestCache_SetIfCurrent(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	gen := cache.Generation()
	if !cache.SetIfCurrent(gen, CacheKeyBlogs, "fresh") {
		t.Fatal("expected value to be stored")
	}

	// a write lands between the read and the store
	gen = cache.Generation()
	cache.Delete(CacheKeyBlogs)

	if cache.SetIfCurrent(gen, CacheKeyBlogs, "stale") {
		t.Error("expected stale value to be rejected")
	}
	if _, ok := cache.Get(CacheKeyBlogs); ok {
		t.Error("expected no cached value after invalidation")
	}

	gen = cache.Generation()
	cache.Flush()
	if cache.SetIfCurrent(gen, CacheKeyUsers, "stale") {
		t.Error("expected flush to invalidate the generation")
	}
}
