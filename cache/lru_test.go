package cache

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if New[int, int](0).Capacity() != DefaultCapacity {
		t.Errorf("expected default capacity %d", DefaultCapacity)
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)
	c.Set("key1", 42)

	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	if _, ok = c.Get("nonexistent"); ok {
		t.Error("expected nonexistent key to not exist")
	}

	c.Set("key1", 43)
	if val, _ := c.Get("key1"); val != 43 {
		t.Errorf("expected replaced value 43, got %d", val)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after replace, got %d", c.Len())
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, string](3)
	var evicted []int
	c.OnEvict(func(k int, _ string) { evicted = append(evicted, k) })

	c.Set(1, "a")
	c.Set(2, "b")
	c.Set(3, "c")
	c.Get(1) // 2 is now the oldest
	c.Set(4, "d")

	if c.Contains(2) {
		t.Error("expected key 2 to be evicted")
	}
	if !slices.Equal(evicted, []int{2}) {
		t.Errorf("evicted %v, want [2]", evicted)
	}
	if got, want := c.Keys(), []int{4, 1, 3}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", c.Stats().Evictions)
	}
}

func TestCacheReplaceDoesNotEvict(t *testing.T) {
	c := New[int, int](2)
	calls := 0
	c.OnEvict(func(int, int) { calls++ })
	c.Set(1, 1)
	c.Set(1, 2)
	if calls != 0 {
		t.Errorf("replace called the eviction callback %d times", calls)
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	createCalled := 0
	create := func() int {
		createCalled++
		return 100
	}

	if val := c.GetOrCreate("key1", create); val != 100 {
		t.Errorf("expected 100, got %d", val)
	}
	if val := c.GetOrCreate("key1", create); val != 100 {
		t.Errorf("expected cached 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[int, int](10)
	var evicted []int
	c.OnEvict(func(k, _ int) { evicted = append(evicted, k) })
	for i := range 4 {
		c.Set(i, i)
	}

	if !c.Delete(2) {
		t.Error("expected Delete(2) to succeed")
	}
	if c.Delete(2) {
		t.Error("expected second Delete(2) to fail")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	if want := []int{2, 0, 1, 3}; !slices.Equal(evicted, want) {
		t.Errorf("evicted %v, want %v", evicted, want)
	}

	c.Set(7, 7)
	if v, ok := c.Get(7); !ok || v != 7 {
		t.Error("cache unusable after Clear")
	}
}

func TestCachePeek(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)
	if v, ok := c.Peek(1); !ok || v != 1 {
		t.Errorf("Peek(1) = %d, %v", v, ok)
	}
	c.Set(3, 3) // Peek did not refresh 1
	if c.Contains(1) {
		t.Error("expected key 1 to be evicted despite Peek")
	}
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 {
		t.Errorf("Peek changed stats: %+v", s)
	}
}

func TestCacheStats(t *testing.T) {
	c := New[int, int](4)
	c.Set(1, 1)
	c.Get(1)
	c.Get(1)
	c.Get(1)
	c.Get(2)

	s := c.Stats()
	if s.Hits != 3 || s.Misses != 1 {
		t.Errorf("hits %d misses %d, want 3 and 1", s.Hits, s.Misses)
	}
	if s.HitRate != 0.75 {
		t.Errorf("hit rate %v, want 0.75", s.HitRate)
	}
	c.ResetStats()
	if s := c.Stats(); s.Hits != 0 || s.Misses != 0 || s.Evictions != 0 {
		t.Errorf("ResetStats left %+v", s)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[int, int](1024)
	for i := range 1024 {
		c.Set(i, i)
	}
	b.ResetTimer()
	for i := range b.N {
		c.Get(i & 1023)
	}
}
