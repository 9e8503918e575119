package cache

// DefaultCapacity is the capacity used when New is given a non-positive one.
const DefaultCapacity = 256

// Stats are the counters of an LRU.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}

// LRU is a fixed-capacity cache evicting the least recently used entry.
//
// Features:
//   - Get and Set in O(1)
//   - Zero allocations on cache hit
//   - Optional eviction callback, also called by Delete and Clear
type LRU[K comparable, V any] struct {
	entries  map[K]*lruNode[K, V]
	list     lruList[K, V]
	capacity int
	onEvict  func(K, V)

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates an LRU holding at most capacity entries.
// If capacity <= 0, DefaultCapacity is used.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &LRU[K, V]{
		entries:  make(map[K]*lruNode[K, V], capacity),
		capacity: capacity,
	}
	c.list.init()
	return c
}

// OnEvict sets the function called with every entry that leaves the cache
// other than by replacement in Set.
func (c *LRU[K, V]) OnEvict(fn func(key K, value V)) { c.onEvict = fn }

// Get retrieves a cached value and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.list.moveToFront(n)
	c.hits++
	return n.value, true
}

// Peek retrieves a cached value without touching its recency or the
// statistics.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// Contains reports whether key is cached.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Set stores a value, evicting the oldest entries beyond capacity. An
// existing entry is replaced without calling the eviction callback.
func (c *LRU[K, V]) Set(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.list.moveToFront(n)
		return
	}
	for c.list.len >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = c.list.pushFront(key, value)
}

// GetOrCreate returns the cached value or stores the one returned by create.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := create()
	c.Set(key, v)
	return v
}

// Delete removes an entry, calling the eviction callback, and reports
// whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	n, ok := c.entries[key]
	if !ok {
		return false
	}
	c.list.remove(n)
	delete(c.entries, key)
	c.evicted(n)
	return true
}

// Clear removes every entry, calling the eviction callback from the oldest
// to the newest.
func (c *LRU[K, V]) Clear() {
	for c.list.len > 0 {
		n := c.list.back()
		c.list.remove(n)
		delete(c.entries, n.key)
		c.evicted(n)
	}
}

// Keys returns the keys from the most to the least recently used.
func (c *LRU[K, V]) Keys() []K {
	keys := make([]K, 0, c.list.len)
	for n := c.list.root.next; n != &c.list.root; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return c.list.len }

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Stats returns the current statistics.
func (c *LRU[K, V]) Stats() Stats {
	var hitRate float64
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Len:       c.list.len,
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		HitRate:   hitRate,
		Evictions: c.evictions,
	}
}

// ResetStats resets all statistics counters to zero.
func (c *LRU[K, V]) ResetStats() {
	c.hits, c.misses, c.evictions = 0, 0, 0
}

func (c *LRU[K, V]) evictOldest() {
	n := c.list.back()
	if n == nil {
		return
	}
	c.list.remove(n)
	delete(c.entries, n.key)
	c.evictions++
	c.evicted(n)
}

func (c *LRU[K, V]) evicted(n *lruNode[K, V]) {
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
}

// lruNode is an entry of the recency list.
type lruNode[K comparable, V any] struct {
	key        K
	value      V
	prev, next *lruNode[K, V]
}

// lruList is a circular doubly-linked list with a sentinel root; the front
// is the most recently used entry.
type lruList[K comparable, V any] struct {
	root lruNode[K, V]
	len  int
}

func (l *lruList[K, V]) init() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}

func (l *lruList[K, V]) pushFront(key K, value V) *lruNode[K, V] {
	n := &lruNode[K, V]{key: key, value: value}
	l.insertAfter(n, &l.root)
	l.len++
	return n
}

func (l *lruList[K, V]) insertAfter(n, at *lruNode[K, V]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

func (l *lruList[K, V]) unlink(n *lruNode[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (l *lruList[K, V]) remove(n *lruNode[K, V]) {
	l.unlink(n)
	n.prev, n.next = nil, nil
	l.len--
}

func (l *lruList[K, V]) moveToFront(n *lruNode[K, V]) {
	if l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertAfter(n, &l.root)
}

func (l *lruList[K, V]) back() *lruNode[K, V] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}
