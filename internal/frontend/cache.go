package frontend

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
)

// Key identifies an analysis by unit name, source text and last stage.
type Key string

// NewKey hashes the inputs of an analysis.
func NewKey(name, source string, last Stage) Key {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(int(last))))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// CacheStats exposes basic metrics.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Entries   int64
	Evictions int64
}

// Cache is a thread-safe LRU cache of analyzed units with a max entry count.
// Units are immutable once built, so a cached unit is shared by every caller.
type Cache struct {
	mu       sync.Mutex
	capacity int
	head     *cacheNode
	tail     *cacheNode
	table    map[Key]*cacheNode
	stats    CacheStats
}

type cacheNode struct {
	key  Key
	unit *Unit
	prev *cacheNode
	next *cacheNode
}

// NewCache creates a new cache with the given capacity (entries). If capacity<=0, defaults to 64.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 64
	}
	return &Cache{capacity: capacity, table: make(map[Key]*cacheNode)}
}

func (c *Cache) unlink(n *cacheNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

func (c *Cache) pushFront(n *cacheNode) {
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

// Get returns the unit stored under key and marks it most recently used.
func (c *Cache) Get(key Key) (*Unit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.table[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.unlink(n)
	c.pushFront(n)
	c.stats.Hits++
	return n.unit, true
}

// Put stores unit under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache) Put(key Key, unit *Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.table[key]; ok {
		n.unit = unit
		c.unlink(n)
		c.pushFront(n)
		return
	}
	n := &cacheNode{key: key, unit: unit}
	c.pushFront(n)
	c.table[key] = n
	for len(c.table) > c.capacity {
		victim := c.tail
		c.unlink(victim)
		delete(c.table, victim.key)
		c.stats.Evictions++
	}
	c.stats.Entries = int64(len(c.table))
}

// Invalidate drops key from the cache.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.table[key]; ok {
		c.unlink(n)
		delete(c.table, key)
		c.stats.Entries = int64(len(c.table))
	}
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
