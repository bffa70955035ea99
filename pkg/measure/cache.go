// Package measure caches text measurements. Keys compare layout-wise: two
// attributed strings that differ only in attributes that do not affect
// layout (colors, shadows, roles) share an entry.
package measure

import (
	"container/list"
	stderrors "errors"
	"hash/fnv"
	"math"
	"sync"

	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
)

// DefaultCapacity is the entry limit of caches created with a non-positive
// capacity.
const DefaultCapacity = 1024

// Key identifies a measurement.
type Key struct {
	String   attributedstring.AttributedString
	MaxWidth float64
}

// Attachment is the frame of an inline attachment.
type Attachment struct {
	Frame   graphics.Rect
	Clipped bool
}

// Measurement is the result of measuring text.
type Measurement struct {
	Size        graphics.Size
	Attachments []Attachment
}

// Stats counts cache lookups.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
}

type entry struct {
	hash  uint64
	key   Key
	value Measurement
}

// Cache is a bounded, least-recently-used measurement cache safe for
// concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	buckets  map[uint64][]*list.Element
	stats    Stats
}

// NewCache returns an empty cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		buckets:  make(map[uint64][]*list.Element),
	}
}

// Hash returns the layout-wise hash of key.
func Hash(key Key) (uint64, error) {
	h, err := attributedstring.LayoutHash(key.String)
	if err != nil {
		return 0, err
	}
	width := key.MaxWidth
	if width == 0 {
		width = 0 // fold -0
	}
	f := fnv.New64a()
	var word [16]byte
	for i := 0; i < 8; i++ {
		word[i] = byte(h >> (8 * i))
		word[8+i] = byte(math.Float64bits(width) >> (8 * i))
	}
	f.Write(word[:])
	return f.Sum64(), nil
}

// Equivalent reports whether a and b measure identically.
func Equivalent(a, b Key) (bool, error) {
	if a.MaxWidth != b.MaxWidth {
		return false, nil
	}
	return attributedstring.LayoutEquivalent(a.String, b.String)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats returns lookup counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Get returns the measurement cached for key.
func (c *Cache) Get(key Key) (Measurement, bool, error) {
	h, err := Hash(key)
	if err != nil {
		return Measurement{}, false, wrap("measure.Cache.Get", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	el, err := c.find(h, key)
	if err != nil {
		return Measurement{}, false, wrap("measure.Cache.Get", err)
	}
	if el == nil {
		c.stats.Misses++
		return Measurement{}, false, nil
	}
	c.stats.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry).value, true, nil
}

// GetOrMeasure returns the cached measurement for key, calling measure and
// caching its result on a miss. measure runs without the cache lock held,
// so concurrent misses on one key may each measure; the first result
// stored wins.
func (c *Cache) GetOrMeasure(key Key, measure func(Key) (Measurement, error)) (Measurement, error) {
	if m, ok, err := c.Get(key); err != nil || ok {
		return m, err
	}
	m, err := measure(key)
	if err != nil {
		return Measurement{}, err
	}
	h, err := Hash(key)
	if err != nil {
		return Measurement{}, wrap("measure.Cache.GetOrMeasure", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	el, err := c.find(h, key)
	if err != nil {
		return Measurement{}, wrap("measure.Cache.GetOrMeasure", err)
	}
	if el != nil {
		c.order.MoveToFront(el)
		return el.Value.(*entry).value, nil
	}
	c.buckets[h] = append(c.buckets[h], c.order.PushFront(&entry{hash: h, key: key, value: m}))
	for c.order.Len() > c.capacity {
		c.evict(c.order.Back())
	}
	return m, nil
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.buckets = make(map[uint64][]*list.Element)
	c.stats = Stats{}
}

func (c *Cache) find(h uint64, key Key) (*list.Element, error) {
	for _, el := range c.buckets[h] {
		ok, err := Equivalent(el.Value.(*entry).key, key)
		if err != nil {
			return nil, err
		}
		if ok {
			return el, nil
		}
	}
	return nil, nil
}

func (c *Cache) evict(el *list.Element) {
	e := c.order.Remove(el).(*entry)
	bucket := c.buckets[e.hash]
	for i, other := range bucket {
		if other == el {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(c.buckets, e.hash)
	} else {
		c.buckets[e.hash] = bucket
	}
	c.stats.Evictions++
}

// wrap keeps the kind of accessor errors.
func wrap(op string, err error) error {
	kind := errors.KindDecode
	var inner *errors.Error
	if stderrors.As(err, &inner) {
		kind = inner.Kind
	}
	return &errors.Error{Op: op, Kind: kind, Err: err}
}
