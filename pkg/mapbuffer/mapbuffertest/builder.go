// Package mapbuffertest builds tagged binary buffers for tests and fixtures.
package mapbuffertest

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/go-drift/richtext/pkg/mapbuffer"
)

type entry struct {
	key     mapbuffer.Key
	typ     mapbuffer.Type
	value   uint64
	payload []byte
}

// Builder accumulates entries and serializes them in key order. Putting the
// same key twice keeps the last value.
type Builder struct {
	entries map[mapbuffer.Key]entry
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{entries: make(map[mapbuffer.Key]entry)}
}

func (b *Builder) put(e entry) *Builder {
	b.entries[e.key] = e
	return b
}

// PutBool stores a boolean.
func (b *Builder) PutBool(key mapbuffer.Key, v bool) *Builder {
	var n uint64
	if v {
		n = 1
	}
	return b.put(entry{key: key, typ: mapbuffer.TypeBool, value: n})
}

// PutInt stores a 32-bit integer.
func (b *Builder) PutInt(key mapbuffer.Key, v int32) *Builder {
	return b.put(entry{key: key, typ: mapbuffer.TypeInt, value: uint64(uint32(v))})
}

// PutLong stores a 64-bit integer.
func (b *Builder) PutLong(key mapbuffer.Key, v int64) *Builder {
	return b.put(entry{key: key, typ: mapbuffer.TypeLong, value: uint64(v)})
}

// PutDouble stores a float.
func (b *Builder) PutDouble(key mapbuffer.Key, v float64) *Builder {
	return b.put(entry{key: key, typ: mapbuffer.TypeDouble, value: math.Float64bits(v)})
}

// PutString stores a string.
func (b *Builder) PutString(key mapbuffer.Key, v string) *Builder {
	return b.put(entry{key: key, typ: mapbuffer.TypeString, payload: []byte(v)})
}

// PutMapBuffer stores a nested buffer.
func (b *Builder) PutMapBuffer(key mapbuffer.Key, nested *Builder) *Builder {
	return b.put(entry{key: key, typ: mapbuffer.TypeMap, payload: nested.Bytes()})
}

// PutArray stores items as a nested buffer keyed 0..n-1.
func (b *Builder) PutArray(key mapbuffer.Key, items ...*Builder) *Builder {
	return b.PutMapBuffer(key, Array(items...))
}

// Array returns a builder whose entries are the items keyed by position.
func Array(items ...*Builder) *Builder {
	arr := New()
	for i, item := range items {
		arr.PutMapBuffer(mapbuffer.Key(i), item)
	}
	return arr
}

// Bytes serializes the builder.
func (b *Builder) Bytes() []byte {
	keys := make([]int, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)

	var dynamic []byte
	buckets := make([]byte, len(keys)*mapbuffer.BucketSize)
	for i, k := range keys {
		e := b.entries[mapbuffer.Key(k)]
		value := e.value
		if e.typ == mapbuffer.TypeString || e.typ == mapbuffer.TypeMap {
			value = uint64(uint32(len(dynamic)))
			dynamic = binary.LittleEndian.AppendUint32(dynamic, uint32(len(e.payload)))
			dynamic = append(dynamic, e.payload...)
		}
		off := i * mapbuffer.BucketSize
		binary.LittleEndian.PutUint16(buckets[off:], e.key)
		binary.LittleEndian.PutUint16(buckets[off+2:], uint16(e.typ))
		binary.LittleEndian.PutUint64(buckets[off+4:], value)
	}

	out := make([]byte, mapbuffer.HeaderSize, mapbuffer.HeaderSize+len(buckets)+len(dynamic))
	binary.LittleEndian.PutUint16(out[0:], mapbuffer.Alignment)
	binary.LittleEndian.PutUint16(out[2:], uint16(len(keys)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(dynamic)))
	out = append(out, buckets...)
	return append(out, dynamic...)
}

// Build serializes and parses the builder, panicking on failure.
func (b *Builder) Build() mapbuffer.Buffer {
	buf, err := mapbuffer.Parse(b.Bytes())
	if err != nil {
		panic("mapbuffertest: " + err.Error())
	}
	return buf
}
