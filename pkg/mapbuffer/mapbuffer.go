// Package mapbuffer reads the compact tagged binary buffer used to ship
// attributed strings across the native bridge.
//
// A buffer is a sorted table of fixed-size buckets followed by a dynamic
// data area:
//
//	header  uint16 alignment (0xFE) | uint16 count | uint32 dynamic data size
//	bucket  uint16 key | uint16 type | 8 byte value     (count times)
//	dynamic data                                         (strings, nested buffers)
//
// All integers are little-endian. Strings and nested buffers store an int32
// offset into the dynamic data area, where an int32 byte length precedes the
// payload. Buffers are never copied: a Buffer is a view over the caller's
// bytes and is valid only as long as they are.
package mapbuffer

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

const (
	// Alignment is the magic value stored in the first two bytes.
	Alignment uint16 = 0xFE

	// HeaderSize is the size of the fixed header in bytes.
	HeaderSize = 8

	// BucketSize is the size of one key/type/value bucket in bytes.
	BucketSize = 12

	valueOffset = 4
)

// Type tags the kind of value stored in a bucket.
type Type uint16

const (
	TypeBool Type = iota
	TypeInt
	TypeDouble
	TypeString
	TypeMap
	TypeLong
)

// String returns a human-readable representation of the type.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeMap:
		return "map"
	case TypeLong:
		return "long"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Key identifies an entry within a buffer.
type Key = uint16

// Buffer is a read-only view over one level of a tagged binary buffer.
// The zero value is an empty buffer.
type Buffer struct {
	data  []byte
	count int
}

// Parse validates the header and bucket table of data and returns a view
// over it. Nested buffers are validated when they are retrieved.
func Parse(data []byte) (Buffer, error) {
	if len(data) < HeaderSize {
		return Buffer{}, &CorruptError{Reason: fmt.Sprintf("buffer too short: %d bytes", len(data))}
	}
	if a := binary.LittleEndian.Uint16(data[0:2]); a != Alignment {
		return Buffer{}, &CorruptError{Reason: fmt.Sprintf("bad alignment 0x%04X", a)}
	}
	count := int(binary.LittleEndian.Uint16(data[2:4]))
	dynamicSize := int64(binary.LittleEndian.Uint32(data[4:8]))
	dataStart := HeaderSize + count*BucketSize
	if dataStart > len(data) {
		return Buffer{}, &CorruptError{Reason: fmt.Sprintf("bucket table needs %d bytes, have %d", dataStart, len(data))}
	}
	if int64(dataStart)+dynamicSize > int64(len(data)) {
		return Buffer{}, &CorruptError{Reason: fmt.Sprintf("dynamic data needs %d bytes, have %d", dynamicSize, len(data)-dataStart)}
	}
	b := Buffer{data: data[:dataStart+int(dynamicSize)], count: count}
	for i := 1; i < count; i++ {
		if b.keyAt(i) <= b.keyAt(i-1) {
			return Buffer{}, &CorruptError{Reason: fmt.Sprintf("keys not ascending at bucket %d", i)}
		}
	}
	return b, nil
}

// Count returns the number of entries in the buffer.
func (b Buffer) Count() int {
	return b.count
}

// Bytes returns the bytes backing this buffer.
func (b Buffer) Bytes() []byte {
	return b.data
}

// Keys returns the entry keys in ascending order.
func (b Buffer) Keys() []Key {
	keys := make([]Key, b.count)
	for i := range keys {
		keys[i] = b.keyAt(i)
	}
	return keys
}

// Has reports whether key is present.
func (b Buffer) Has(key Key) bool {
	_, ok := b.find(key)
	return ok
}

// TypeOf returns the stored type of key.
func (b Buffer) TypeOf(key Key) (Type, error) {
	i, ok := b.find(key)
	if !ok {
		return 0, &KeyError{Key: key}
	}
	return b.typeAt(i), nil
}

// Bool returns the boolean stored under key.
func (b Buffer) Bool(key Key) (bool, error) {
	v, err := b.value(key, TypeBool)
	if err != nil {
		return false, err
	}
	return int32(binary.LittleEndian.Uint32(v)) != 0, nil
}

// Int returns the 32-bit integer stored under key.
func (b Buffer) Int(key Key) (int32, error) {
	v, err := b.value(key, TypeInt)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(v)), nil
}

// Long returns the 64-bit integer stored under key.
func (b Buffer) Long(key Key) (int64, error) {
	v, err := b.value(key, TypeLong)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(v)), nil
}

// Double returns the float stored under key.
func (b Buffer) Double(key Key) (float64, error) {
	v, err := b.value(key, TypeDouble)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v)), nil
}

// String returns the string stored under key.
func (b Buffer) String(key Key) (string, error) {
	payload, err := b.dynamic(key, TypeString)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// MapBuffer returns the nested buffer stored under key.
func (b Buffer) MapBuffer(key Key) (Buffer, error) {
	payload, err := b.dynamic(key, TypeMap)
	if err != nil {
		return Buffer{}, err
	}
	nested, err := Parse(payload)
	if err != nil {
		return Buffer{}, fmt.Errorf("key %d: %w", key, err)
	}
	return nested, nil
}

func (b Buffer) keyAt(i int) Key {
	off := HeaderSize + i*BucketSize
	return binary.LittleEndian.Uint16(b.data[off : off+2])
}

func (b Buffer) typeAt(i int) Type {
	off := HeaderSize + i*BucketSize + 2
	return Type(binary.LittleEndian.Uint16(b.data[off : off+2]))
}

func (b Buffer) valueAt(i int) []byte {
	off := HeaderSize + i*BucketSize + valueOffset
	return b.data[off : off+8]
}

func (b Buffer) find(key Key) (int, bool) {
	i := sort.Search(b.count, func(i int) bool { return b.keyAt(i) >= key })
	if i < b.count && b.keyAt(i) == key {
		return i, true
	}
	return 0, false
}

func (b Buffer) value(key Key, want Type) ([]byte, error) {
	i, ok := b.find(key)
	if !ok {
		return nil, &KeyError{Key: key}
	}
	if got := b.typeAt(i); got != want {
		return nil, &TypeError{Key: key, Want: want, Got: got}
	}
	return b.valueAt(i), nil
}

// dynamic resolves an offset-valued bucket to its length-prefixed payload.
func (b Buffer) dynamic(key Key, want Type) ([]byte, error) {
	v, err := b.value(key, want)
	if err != nil {
		return nil, err
	}
	dataStart := HeaderSize + b.count*BucketSize
	offset := int64(int32(binary.LittleEndian.Uint32(v)))
	start := int64(dataStart) + offset
	if offset < 0 || start+4 > int64(len(b.data)) {
		return nil, &CorruptError{Reason: fmt.Sprintf("key %d: offset %d outside dynamic data", key, offset)}
	}
	length := int64(int32(binary.LittleEndian.Uint32(b.data[start : start+4])))
	if length < 0 || start+4+length > int64(len(b.data)) {
		return nil, &CorruptError{Reason: fmt.Sprintf("key %d: length %d overruns buffer", key, length)}
	}
	return b.data[start+4 : start+4+length], nil
}
