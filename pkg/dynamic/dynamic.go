// Package dynamic reads heterogeneous key-value trees: the shape produced by
// decoding JSON or YAML into interface values.
//
// A Map wraps map[string]any and an Array wraps []any. Neither copies the
// underlying value; both are read-only views.
package dynamic

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrKeyNotFound is matched by every KeyError via errors.Is.
var ErrKeyNotFound = errors.New("dynamic: key not found")

// KeyError reports a lookup of an absent key.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("dynamic: key %q not found", e.Key)
}

// Is reports whether target is ErrKeyNotFound.
func (e *KeyError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// TypeError reports a value of the wrong kind.
type TypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("dynamic: key %q holds %T, not %s", e.Key, e.Got, e.Want)
}

// Map is a read-only view over a string-keyed map.
type Map struct {
	m map[string]any
}

// Array is a read-only view over a positional list.
type Array struct {
	a []any
}

// NewMap wraps m without copying it.
func NewMap(m map[string]any) Map {
	return Map{m: m}
}

// NewArray wraps a without copying it.
func NewArray(a []any) Array {
	return Array{a: a}
}

// FromJSON decodes a JSON document whose root is an object.
func FromJSON(data []byte) (Map, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return Map{}, err
	}
	return NewMap(root), nil
}

// FromYAML decodes a YAML document whose root is a mapping.
func FromYAML(data []byte) (Map, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Map{}, err
	}
	return NewMap(root), nil
}

// Raw returns the wrapped map.
func (m Map) Raw() map[string]any {
	return m.m
}

// Len returns the number of keys.
func (m Map) Len() int {
	return len(m.m)
}

// HasKey reports whether key is present. A key mapped to null counts as
// absent.
func (m Map) HasKey(key string) bool {
	v, ok := m.m[key]
	return ok && v != nil
}

// Value returns the raw value under key.
func (m Map) Value(key string) (any, error) {
	v, ok := m.m[key]
	if !ok || v == nil {
		return nil, &KeyError{Key: key}
	}
	return v, nil
}

// String returns the string under key.
func (m Map) String(key string) (string, error) {
	v, err := m.Value(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// Bool returns the boolean under key.
func (m Map) Bool(key string) (bool, error) {
	v, err := m.Value(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Key: key, Want: "bool", Got: v}
	}
	return b, nil
}

// Double returns the number under key as a float64.
func (m Map) Double(key string) (float64, error) {
	v, err := m.Value(key)
	if err != nil {
		return 0, err
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &TypeError{Key: key, Want: "number", Got: v}
	}
	return f, nil
}

// Int returns the integral number under key.
func (m Map) Int(key string) (int, error) {
	v, err := m.Value(key)
	if err != nil {
		return 0, err
	}
	i, ok := toInt(v)
	if !ok {
		return 0, &TypeError{Key: key, Want: "int", Got: v}
	}
	return i, nil
}

// Map returns the nested map under key.
func (m Map) Map(key string) (Map, error) {
	v, err := m.Value(key)
	if err != nil {
		return Map{}, err
	}
	nested, ok := toMap(v)
	if !ok {
		return Map{}, &TypeError{Key: key, Want: "map", Got: v}
	}
	return nested, nil
}

// Array returns the nested array under key.
func (m Map) Array(key string) (Array, error) {
	v, err := m.Value(key)
	if err != nil {
		return Array{}, err
	}
	a, ok := v.([]any)
	if !ok {
		return Array{}, &TypeError{Key: key, Want: "array", Got: v}
	}
	return NewArray(a), nil
}

// Size returns the number of elements.
func (a Array) Size() int {
	return len(a.a)
}

// Value returns the raw element at index.
func (a Array) Value(index int) (any, error) {
	if index < 0 || index >= len(a.a) {
		return nil, &IndexError{Index: index, Size: len(a.a)}
	}
	return a.a[index], nil
}

// Map returns the map element at index.
func (a Array) Map(index int) (Map, error) {
	v, err := a.Value(index)
	if err != nil {
		return Map{}, err
	}
	m, ok := toMap(v)
	if !ok {
		return Map{}, &TypeError{Key: fmt.Sprintf("[%d]", index), Want: "map", Got: v}
	}
	return m, nil
}

// String returns the string element at index.
func (a Array) String(index int) (string, error) {
	v, err := a.Value(index)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Key: fmt.Sprintf("[%d]", index), Want: "string", Got: v}
	}
	return s, nil
}

// IndexError reports an array access outside [0, Size).
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("dynamic: index %d out of range [0, %d)", e.Index, e.Size)
}

func toMap(v any) (Map, bool) {
	switch m := v.(type) {
	case map[string]any:
		return NewMap(m), true
	case Map:
		return m, true
	default:
		return Map{}, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case int32:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
