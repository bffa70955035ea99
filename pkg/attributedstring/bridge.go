package attributedstring

import (
	stderrors "errors"

	"github.com/go-drift/richtext/pkg/dynamic"
	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/textattr"
)

const backingMap = "map"

// FromMap returns an attributed string backed by the map representation.
func FromMap(m dynamic.Map) AttributedString {
	return mapString{m: m}
}

// childArray reads the list under key, mapping lookup failures to the
// package's structured errors.
func childArray(op string, m dynamic.Map, key string) (dynamic.Array, error) {
	arr, err := m.Array(key)
	if err == nil {
		return arr, nil
	}
	if stderrors.Is(err, dynamic.ErrKeyNotFound) {
		return dynamic.Array{}, &errors.Error{
			Op: op, Kind: errors.KindMissingField, Backing: backingMap,
			Err: &errors.MissingFieldError{Field: key},
		}
	}
	return dynamic.Array{}, &errors.Error{Op: op, Kind: errors.KindDecode, Backing: backingMap, Err: err}
}

func childMap(op string, arr dynamic.Array, index int) (dynamic.Map, error) {
	if index < 0 || index >= arr.Size() {
		return dynamic.Map{}, &errors.Error{
			Op: op, Kind: errors.KindIndex, Backing: backingMap,
			Err: &errors.IndexError{Index: index, Count: arr.Size()},
		}
	}
	m, err := arr.Map(index)
	if err != nil {
		return dynamic.Map{}, &errors.Error{Op: op, Kind: errors.KindDecode, Backing: backingMap, Err: err}
	}
	return m, nil
}

func arraySize(m dynamic.Map, key string) int {
	arr, err := m.Array(key)
	if err != nil {
		return 0
	}
	return arr.Size()
}

type mapString struct {
	m dynamic.Map
}

func (s mapString) ShardCount() int {
	return arraySize(s.m, keyShards)
}

func (s mapString) Shard(index int) (Shard, error) {
	const op = "attributedstring.Shard"
	shards, err := childArray(op, s.m, keyShards)
	if err != nil {
		return nil, err
	}
	m, err := childMap(op, shards, index)
	if err != nil {
		return nil, err
	}
	return mapShard{m: m}, nil
}

type mapShard struct {
	m dynamic.Map
}

func (s mapShard) FragmentCount() int {
	return arraySize(s.m, keyFragments)
}

func (s mapShard) Fragment(index int) (Fragment, error) {
	const op = "attributedstring.Fragment"
	fragments, err := childArray(op, s.m, keyFragments)
	if err != nil {
		return nil, err
	}
	m, err := childMap(op, fragments, index)
	if err != nil {
		return nil, err
	}
	return mapFragment{m: m}, nil
}

func (s mapShard) Attributes() (ShardAttributes, bool) {
	if !s.m.HasKey(keyAttributes) {
		return ShardAttributes{}, false
	}
	attrs, err := s.m.Map(keyAttributes)
	if err != nil {
		errors.Report(&errors.Error{
			Op: "attributedstring.Shard.Attributes", Kind: errors.KindDecode, Backing: backingMap,
			Err: &errors.DecodeError{Field: keyAttributes, DataType: "map", Got: s.m.Raw()[keyAttributes]},
		})
		return ShardAttributes{}, false
	}
	var a ShardAttributes
	a.BackgroundColor, a.HasBackgroundColor = colorValue(attrs, keyBackgroundColor)
	return a, true
}

type mapFragment struct {
	m dynamic.Map
}

func (f mapFragment) TextAttributeProps() textattr.Props {
	if !f.m.HasKey(keyAttributes) {
		return textattr.Defaults()
	}
	attrs, err := f.m.Map(keyAttributes)
	if err != nil {
		errors.Report(&errors.Error{
			Op: "attributedstring.Fragment.TextAttributeProps", Kind: errors.KindDecode, Backing: backingMap,
			Err: &errors.DecodeError{Field: keyAttributes, DataType: "map", Got: f.m.Raw()[keyAttributes]},
		})
		return textattr.Defaults()
	}
	return textattr.FromMap(attrs)
}

func (f mapFragment) Text() (string, bool) {
	s, err := f.m.String(keyString)
	return s, err == nil
}

func (f mapFragment) HasReactTag() bool {
	return f.m.HasKey(keyReactTag)
}

func (f mapFragment) ReactTag() (int, bool) {
	v, err := f.m.Int(keyReactTag)
	return v, err == nil
}

func (f mapFragment) HasIsAttachment() bool {
	return f.m.HasKey(keyIsAttachment)
}

func (f mapFragment) IsAttachment() (bool, bool) {
	v, err := f.m.Bool(keyIsAttachment)
	return v, err == nil
}

func (f mapFragment) Width() float64 {
	v, _ := f.m.Double(keyWidth)
	return v
}

func (f mapFragment) Height() float64 {
	v, _ := f.m.Double(keyHeight)
	return v
}

// colorValue reads an ARGB integer or a hex string under key.
func colorValue(m dynamic.Map, key string) (graphics.Color, bool) {
	if n, err := m.Int(key); err == nil {
		return graphics.Color(uint32(n)), true
	}
	if s, err := m.String(key); err == nil {
		c, err := graphics.ParseHexColor(s)
		return c, err == nil
	}
	return 0, false
}
