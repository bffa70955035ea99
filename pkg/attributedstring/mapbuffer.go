package attributedstring

import (
	stderrors "errors"
	"strconv"

	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/mapbuffer"
	"github.com/go-drift/richtext/pkg/textattr"
)

const backingMapBuffer = "mapbuffer"

// FromMapBuffer returns an attributed string backed by the binary buffer
// representation.
func FromMapBuffer(buf mapbuffer.Buffer) AttributedString {
	return bufferString{buf: buf}
}

func childBuffer(op string, buf mapbuffer.Buffer, key mapbuffer.Key) (mapbuffer.Buffer, error) {
	nested, err := buf.MapBuffer(key)
	if err == nil {
		return nested, nil
	}
	if stderrors.Is(err, mapbuffer.ErrKeyNotFound) {
		return mapbuffer.Buffer{}, &errors.Error{
			Op: op, Kind: errors.KindMissingField, Backing: backingMapBuffer,
			Err: &errors.MissingFieldError{Field: strconv.Itoa(int(key))},
		}
	}
	return mapbuffer.Buffer{}, &errors.Error{Op: op, Kind: errors.KindDecode, Backing: backingMapBuffer, Err: err}
}

// element returns the item at index of a positional array buffer.
func element(op string, arr mapbuffer.Buffer, index int) (mapbuffer.Buffer, error) {
	if index < 0 || index >= arr.Count() {
		return mapbuffer.Buffer{}, &errors.Error{
			Op: op, Kind: errors.KindIndex, Backing: backingMapBuffer,
			Err: &errors.IndexError{Index: index, Count: arr.Count()},
		}
	}
	item, err := arr.MapBuffer(mapbuffer.Key(index))
	if err != nil {
		return mapbuffer.Buffer{}, &errors.Error{Op: op, Kind: errors.KindDecode, Backing: backingMapBuffer, Err: err}
	}
	return item, nil
}

func bufferCount(buf mapbuffer.Buffer, key mapbuffer.Key) int {
	nested, err := buf.MapBuffer(key)
	if err != nil {
		return 0
	}
	return nested.Count()
}

type bufferString struct {
	buf mapbuffer.Buffer
}

func (s bufferString) ShardCount() int {
	return bufferCount(s.buf, KeyShards)
}

func (s bufferString) Shard(index int) (Shard, error) {
	const op = "attributedstring.Shard"
	shards, err := childBuffer(op, s.buf, KeyShards)
	if err != nil {
		return nil, err
	}
	item, err := element(op, shards, index)
	if err != nil {
		return nil, err
	}
	return bufferShard{buf: item}, nil
}

type bufferShard struct {
	buf mapbuffer.Buffer
}

func (s bufferShard) FragmentCount() int {
	return bufferCount(s.buf, KeyShardFragments)
}

func (s bufferShard) Fragment(index int) (Fragment, error) {
	const op = "attributedstring.Fragment"
	fragments, err := childBuffer(op, s.buf, KeyShardFragments)
	if err != nil {
		return nil, err
	}
	item, err := element(op, fragments, index)
	if err != nil {
		return nil, err
	}
	return bufferFragment{buf: item}, nil
}

// Attributes reads the optional KeyShardAttributes buffer. Producers that
// predate shard attributes never write it.
func (s bufferShard) Attributes() (ShardAttributes, bool) {
	if !s.buf.Has(KeyShardAttributes) {
		return ShardAttributes{}, false
	}
	attrs, err := s.buf.MapBuffer(KeyShardAttributes)
	if err != nil {
		errors.Report(&errors.Error{
			Op: "attributedstring.Shard.Attributes", Kind: errors.KindDecode, Backing: backingMapBuffer, Err: err,
		})
		return ShardAttributes{}, false
	}
	var a ShardAttributes
	if v, err := attrs.Int(KeyShardBackgroundColor); err == nil {
		a.BackgroundColor, a.HasBackgroundColor = graphics.FromInt32(v), true
	}
	return a, true
}

type bufferFragment struct {
	buf mapbuffer.Buffer
}

func (f bufferFragment) TextAttributeProps() textattr.Props {
	if !f.buf.Has(KeyFragmentTextAttributes) {
		return textattr.Defaults()
	}
	attrs, err := f.buf.MapBuffer(KeyFragmentTextAttributes)
	if err != nil {
		errors.Report(&errors.Error{
			Op: "attributedstring.Fragment.TextAttributeProps", Kind: errors.KindDecode, Backing: backingMapBuffer, Err: err,
		})
		return textattr.Defaults()
	}
	return textattr.FromMapBuffer(attrs)
}

func (f bufferFragment) Text() (string, bool) {
	s, err := f.buf.String(KeyFragmentString)
	return s, err == nil
}

func (f bufferFragment) HasReactTag() bool {
	return f.buf.Has(KeyFragmentReactTag)
}

func (f bufferFragment) ReactTag() (int, bool) {
	v, err := f.buf.Int(KeyFragmentReactTag)
	return int(v), err == nil
}

func (f bufferFragment) HasIsAttachment() bool {
	return f.buf.Has(KeyFragmentIsAttachment)
}

func (f bufferFragment) IsAttachment() (bool, bool) {
	v, err := f.buf.Bool(KeyFragmentIsAttachment)
	return v, err == nil
}

func (f bufferFragment) Width() float64 {
	v, _ := f.buf.Double(KeyFragmentWidth)
	return v
}

func (f bufferFragment) Height() float64 {
	v, _ := f.buf.Double(KeyFragmentHeight)
	return v
}
