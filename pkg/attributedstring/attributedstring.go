// Package attributedstring reads styled text trees handed over by the layout
// side: an attributed string is a list of shards, each a list of fragments.
//
// Two wire representations exist. [FromMap] reads the string-keyed map form
// (the shape of a decoded JSON or YAML document) and [FromMapBuffer] reads the
// binary tagged-buffer form. Both return the same interfaces and, for
// equivalent input, identical values. Accessors are lazy views: nothing is
// decoded until it is read.
package attributedstring

import (
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/textattr"
)

// AttachmentCharacter stands in for an embedded element in joined text.
const AttachmentCharacter = "\uFFFC"

// AttributedString is an ordered list of shards.
type AttributedString interface {
	ShardCount() int
	// Shard returns the shard at index, failing with an *errors.Error
	// wrapping *errors.IndexError when index is out of range or
	// *errors.MissingFieldError when the shard list is absent.
	Shard(index int) (Shard, error)
}

// Shard is a contiguous styled region composed of fragments.
type Shard interface {
	FragmentCount() int
	Fragment(index int) (Fragment, error)
	// Attributes returns the shard-level attributes, or false when the wire
	// data carries none.
	Attributes() (ShardAttributes, bool)
}

// Fragment is a run of uniformly styled text or a single attachment.
type Fragment interface {
	// TextAttributeProps resolves the fragment's style attributes. Missing
	// attributes resolve to [textattr.Defaults].
	TextAttributeProps() textattr.Props
	// Text returns the fragment's text, or false when absent.
	Text() (string, bool)
	HasReactTag() bool
	// ReactTag returns the tag of the view that owns the fragment.
	ReactTag() (int, bool)
	HasIsAttachment() bool
	IsAttachment() (bool, bool)
	// Width and Height are the attachment's layout size; 0 when absent.
	Width() float64
	Height() float64
}

// ShardAttributes are attributes applying to a whole shard.
type ShardAttributes struct {
	BackgroundColor    graphics.Color
	HasBackgroundColor bool
}

// Apply overrides the attributes set in other.
func (a *ShardAttributes) Apply(other ShardAttributes) {
	if other.HasBackgroundColor {
		a.BackgroundColor = other.BackgroundColor
		a.HasBackgroundColor = true
	}
}

// IsAttachment reports whether f is flagged as an attachment.
func IsAttachment(f Fragment) bool {
	v, ok := f.IsAttachment()
	return ok && v
}
