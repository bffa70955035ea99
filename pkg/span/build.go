package span

import (
	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/textattr"
)

// BuildOptions controls [BuildShardSpans].
type BuildOptions struct {
	// Style is the base style of every span. A shard's background color
	// replaces the fill color.
	Style Style
	// AllShards highlights every non-empty shard, not only those with a
	// background color.
	AllShards bool
}

// BuildShardSpans joins as into a [Text] carrying one [ShardSpan] per
// highlighted shard. The span's font attributes come from the shard's first
// text fragment.
func BuildShardSpans(as attributedstring.AttributedString, opts BuildOptions) (*Text, error) {
	joined, err := attributedstring.JoinedString(as)
	if err != nil {
		return nil, err
	}
	text := NewText(joined)

	offset := 0
	for i := 0; i < as.ShardCount(); i++ {
		shard, err := as.Shard(i)
		if err != nil {
			return nil, err
		}
		s, err := attributedstring.ShardString(shard)
		if err != nil {
			return nil, err
		}
		start := offset
		offset += utf16Len(s)

		attrs, hasAttrs := shard.Attributes()
		highlighted := hasAttrs && attrs.HasBackgroundColor
		if start == offset || !(highlighted || opts.AllShards) {
			continue
		}

		style := opts.Style
		if highlighted {
			style.FillColor = attrs.BackgroundColor
		}
		props, err := leadingProps(shard)
		if err != nil {
			return nil, err
		}
		if err := text.SetSpan(NewShardSpan(props, style), start, offset); err != nil {
			return nil, err
		}
	}
	return text, nil
}

// leadingProps returns the attributes of the first non-attachment fragment,
// or the defaults when the shard holds only attachments.
func leadingProps(shard attributedstring.Shard) (textattr.Props, error) {
	for j := 0; j < shard.FragmentCount(); j++ {
		f, err := shard.Fragment(j)
		if err != nil {
			return textattr.Props{}, err
		}
		if !attributedstring.IsAttachment(f) {
			return f.TextAttributeProps(), nil
		}
	}
	return textattr.Defaults(), nil
}
