package textlayout

import (
	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/span"
	"github.com/go-drift/richtext/pkg/textattr"
	"github.com/go-drift/richtext/pkg/typeface"
)

// View is a laid-out text with padding, the host side of span drawing.
type View struct {
	text        *span.Text
	layout      span.Layout
	base        typeface.Typeface
	PaddingLeft float64
	PaddingTop  float64
	// FontSize is the size the text was laid out at, when known.
	FontSize    float64
}

// NewView returns a view over text laid out by layout in base.
func NewView(text *span.Text, layout span.Layout, base typeface.Typeface) *View {
	return &View{text: text, layout: layout, base: base}
}

// ViewOptions controls [ViewFromAttributedString].
type ViewOptions struct {
	Spans  span.BuildOptions
	Layout Options
	// FontSize is the layout size; zero uses the leading fragment's
	// effective size.
	FontSize    float64
}

// ViewFromAttributedString builds the shard spans of as and lays out its
// joined string in base.
func ViewFromAttributedString(as attributedstring.AttributedString, base typeface.Typeface, opts ViewOptions) (*View, error) {
	text, err := span.BuildShardSpans(as, opts.Spans)
	if err != nil {
		return nil, err
	}
	size := opts.FontSize
	if size <= 0 {
		size = leadingFontSize(text)
	}
	layout, err := Build(text.String(), base, size, opts.Layout)
	if err != nil {
		return nil, err
	}
	view := NewView(text, layout, base)
	view.FontSize = size
	return view, nil
}

func leadingFontSize(text *span.Text) float64 {
	for _, a := range text.Spans() {
		if s, ok := a.Span.(*span.ShardSpan); ok {
			return s.FontSize()
		}
	}
	return textattr.DefaultFontSize
}

// The accessors below make View a span.TextView.
func (v *View) Text() *span.Text            { return v.text }
func (v *View) Layout() span.Layout         { return v.layout }
func (v *View) Typeface() typeface.Typeface { return v.base }
func (v *View) TotalPaddingLeft() float64   { return v.PaddingLeft }
func (v *View) TotalPaddingTop() float64    { return v.PaddingTop }

// Size returns the padded layout size. Views without a line layout size to
// their padding.
func (v *View) Size() graphics.Size {
	w, h := v.PaddingLeft*2, v.PaddingTop*2
	if l, ok := v.layout.(*StaticLayout); ok {
		w += l.Width()
		h += l.Height()
	}
	return graphics.Size{Width: w, Height: h}
}

// DrawBackground draws the view's background spans on canvas.
func (v *View) DrawBackground(canvas graphics.Canvas, fonts typeface.Source) error {
	return span.DrawBackground(v, canvas, fonts)
}
