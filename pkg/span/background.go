package span

import (
	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/typeface"
)

// TextView is the host view painting a [Text].
type TextView interface {
	Text() *Text
	// Layout returns the view's line layout, or nil before layout.
	Layout() Layout
	// Typeface is the view's base typeface.
	Typeface() typeface.Typeface
	TotalPaddingLeft() float64
	TotalPaddingTop() float64
}

// BackgroundSpan draws a decoration under a range of text.
type BackgroundSpan interface {
	FontAttributeProvider() typeface.FontAttributeProvider
	// Draw paints the range [start, end) of layout. The canvas is in the
	// layout's coordinate space.
	Draw(canvas graphics.Canvas, layout Layout, start, end int, effective typeface.Typeface) error
}

// DrawBackground draws every background span of view's text in attach
// order. Each span draws inside its own save/restore pair translated by the
// view's padding; the canvas is restored even when a span fails or panics.
// Views without text or layout draw nothing.
func DrawBackground(view TextView, canvas graphics.Canvas, fonts typeface.Source) error {
	text := view.Text()
	layout := view.Layout()
	if text == nil || layout == nil {
		return nil
	}
	for _, a := range text.Spans() {
		bg, ok := a.Span.(BackgroundSpan)
		if !ok {
			continue
		}
		effective := typeface.FindEffective(bg.FontAttributeProvider(), view.Typeface(), fonts)
		if err := drawTranslated(canvas, view, func() error {
			return bg.Draw(canvas, layout, a.Start, a.End, effective)
		}); err != nil {
			return &errors.Error{Op: "span.DrawBackground", Kind: errors.KindRender, Err: err}
		}
	}
	return nil
}

func drawTranslated(canvas graphics.Canvas, view TextView, draw func() error) error {
	canvas.Save()
	defer canvas.Restore()
	canvas.Translate(view.TotalPaddingLeft(), view.TotalPaddingTop())
	return draw()
}
