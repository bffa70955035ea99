package span

import (
	"fmt"
	"math"

	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/typeface"
)

// EffectiveTextAttributeProvider supplies the font request and the resolved
// font size of a run of text.
type EffectiveTextAttributeProvider interface {
	typeface.FontAttributeProvider
	EffectiveFontSize() float64
}

// Style configures the bordered rounded rectangle of a [ShardSpan].
type Style struct {
	FillColor    graphics.Color
	BorderColor  graphics.Color
	BorderWidth  float64
	CornerRadius float64
}

// DefaultStyle returns a yellow fill with a 2px gray border.
func DefaultStyle() Style {
	return Style{
		FillColor:    graphics.ColorYellow,
		BorderColor:  graphics.ColorGray,
		BorderWidth:  2,
		CornerRadius: 4,
	}
}

// ShardSpan highlights its range with one bordered rounded rectangle per
// line. The rectangle spans the font's ascent to descent around each line's
// baseline; it starts at the range start on the first line and ends at the
// range end on the last line, and covers the full line in between.
type ShardSpan struct {
	attrs EffectiveTextAttributeProvider
	style Style
}

// NewShardSpan returns a span drawing with style at attrs' font size.
func NewShardSpan(attrs EffectiveTextAttributeProvider, style Style) *ShardSpan {
	return &ShardSpan{attrs: attrs, style: style}
}

// Style returns the span's style.
func (s *ShardSpan) Style() Style {
	return s.style
}

// FontAttributeProvider implements [BackgroundSpan].
func (s *ShardSpan) FontAttributeProvider() typeface.FontAttributeProvider {
	return s.attrs
}

// FontSize returns the size the span's font metrics are taken at.
func (s *ShardSpan) FontSize() float64 {
	return s.attrs.EffectiveFontSize()
}

// Draw implements [BackgroundSpan]. It panics when end lies on a line
// before start.
func (s *ShardSpan) Draw(canvas graphics.Canvas, layout Layout, start, end int, effective typeface.Typeface) error {
	startLine := layout.LineForOffset(start)
	endLine := layout.LineForOffset(end)
	if endLine < startLine {
		panic(fmt.Sprintf("span: end line %d before start line %d", endLine, startLine))
	}

	// Either offset may be the left edge, depending on the text direction.
	startOffset := layout.PrimaryHorizontal(start)
	endOffset := layout.PrimaryHorizontal(end)

	metrics, err := effective.Metrics(s.FontSize())
	if err != nil {
		return &errors.Error{Op: "span.ShardSpan.Draw", Kind: errors.KindFont, Err: err}
	}

	for line := startLine; line <= endLine; line++ {
		baseline := layout.LineBaseline(line)
		top := baseline + metrics.Ascent
		bottom := baseline + metrics.Descent

		from := layout.LineLeft(line)
		if line == startLine {
			from = startOffset
		}
		to := layout.LineRight(line)
		if line == endLine {
			to = endOffset
		}

		rect := graphics.Rect{
			Left:   math.Min(from, to),
			Top:    top,
			Right:  math.Max(from, to),
			Bottom: bottom,
		}
		drawBorderedRoundRect(canvas, rect, s.style)
	}
	return nil
}

// drawBorderedRoundRect fills rect with the border color, then fills the
// rect inset by the border width with the fill color.
func drawBorderedRoundRect(canvas graphics.Canvas, rect graphics.Rect, style Style) {
	border := graphics.FillPaint(style.BorderColor)
	fill := graphics.FillPaint(style.FillColor)

	canvas.DrawRRect(graphics.RRectFromRectAndRadius(rect, graphics.CircularRadius(style.CornerRadius)), border)

	inner := rect.Inset(style.BorderWidth)
	innerRadius := math.Max(style.CornerRadius-style.BorderWidth, 0)
	canvas.DrawRRect(graphics.RRectFromRectAndRadius(inner, graphics.CircularRadius(innerRadius)), fill)
}
