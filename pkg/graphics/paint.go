package graphics

import "fmt"

// PaintStyle selects between filling a shape and stroking its outline.
type PaintStyle int

const (
	PaintStyleFill PaintStyle = iota
	// PaintStyleStroke paints a band of StrokeWidth inside the outline.
	PaintStyleStroke
)

func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	}
	return fmt.Sprintf("PaintStyle(%d)", int(s))
}

// Paint is the color and style of one draw call.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
	AntiAlias   bool
}

// FillPaint returns an anti-aliased fill in c. Highlight spans paint both
// of their rounded rectangles this way.
func FillPaint(c Color) Paint {
	return Paint{Color: c, Style: PaintStyleFill, StrokeWidth: 1, AntiAlias: true}
}
