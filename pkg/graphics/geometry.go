package graphics

import "math"

// Offset is a point in canvas coordinates.
type Offset struct {
	X float64
	Y float64
}

// Size is a width and height in canvas units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle given by its edges. Android's RectF
// has the same shape.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH builds a Rect from its origin and extent.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{left, top, left + width, top + height}
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Inset returns the rectangle shrunk by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{Left: r.Left + d, Top: r.Top + d, Right: r.Right - d, Bottom: r.Bottom - d}
}

// Intersect returns the overlap of r and other, or the zero Rect.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty reports whether r encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.Left + dx, r.Top + dy, r.Right + dx, r.Bottom + dy}
}

// Union returns the smallest Rect enclosing r and other. An empty r is
// ignored, so unions can start from the zero Rect.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Radius is an elliptical corner radius.
type Radius struct {
	X float64
	Y float64
}

// CircularRadius returns a radius with equal axes.
func CircularRadius(value float64) Radius {
	return Radius{X: value, Y: value}
}

// RRect is a rectangle with per-corner radii.
type RRect struct {
	Rect        Rect
	TopLeft     Radius
	TopRight    Radius
	BottomRight Radius
	BottomLeft  Radius
}

// RRectFromRectAndRadius rounds every corner of rect by radius, the way
// Canvas.drawRoundRect does.
func RRectFromRectAndRadius(rect Rect, radius Radius) RRect {
	return RRect{rect, radius, radius, radius, radius}
}

// UniformRadius returns the shared radius when all eight corner axes agree
// and 0 otherwise.
func (r RRect) UniformRadius() float64 {
	v := r.TopLeft.X
	for _, c := range [...]Radius{r.TopLeft, r.TopRight, r.BottomRight, r.BottomLeft} {
		if !floatEqual(c.X, v) || !floatEqual(c.Y, v) {
			return 0
		}
	}
	return v
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-4
}

// Transform is an axis-aligned affine map: scale, then translate. It is the
// only kind of transform a Canvas can express.
type Transform struct {
	SX, SY float64
	TX, TY float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{SX: 1, SY: 1}

// Translated returns t followed by a move of (dx, dy) in t's source space.
func (t Transform) Translated(dx, dy float64) Transform {
	t.TX += dx * t.SX
	t.TY += dy * t.SY
	return t
}

// Scaled returns t with its source space scaled by (sx, sy).
func (t Transform) Scaled(sx, sy float64) Transform {
	t.SX *= sx
	t.SY *= sy
	return t
}

// Apply maps r through t. Negative scales flip edges, so the result is
// normalized to Left <= Right and Top <= Bottom.
func (t Transform) Apply(r Rect) Rect {
	l, tp := r.Left*t.SX+t.TX, r.Top*t.SY+t.TY
	rt, b := r.Right*t.SX+t.TX, r.Bottom*t.SY+t.TY
	return Rect{
		Left:   math.Min(l, rt),
		Top:    math.Min(tp, b),
		Right:  math.Max(l, rt),
		Bottom: math.Max(tp, b),
	}
}
