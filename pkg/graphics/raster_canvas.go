package graphics

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so that a quarter circle is
// approximated to within 0.03%.
const kappa = 0.5522847498

type rasterState struct {
	xf   Transform
	clip image.Rectangle
}

// RasterCanvas renders onto an in-memory RGBA image using an anti-aliased
// vector rasterizer. It supports translate/scale transforms and
// axis-aligned clipping.
type RasterCanvas struct {
	img   *image.RGBA
	mask  *image.Alpha
	z     *vector.Rasterizer
	state rasterState
	stack []rasterState
}

// NewRasterCanvas creates a transparent canvas of the given pixel size.
func NewRasterCanvas(width, height int) *RasterCanvas {
	bounds := image.Rect(0, 0, width, height)
	return &RasterCanvas{
		img:   image.NewRGBA(bounds),
		mask:  image.NewAlpha(bounds),
		z:     vector.NewRasterizer(width, height),
		state: rasterState{xf: Identity, clip: bounds},
	}
}

// Image returns the render target.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

func (c *RasterCanvas) Save() {
	c.stack = append(c.stack, c.state)
}

func (c *RasterCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *RasterCanvas) Translate(dx, dy float64) {
	c.state.xf = c.state.xf.Translated(dx, dy)
}

func (c *RasterCanvas) Scale(sx, sy float64) {
	c.state.xf = c.state.xf.Scaled(sx, sy)
}

func (c *RasterCanvas) ClipRect(rect Rect) {
	d := c.state.xf.Apply(rect)
	r := image.Rect(
		int(math.Floor(d.Left)), int(math.Floor(d.Top)),
		int(math.Ceil(d.Right)), int(math.Ceil(d.Bottom)),
	)
	c.state.clip = c.state.clip.Intersect(r)
}

func (c *RasterCanvas) Clear(col Color) {
	draw.Draw(c.img, c.state.clip, image.NewUniform(col.NRGBA()), image.Point{}, draw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	c.DrawRRect(RRect{Rect: rect}, paint)
}

func (c *RasterCanvas) DrawRRect(rrect RRect, paint Paint) {
	outer := c.state.xf.Apply(rrect.Rect)
	if outer.IsEmpty() || c.state.clip.Empty() {
		return
	}
	rx := math.Abs(rrect.UniformRadius() * c.state.xf.SX)
	ry := math.Abs(rrect.UniformRadius() * c.state.xf.SY)

	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	addContour(c.z, rrectContour(outer, rx, ry), false)
	if paint.Style == PaintStyleStroke {
		w := paint.StrokeWidth
		if w <= 0 {
			w = 1
		}
		inner := outer.Inset(w * math.Abs(c.state.xf.SX))
		if !inner.IsEmpty() {
			addContour(c.z, rrectContour(inner, math.Max(rx-w, 0), math.Max(ry-w, 0)), true)
		}
	}

	clear(c.mask.Pix)
	c.z.Draw(c.mask, c.mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.img, c.state.clip, image.NewUniform(paint.Color.NRGBA()), image.Point{}, c.mask, c.state.clip.Min, draw.Over)
}

func (c *RasterCanvas) Size() Size {
	b := c.img.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// cubic is one contour segment ending at end; straight edges use their
// endpoints as control points.
type cubic struct {
	c1, c2, end Offset
}

type contour struct {
	start Offset
	segs  []cubic
}

func line(from, to Offset) cubic {
	return cubic{c1: from, c2: to, end: to}
}

// rrectContour returns a clockwise (in y-down space) rounded rectangle.
func rrectContour(r Rect, rx, ry float64) contour {
	rx = math.Min(rx, r.Width()/2)
	ry = math.Min(ry, r.Height()/2)
	kx, ky := rx*kappa, ry*kappa
	l, t, rt, b := r.Left, r.Top, r.Right, r.Bottom

	p0 := Offset{l + rx, t}
	p1 := Offset{rt - rx, t}
	p2 := Offset{rt, t + ry}
	p3 := Offset{rt, b - ry}
	p4 := Offset{rt - rx, b}
	p5 := Offset{l + rx, b}
	p6 := Offset{l, b - ry}
	p7 := Offset{l, t + ry}

	return contour{
		start: p0,
		segs: []cubic{
			line(p0, p1),
			{c1: Offset{rt - rx + kx, t}, c2: Offset{rt, t + ry - ky}, end: p2},
			line(p2, p3),
			{c1: Offset{rt, b - ry + ky}, c2: Offset{rt - rx + kx, b}, end: p4},
			line(p4, p5),
			{c1: Offset{l + rx - kx, b}, c2: Offset{l, b - ry + ky}, end: p6},
			line(p6, p7),
			{c1: Offset{l, t + ry - ky}, c2: Offset{l + rx - kx, t}, end: p0},
		},
	}
}

// addContour feeds the contour to the rasterizer. A reversed contour
// cancels the coverage of an enclosing forward one, which is how stroked
// outlines get their hole.
func addContour(z *vector.Rasterizer, ct contour, reverse bool) {
	f := func(o Offset) (float32, float32) { return float32(o.X), float32(o.Y) }
	if !reverse {
		z.MoveTo(f(ct.start))
		for _, s := range ct.segs {
			c1x, c1y := f(s.c1)
			c2x, c2y := f(s.c2)
			ex, ey := f(s.end)
			z.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
		}
		z.ClosePath()
		return
	}
	// Walking backwards, segment i runs from its end to the previous end.
	z.MoveTo(f(ct.start))
	for i := len(ct.segs) - 1; i >= 0; i-- {
		s := ct.segs[i]
		prev := ct.start
		if i > 0 {
			prev = ct.segs[i-1].end
		}
		c1x, c1y := f(s.c2)
		c2x, c2y := f(s.c1)
		ex, ey := f(prev)
		z.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
	}
	z.ClosePath()
}
