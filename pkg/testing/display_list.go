package testing

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-drift/richtext/pkg/graphics"
)

// DisplayOp is one canvas call in JSON-friendly form. Params holds
// rounded numbers, colors as "0xAARRGGBB" strings and rects as
// left/top/right/bottom maps.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// serializingCanvas turns every call into a DisplayOp.
type serializingCanvas struct {
	ops  []DisplayOp
	size graphics.Size
}

func (c *serializingCanvas) emit(op string, kvs ...any) {
	d := DisplayOp{Op: op}
	if len(kvs) > 0 {
		d.Params = sortedMap(kvs...)
	}
	c.ops = append(c.ops, d)
}

func (c *serializingCanvas) Save()    { c.emit("save") }
func (c *serializingCanvas) Restore() { c.emit("restore") }

func (c *serializingCanvas) Translate(dx, dy float64) {
	c.emit("translate", "dx", round2(dx), "dy", round2(dy))
}

func (c *serializingCanvas) Scale(sx, sy float64) {
	c.emit("scale", "sx", round2(sx), "sy", round2(sy))
}

func (c *serializingCanvas) ClipRect(rect graphics.Rect) {
	c.emit("clipRect", "rect", serializeRect(rect))
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.emit("clear", "color", serializeColor(color))
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.emit("drawRect", paintParams(paint, "rect", serializeRect(rect))...)
}

func (c *serializingCanvas) DrawRRect(rrect graphics.RRect, paint graphics.Paint) {
	c.emit("drawRRect", paintParams(paint, "rect", serializeRect(rrect.Rect), "radius", serializeRadius(rrect))...)
}

func (c *serializingCanvas) Size() graphics.Size {
	return c.size
}

// RecordOps runs paint against a serializing canvas of the given size.
func RecordOps(size graphics.Size, paint func(graphics.Canvas)) []DisplayOp {
	canvas := &serializingCanvas{size: size}
	paint(canvas)
	return canvas.ops
}

// SerializeDisplayList replays dl through a serializing canvas.
func SerializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	canvas := &serializingCanvas{size: dl.Size()}
	dl.Paint(canvas)
	return canvas.ops
}

// FilterOps returns the ops named op, in order.
func FilterOps(ops []DisplayOp, op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// OpNames returns the op names of ops, in order.
func OpNames(ops []DisplayOp) []string {
	names := make([]string, len(ops))
	for i, o := range ops {
		names[i] = o.Op
	}
	return names
}

// RectOf returns the "rect" parameter of op.
func RectOf(op DisplayOp) (graphics.Rect, bool) {
	m, ok := op.Params["rect"].(map[string]any)
	if !ok {
		return graphics.Rect{}, false
	}
	get := func(k string) float64 {
		v, _ := m[k].(float64)
		return v
	}
	return graphics.Rect{Left: get("left"), Top: get("top"), Right: get("right"), Bottom: get("bottom")}, true
}

// Highlight is one bordered rounded rectangle: the border-colored outer
// shape followed by the fill-colored inner one.
type Highlight struct {
	Outer, Inner        graphics.Rect
	Border, Fill        string
	Radius, InnerRadius float64
}

// Highlights pairs consecutive drawRRect ops into Highlights. A trailing
// unpaired rrect is ignored.
func Highlights(ops []DisplayOp) []Highlight {
	rrects := FilterOps(ops, "drawRRect")
	out := make([]Highlight, 0, len(rrects)/2)
	for i := 0; i+1 < len(rrects); i += 2 {
		outer, inner := rrects[i], rrects[i+1]
		var h Highlight
		h.Outer, _ = RectOf(outer)
		h.Inner, _ = RectOf(inner)
		h.Border, _ = outer.Params["color"].(string)
		h.Fill, _ = inner.Params["color"].(string)
		h.Radius = radiusOf(outer)
		h.InnerRadius = radiusOf(inner)
		out = append(out, h)
	}
	return out
}

func radiusOf(op DisplayOp) float64 {
	r, _ := op.Params["radius"].(map[string]any)
	x, _ := r["x"].(float64)
	return x
}

func paintParams(paint graphics.Paint, kvs ...any) []any {
	kvs = append(kvs, "color", serializeColor(paint.Color))
	if paint.Style == graphics.PaintStyleStroke {
		kvs = append(kvs, "style", "stroke", "strokeWidth", round2(paint.StrokeWidth))
	}
	return kvs
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeRadius(rr graphics.RRect) map[string]any {
	corner := func(r graphics.Radius) map[string]any {
		return sortedMap("x", round2(r.X), "y", round2(r.Y))
	}
	if rr.TopLeft == rr.TopRight && rr.TopRight == rr.BottomRight && rr.BottomRight == rr.BottomLeft {
		return corner(rr.TopLeft)
	}
	return sortedMap(
		"topLeft", corner(rr.TopLeft),
		"topRight", corner(rr.TopRight),
		"bottomRight", corner(rr.BottomRight),
		"bottomLeft", corner(rr.BottomLeft),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap builds a map from alternating keys and values. encoding/json
// emits map keys sorted.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
