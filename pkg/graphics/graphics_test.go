package graphics

import (
	"testing"
)

// countingCanvas tallies calls to verify display list replay.
type countingCanvas struct {
	calls []string
	rects []Rect
}

func (c *countingCanvas) Save()                     { c.calls = append(c.calls, "save") }
func (c *countingCanvas) Restore()                  { c.calls = append(c.calls, "restore") }
func (c *countingCanvas) Translate(dx, dy float64)  { c.calls = append(c.calls, "translate") }
func (c *countingCanvas) Scale(sx, sy float64)      { c.calls = append(c.calls, "scale") }
func (c *countingCanvas) ClipRect(rect Rect)        { c.calls = append(c.calls, "clipRect") }
func (c *countingCanvas) Clear(color Color)         { c.calls = append(c.calls, "clear") }
func (c *countingCanvas) DrawRect(r Rect, _ Paint)  { c.calls = append(c.calls, "drawRect"); c.rects = append(c.rects, r) }
func (c *countingCanvas) DrawRRect(r RRect, _ Paint) {
	c.calls = append(c.calls, "drawRRect")
	c.rects = append(c.rects, r.Rect)
}
func (c *countingCanvas) Size() Size { return Size{} }

func TestDisplayListReplaysInOrder(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(Size{Width: 100, Height: 50})
	canvas.Save()
	canvas.Translate(4, 8)
	canvas.DrawRRect(RRectFromRectAndRadius(RectFromLTWH(0, 0, 10, 10), CircularRadius(2)), FillPaint(ColorGray))
	canvas.DrawRect(RectFromLTWH(1, 1, 8, 8), FillPaint(ColorYellow))
	canvas.Restore()
	dl := recorder.EndRecording()

	if dl.Len() != 5 {
		t.Fatalf("expected 5 ops, got %d", dl.Len())
	}
	if dl.Size() != (Size{Width: 100, Height: 50}) {
		t.Errorf("unexpected size %v", dl.Size())
	}

	target := &countingCanvas{}
	dl.Paint(target)
	want := []string{"save", "translate", "drawRRect", "drawRect", "restore"}
	if len(target.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, target.calls)
	}
	for i := range want {
		if target.calls[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], target.calls[i])
		}
	}
}

func TestRecorderIgnoresOpsAfterEnd(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(Size{})
	canvas.Clear(ColorWhite)
	dl := recorder.EndRecording()
	canvas.Clear(ColorBlack)
	if dl.Len() != 1 {
		t.Errorf("expected 1 op, got %d", dl.Len())
	}
}

func TestReusedRecorderLeavesEarlierListIntact(t *testing.T) {
	recorder := &PictureRecorder{}
	first := recorder.BeginRecording(Size{})
	first.Clear(ColorWhite)
	first.DrawRect(RectFromLTWH(0, 0, 4, 4), FillPaint(ColorRed))
	dl := recorder.EndRecording()

	second := recorder.BeginRecording(Size{})
	second.Save()
	second.Restore()
	second.Clear(ColorBlack)
	recorder.EndRecording()

	target := &countingCanvas{}
	dl.Paint(target)
	if len(target.calls) != 2 || target.calls[0] != "clear" || target.calls[1] != "drawRect" {
		t.Errorf("first list replayed %v, want [clear drawRect]", target.calls)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#FFFF00", ColorYellow},
		{"888888", ColorGray},
		{"#80FF0000", Color(0x80FF0000)},
		{"#fff", ColorWhite},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if err != nil {
			t.Errorf("ParseHexColor(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "#12345", "#GGGGGG"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) expected error", bad)
		}
	}
}

func TestColorConversions(t *testing.T) {
	c := FromInt32(-256) // 0xFFFFFF00
	if c != ColorYellow {
		t.Errorf("FromInt32(-256) = %v, want %v", c, ColorYellow)
	}
	if c.Alpha() != 0xFF {
		t.Errorf("Alpha() = %d, want 255", c.Alpha())
	}
	if got := c.String(); got != "#FFFFFF00" {
		t.Errorf("String() = %q", got)
	}
	n := ColorGray.NRGBA()
	if n.R != 0x88 || n.G != 0x88 || n.B != 0x88 || n.A != 0xFF {
		t.Errorf("NRGBA() = %+v", n)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Right: 50, Bottom: 40}
	if r.Width() != 40 || r.Height() != 20 {
		t.Errorf("unexpected size %vx%v", r.Width(), r.Height())
	}
	in := r.Inset(2)
	if in != (Rect{Left: 12, Top: 22, Right: 48, Bottom: 38}) {
		t.Errorf("Inset(2) = %+v", in)
	}
	if !(Rect{Left: 5, Right: 5, Bottom: 1}).IsEmpty() {
		t.Error("expected zero-width rect to be empty")
	}
	if got := r.Intersect(Rect{Left: 100, Top: 100, Right: 110, Bottom: 110}); !got.IsEmpty() {
		t.Errorf("expected empty intersection, got %+v", got)
	}
}

func TestUnionSkipsEmpty(t *testing.T) {
	a := Rect{Left: 10, Top: 10, Right: 20, Bottom: 20}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("zero.Union(a) = %+v", got)
	}
	if got := a.Union(Rect{Left: 5, Top: 15, Right: 12, Bottom: 30}); got != (Rect{Left: 5, Top: 10, Right: 20, Bottom: 30}) {
		t.Errorf("Union = %+v", got)
	}
}

func TestTransformApply(t *testing.T) {
	xf := Identity.Scaled(2, 2).Translated(3, 4)
	got := xf.Apply(Rect{Left: 0, Top: 0, Right: 5, Bottom: 1})
	if got != (Rect{Left: 6, Top: 8, Right: 16, Bottom: 10}) {
		t.Errorf("Apply = %+v", got)
	}
	flipped := Identity.Scaled(-1, 1).Apply(Rect{Left: 2, Top: 0, Right: 6, Bottom: 1})
	if flipped != (Rect{Left: -6, Top: 0, Right: -2, Bottom: 1}) {
		t.Errorf("flipped Apply = %+v", flipped)
	}
}

func TestDisplayListBoundsFollowTransforms(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(Size{Width: 100, Height: 100})
	canvas.Clear(ColorWhite)
	canvas.Save()
	canvas.Translate(10, 20)
	canvas.DrawRect(RectFromLTWH(0, 0, 5, 5), FillPaint(ColorRed))
	canvas.Restore()
	canvas.DrawRRect(RRectFromRectAndRadius(RectFromLTWH(40, 0, 10, 2), CircularRadius(1)), FillPaint(ColorRed))
	dl := recorder.EndRecording()

	if got := dl.Bounds(); got != (Rect{Left: 10, Top: 0, Right: 50, Bottom: 25}) {
		t.Errorf("Bounds() = %+v", got)
	}

	empty := recorder.BeginRecording(Size{})
	empty.Clear(ColorBlack)
	if b := recorder.EndRecording().Bounds(); !b.IsEmpty() {
		t.Errorf("expected empty bounds, got %+v", b)
	}
}

func TestUniformRadius(t *testing.T) {
	rr := RRectFromRectAndRadius(RectFromLTWH(0, 0, 10, 10), CircularRadius(3))
	if rr.UniformRadius() != 3 {
		t.Errorf("expected uniform radius 3, got %v", rr.UniformRadius())
	}
	rr.TopLeft = CircularRadius(1)
	if rr.UniformRadius() != 0 {
		t.Errorf("expected 0 for mixed radii, got %v", rr.UniformRadius())
	}
}

func TestRasterCanvasFillsRect(t *testing.T) {
	c := NewRasterCanvas(20, 20)
	c.DrawRect(RectFromLTWH(5, 5, 10, 10), FillPaint(ColorRed))
	img := c.Image()

	inside := img.RGBAAt(10, 10)
	if inside.R != 0xFF || inside.G != 0 || inside.A != 0xFF {
		t.Errorf("expected opaque red inside, got %+v", inside)
	}
	outside := img.RGBAAt(2, 2)
	if outside.A != 0 {
		t.Errorf("expected transparent outside, got %+v", outside)
	}
}

func TestRasterCanvasTranslateAndRestore(t *testing.T) {
	c := NewRasterCanvas(40, 40)
	c.Save()
	c.Translate(20, 20)
	c.DrawRect(RectFromLTWH(0, 0, 10, 10), FillPaint(ColorBlue))
	c.Restore()
	c.DrawRect(RectFromLTWH(0, 0, 5, 5), FillPaint(ColorGreen))
	img := c.Image()

	if px := img.RGBAAt(25, 25); px.B != 0xFF {
		t.Errorf("expected translated blue at (25,25), got %+v", px)
	}
	if px := img.RGBAAt(2, 2); px.G != 0xFF {
		t.Errorf("expected untranslated green at (2,2), got %+v", px)
	}
	if px := img.RGBAAt(12, 12); px.A != 0 {
		t.Errorf("expected nothing at (12,12), got %+v", px)
	}
}

func TestRasterCanvasClip(t *testing.T) {
	c := NewRasterCanvas(20, 20)
	c.ClipRect(RectFromLTWH(0, 0, 10, 20))
	c.DrawRect(RectFromLTWH(0, 0, 20, 20), FillPaint(ColorRed))
	img := c.Image()
	if px := img.RGBAAt(5, 5); px.A != 0xFF {
		t.Errorf("expected paint inside clip, got %+v", px)
	}
	if px := img.RGBAAt(15, 5); px.A != 0 {
		t.Errorf("expected no paint outside clip, got %+v", px)
	}
}

func TestRasterCanvasStrokeLeavesHole(t *testing.T) {
	c := NewRasterCanvas(30, 30)
	paint := Paint{Color: ColorBlack, Style: PaintStyleStroke, StrokeWidth: 3}
	c.DrawRRect(RRectFromRectAndRadius(RectFromLTWH(0, 0, 30, 30), CircularRadius(0)), paint)
	img := c.Image()
	if px := img.RGBAAt(1, 15); px.A != 0xFF {
		t.Errorf("expected stroke at left edge, got %+v", px)
	}
	if px := img.RGBAAt(15, 15); px.A != 0 {
		t.Errorf("expected hollow center, got %+v", px)
	}
}

func TestRasterCanvasRoundedCornerIsTransparent(t *testing.T) {
	c := NewRasterCanvas(40, 40)
	c.DrawRRect(RRectFromRectAndRadius(RectFromLTWH(0, 0, 40, 40), CircularRadius(12)), FillPaint(ColorRed))
	img := c.Image()
	if px := img.RGBAAt(0, 0); px.A != 0 {
		t.Errorf("expected rounded corner to be empty, got %+v", px)
	}
	if px := img.RGBAAt(20, 1); px.A == 0 {
		t.Errorf("expected top edge center to be painted, got %+v", px)
	}
}
