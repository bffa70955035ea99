package graphics

import "slices"

// DisplayList is a finished recording. It can be replayed onto any Canvas
// any number of times.
type DisplayList struct {
	ops    []func(Canvas)
	size   Size
	bounds Rect
}

// Paint replays the recorded operations onto canvas in order.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op(canvas)
	}
}

// Size returns the size passed to BeginRecording.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// Bounds returns the union of every shape drawn, in the coordinates of the
// recording canvas before any recorded transform. Clip and Clear do not
// contribute. The zero Rect means nothing was drawn.
func (d *DisplayList) Bounds() Rect {
	return d.bounds
}

// PictureRecorder captures drawing into a DisplayList. A recorder can be
// reused; each BeginRecording starts from an empty list.
type PictureRecorder struct {
	ops       []func(Canvas)
	bounds    Rect
	recording bool
	size      Size
}

// BeginRecording starts a new recording and returns the canvas to draw on.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.bounds = Rect{}
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size, xf: Identity}
}

// EndRecording stops recording. Drawing on the canvas afterwards has no
// effect on the returned list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	return &DisplayList{
		ops:    slices.Clone(r.ops),
		size:   r.size,
		bounds: r.bounds,
	}
}

func (r *PictureRecorder) append(op func(Canvas)) bool {
	if !r.recording {
		return false
	}
	r.ops = append(r.ops, op)
	return true
}

// recordingCanvas mirrors the transform stack so drawn shapes can be
// accumulated into the recorder's bounds.
type recordingCanvas struct {
	recorder *PictureRecorder
	size     Size
	xf       Transform
	stack    []Transform
}

func (c *recordingCanvas) Save() {
	if c.recorder.append(Canvas.Save) {
		c.stack = append(c.stack, c.xf)
	}
}

func (c *recordingCanvas) Restore() {
	if !c.recorder.append(Canvas.Restore) || len(c.stack) == 0 {
		return
	}
	c.xf = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *recordingCanvas) Translate(dx, dy float64) {
	if c.recorder.append(func(cv Canvas) { cv.Translate(dx, dy) }) {
		c.xf = c.xf.Translated(dx, dy)
	}
}

func (c *recordingCanvas) Scale(sx, sy float64) {
	if c.recorder.append(func(cv Canvas) { cv.Scale(sx, sy) }) {
		c.xf = c.xf.Scaled(sx, sy)
	}
}

func (c *recordingCanvas) ClipRect(rect Rect) {
	c.recorder.append(func(cv Canvas) { cv.ClipRect(rect) })
}

func (c *recordingCanvas) Clear(color Color) {
	c.recorder.append(func(cv Canvas) { cv.Clear(color) })
}

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	if c.recorder.append(func(cv Canvas) { cv.DrawRect(rect, paint) }) {
		c.grow(rect)
	}
}

func (c *recordingCanvas) DrawRRect(rrect RRect, paint Paint) {
	if c.recorder.append(func(cv Canvas) { cv.DrawRRect(rrect, paint) }) {
		c.grow(rrect.Rect)
	}
}

func (c *recordingCanvas) Size() Size {
	return c.size
}

func (c *recordingCanvas) grow(r Rect) {
	c.recorder.bounds = c.recorder.bounds.Union(c.xf.Apply(r))
}
