// Package textlayout lays text out into lines with fixed geometry. The
// result implements span.Layout, so spans can be drawn over it without a
// platform text engine.
package textlayout

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/bidi"
)

// Line is one laid-out line. Start and End are UTF-16 offsets; End is
// exclusive and equals the next line's Start.
type Line struct {
	Start     int
	End       int
	Top       float64
	Baseline  float64
	Bottom    float64
	Left      float64
	Right     float64
	Direction bidi.Direction
}

// StaticLayout is an immutable line layout with per-unit advances.
type StaticLayout struct {
	lines         []Line
	advances      []float64
	topPadding    float64
	bottomPadding float64
}

// New returns a layout over lines. advances holds the horizontal advance of
// every UTF-16 unit and must cover the last line's End. Lines must be
// contiguous and start at offset 0.
func New(lines []Line, advances []float64) (*StaticLayout, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("textlayout: no lines")
	}
	next := 0
	for i, ln := range lines {
		if ln.Start != next || ln.End < ln.Start {
			return nil, fmt.Errorf("textlayout: line %d covers [%d, %d), want start %d", i, ln.Start, ln.End, next)
		}
		next = ln.End
	}
	if len(advances) < next {
		return nil, fmt.Errorf("textlayout: %d advances for %d units", len(advances), next)
	}
	return &StaticLayout{
		lines:    append([]Line(nil), lines...),
		advances: append([]float64(nil), advances...),
	}, nil
}

// WithPadding returns a copy of l reporting the given first-line top
// padding and last-line bottom padding.
func (l *StaticLayout) WithPadding(top, bottom float64) *StaticLayout {
	c := *l
	c.topPadding = top
	c.bottomPadding = bottom
	return &c
}

// UniformAdvances returns n advances of width w.
func UniformAdvances(n int, w float64) []float64 {
	adv := make([]float64, n)
	for i := range adv {
		adv[i] = w
	}
	return adv
}

// Lines returns a copy of the layout's lines.
func (l *StaticLayout) Lines() []Line {
	return append([]Line(nil), l.lines...)
}

// Width returns the right edge of the widest line.
func (l *StaticLayout) Width() float64 {
	w := 0.0
	for _, ln := range l.lines {
		if ln.Right > w {
			w = ln.Right
		}
	}
	return w
}

// Height returns the bottom of the last line.
func (l *StaticLayout) Height() float64 {
	return l.lines[len(l.lines)-1].Bottom
}

// LineCount returns the number of lines, at least one.
func (l *StaticLayout) LineCount() int {
	return len(l.lines)
}

// LineForOffset returns the line containing offset. An offset at a line
// boundary belongs to the following line; offsets past the end belong to
// the last line.
func (l *StaticLayout) LineForOffset(offset int) int {
	i := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].End > offset
	})
	if i == len(l.lines) {
		return len(l.lines) - 1
	}
	return i
}

// PrimaryHorizontal returns the x position of offset, measured from the
// line's left edge for left-to-right lines and from its right edge
// otherwise.
func (l *StaticLayout) PrimaryHorizontal(offset int) float64 {
	ln := l.lines[l.LineForOffset(offset)]
	if offset < ln.Start {
		offset = ln.Start
	}
	if offset > ln.End {
		offset = ln.End
	}
	x := 0.0
	for _, a := range l.advances[ln.Start:offset] {
		x += a
	}
	if ln.Direction == bidi.RightToLeft {
		return ln.Right - x
	}
	return ln.Left + x
}

// Per-line geometry and the font paddings, as span.Layout requires. line
// must be in [0, LineCount()).
func (l *StaticLayout) LineBaseline(line int) float64 { return l.lines[line].Baseline }
func (l *StaticLayout) LineLeft(line int) float64     { return l.lines[line].Left }
func (l *StaticLayout) LineRight(line int) float64    { return l.lines[line].Right }
func (l *StaticLayout) LineTop(line int) float64      { return l.lines[line].Top }
func (l *StaticLayout) LineBottom(line int) float64   { return l.lines[line].Bottom }
func (l *StaticLayout) TopPadding() float64           { return l.topPadding }
func (l *StaticLayout) BottomPadding() float64        { return l.bottomPadding }

// DetectDirection returns the direction of the first strong character of s,
// or LeftToRight when s has none.
func DetectDirection(s string) bidi.Direction {
	for len(s) > 0 {
		p, size := bidi.LookupString(s)
		if size == 0 {
			break
		}
		switch p.Class() {
		case bidi.L:
			return bidi.LeftToRight
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		}
		s = s[size:]
	}
	return bidi.LeftToRight
}
