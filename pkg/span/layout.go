package span

// Layout is the line geometry of laid-out text. Offsets are UTF-16 code
// units; lines are indexed from 0.
type Layout interface {
	LineCount() int
	LineForOffset(offset int) int
	// PrimaryHorizontal is the x position of the insertion point at
	// offset, accounting for the paragraph direction.
	PrimaryHorizontal(offset int) float64
	LineBaseline(line int) float64
	LineLeft(line int) float64
	LineRight(line int) float64
	LineTop(line int) float64
	LineBottom(line int) float64
	// TopPadding is the extra space above the first line; it is negative
	// or zero when the first line's top includes it.
	TopPadding() float64
	BottomPadding() float64
}

// LineTopWithoutPadding returns the top of line, excluding the layout's top
// padding on the first line.
func LineTopWithoutPadding(l Layout, line int) float64 {
	top := l.LineTop(line)
	if line == 0 {
		top -= l.TopPadding()
	}
	return top
}

// LineBottomWithoutPadding returns the bottom of line, excluding the
// layout's bottom padding on the last line.
func LineBottomWithoutPadding(l Layout, line int) float64 {
	bottom := l.LineBottom(line)
	if line == l.LineCount()-1 {
		bottom -= l.BottomPadding()
	}
	return bottom
}
