package graphics

// Canvas is the drawing surface handed to spans. It carries the subset of
// android.graphics.Canvas that highlight painting needs: a save/restore
// stack of transform and clip, plain and rounded rectangles.
type Canvas interface {
	// Save pushes the transform and clip.
	Save()
	// Restore pops the state pushed by the matching Save. Unbalanced calls
	// are ignored.
	Restore()

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	// ClipRect intersects the clip with rect in local coordinates.
	ClipRect(rect Rect)

	// Clear fills the clip with color, ignoring blending.
	Clear(color Color)
	DrawRect(rect Rect, paint Paint)
	DrawRRect(rrect RRect, paint Paint)

	// Size returns the device size of the surface.
	Size() Size
}
