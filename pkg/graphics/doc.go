// Package graphics provides the drawing surface used to paint text
// decorations: colors, geometry, paints, a canvas interface with a
// recording implementation for replay and inspection, and a CPU raster
// canvas for offline rendering.
package graphics
