package cmd

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/span"
	"github.com/go-drift/richtext/pkg/textattr"
	"github.com/go-drift/richtext/pkg/textlayout"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Rasterize a fixture to PNG",
		Long: `Lay out a fixture, draw its shard highlights and its text with the
configured font, and write the result as a PNG image.

Text is drawn line by line in logical order with the base font; the
highlights use each shard's own font metrics.

Flags:
  -o, --output FILE   Output path (default: fixture name with .png)
  --width N           Wrap lines at N (default: render.maxWidth)
  --scale S           Device pixels per layout unit (default: render.scale)
  --all-shards        Highlight every shard, not only those with a background`,
		Usage: "richtext render [-o FILE] [--width N] [--scale S] <fixture>",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	e, fx, f, err := loadFixture(args)
	if err != nil {
		return err
	}
	view, err := e.view(fx, f)
	if err != nil {
		return err
	}
	scale := e.cfg.Scale
	if f.scale > 0 {
		scale = f.scale
	}
	img, err := rasterize(view, e, scale)
	if err != nil {
		return err
	}

	out := f.output
	if out == "" {
		out = strings.TrimSuffix(fx.Path, filepath.Ext(fx.Path)) + ".png"
	}
	file, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", out, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s (%dx%d)\n", out, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// rasterize draws view at scale. A panicking span is reported and turned
// into an error.
func rasterize(view *textlayout.View, e *env, scale float64) (img *image.RGBA, err error) {
	size := view.Size()
	w := int(math.Ceil(size.Width * scale))
	h := int(math.Ceil(size.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("nothing to render (%gx%g)", size.Width, size.Height)
	}
	canvas := graphics.NewRasterCanvas(w, h)
	canvas.Clear(e.cfg.Background)
	canvas.Scale(scale, scale)

	func() {
		defer errors.RecoverWithCallback("richtext.render", func(r any) {
			err = &errors.Error{Op: "richtext.render", Kind: errors.KindPanic, Err: fmt.Errorf("%v", r)}
		})
		err = view.DrawBackground(canvas, e.fonts)
	}()
	if err != nil {
		return nil, err
	}
	if err := drawText(canvas.Image(), view, e.cfg.Foreground, scale); err != nil {
		return nil, err
	}
	return canvas.Image(), nil
}

// glyphSource is a face that can produce an x/image font face.
type glyphSource interface {
	FontFace(size float64) (font.Face, error)
}

func drawText(dst *image.RGBA, view *textlayout.View, fg graphics.Color, scale float64) error {
	layout, ok := view.Layout().(*textlayout.StaticLayout)
	if !ok {
		return nil
	}
	src, ok := view.Typeface().Face.(glyphSource)
	if !ok {
		return &errors.Error{Op: "richtext.drawText", Kind: errors.KindFont,
			Err: fmt.Errorf("typeface %s cannot draw glyphs", view.Typeface())}
	}
	face, err := src.FontFace(fontSize(view) * scale)
	if err != nil {
		return &errors.Error{Op: "richtext.drawText", Kind: errors.KindFont, Err: err}
	}
	defer face.Close()

	units := utf16.Encode([]rune(view.Text().String()))
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg.NRGBA()), Face: face}
	for _, ln := range layout.Lines() {
		// Sidecar layouts may describe more text than the fixture holds.
		if ln.End > len(units) {
			ln.End = len(units)
		}
		if ln.Start >= ln.End {
			continue
		}
		text := strings.TrimRightFunc(string(utf16.Decode(units[ln.Start:ln.End])), unicode.IsSpace)
		// Attachments are hosted views; leave their box empty.
		text = strings.ReplaceAll(text, attributedstring.AttachmentCharacter, " ")
		if text == "" {
			continue
		}
		x := (view.TotalPaddingLeft() + ln.Left) * scale
		y := (view.TotalPaddingTop() + ln.Baseline) * scale
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
		d.DrawString(text)
	}
	return nil
}

// fontSize is the size the view was laid out at, or the first highlight's
// size for views built over an explicit layout.
func fontSize(view *textlayout.View) float64 {
	if view.FontSize > 0 {
		return view.FontSize
	}
	for _, a := range view.Text().Spans() {
		if s, ok := a.Span.(*span.ShardSpan); ok {
			return s.FontSize()
		}
	}
	return textattr.DefaultFontSize
}
