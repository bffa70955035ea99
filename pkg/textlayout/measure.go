package textlayout

import (
	"unicode/utf16"

	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/measure"
	"github.com/go-drift/richtext/pkg/textattr"
	"github.com/go-drift/richtext/pkg/typeface"
)

// Measurer measures attributed strings with [Build]. Its Measure method
// fits [measure.Cache.GetOrMeasure].
type Measurer struct {
	Base    typeface.Typeface
	Options Options
}

// Measure lays out key.String wrapped at key.MaxWidth. Attachments sit on
// their line's baseline; one is clipped when it extends past MaxWidth.
func (m Measurer) Measure(key measure.Key) (measure.Measurement, error) {
	joined, err := attributedstring.JoinedString(key.String)
	if err != nil {
		return measure.Measurement{}, err
	}
	fragments, err := attributedstring.AllFragments(key.String)
	if err != nil {
		return measure.Measurement{}, err
	}

	size := float64(textattr.DefaultFontSize)
	for _, f := range fragments {
		if !attributedstring.IsAttachment(f) {
			size = f.TextAttributeProps().EffectiveFontSize()
			break
		}
	}
	opts := m.Options
	opts.MaxWidth = key.MaxWidth
	layout, err := Build(joined, m.Base, size, opts)
	if err != nil {
		return measure.Measurement{}, err
	}

	out := measure.Measurement{
		Size: graphics.Size{Width: layout.Width(), Height: layout.Height()},
	}
	offset := 0
	for _, f := range fragments {
		s := attributedstring.FragmentString(f)
		if attributedstring.IsAttachment(f) {
			x := layout.PrimaryHorizontal(offset)
			baseline := layout.LineBaseline(layout.LineForOffset(offset))
			frame := graphics.Rect{
				Left:   x,
				Top:    baseline - f.Height(),
				Right:  x + f.Width(),
				Bottom: baseline,
			}
			out.Attachments = append(out.Attachments, measure.Attachment{
				Frame:   frame,
				Clipped: key.MaxWidth > 0 && frame.Right > key.MaxWidth,
			})
		}
		for _, r := range s {
			offset += utf16.RuneLen(r)
		}
	}
	return out, nil
}
