// Package textattr resolves raw style attributes into a [Props] record.
//
// The same attributes arrive either as a string-keyed map (camelCase names)
// or as a binary buffer (integer TA_KEY_* keys). Both readers walk one
// conversion table, so equivalent inputs produce [Props.Equal] records.
// Parsing never fails: a missing or wrong-typed value leaves the attribute
// unset.
package textattr

import (
	"hash/fnv"
	"math"

	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/typeface"
)

const (
	// UnsetFontSize marks a record without a font size.
	UnsetFontSize = -1
	// DefaultFontSize is used when no font size is set.
	DefaultFontSize = 14
)

// Props is the resolved text-attribute record of a fragment. Unset float
// attributes are NaN.
type Props struct {
	ForegroundColor    graphics.Color
	HasForegroundColor bool
	BackgroundColor    graphics.Color
	HasBackgroundColor bool
	Opacity            float64

	FontFamily         string
	FontSize           float64
	FontSizeMultiplier float64
	FontWeight         typeface.Weight
	FontStyle          typeface.Style
	FontVariant        string
	AllowFontScaling   bool
	LetterSpacing      float64
	LineHeight         float64

	Alignment            string
	BaseWritingDirection string
	LayoutDirection      string

	TextDecorationColor    graphics.Color
	HasTextDecorationColor bool
	TextDecorationLine     string
	TextDecorationStyle    string
	TextTransform          string

	TextShadowRadius   float64
	TextShadowColor    graphics.Color
	HasTextShadowColor bool

	IsHighlighted     bool
	Role              string
	AccessibilityRole string
}

// Defaults returns a record with every attribute unset.
func Defaults() Props {
	nan := math.NaN()
	return Props{
		Opacity:            nan,
		FontSize:           UnsetFontSize,
		FontSizeMultiplier: nan,
		FontWeight:         typeface.WeightUnset,
		FontStyle:          typeface.StyleUnset,
		AllowFontScaling:   true,
		LetterSpacing:      nan,
		LineHeight:         nan,
		TextShadowRadius:   nan,
	}
}

// FontAttributes implements typeface.FontAttributeProvider.
func (p Props) FontAttributes() typeface.Attributes {
	return typeface.Attributes{Family: p.FontFamily, Style: p.FontStyle, Weight: p.FontWeight}
}

// EffectiveFontSize returns the font size used for measuring and drawing:
// the size scaled by the multiplier when font scaling is allowed, rounded up.
func (p Props) EffectiveFontSize() float64 {
	size := p.FontSize
	if size == UnsetFontSize || math.IsNaN(size) || size <= 0 {
		size = DefaultFontSize
	}
	if p.AllowFontScaling {
		if m := p.FontSizeMultiplier; !math.IsNaN(m) && m > 0 {
			size *= m
		}
	}
	return math.Ceil(size)
}

// EffectiveLetterSpacing returns the letter spacing in pixels at the
// effective font size, or 0 when unset.
func (p Props) EffectiveLetterSpacing() float64 {
	if math.IsNaN(p.LetterSpacing) {
		return 0
	}
	return p.LetterSpacing
}

func floatEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

// Equal reports whether p and o hold the same attributes. NaN equals NaN.
func (p Props) Equal(o Props) bool {
	return p.ForegroundColor == o.ForegroundColor &&
		p.HasForegroundColor == o.HasForegroundColor &&
		p.BackgroundColor == o.BackgroundColor &&
		p.HasBackgroundColor == o.HasBackgroundColor &&
		floatEqual(p.Opacity, o.Opacity) &&
		p.TextDecorationColor == o.TextDecorationColor &&
		p.HasTextDecorationColor == o.HasTextDecorationColor &&
		p.TextDecorationLine == o.TextDecorationLine &&
		p.TextDecorationStyle == o.TextDecorationStyle &&
		p.TextTransform == o.TextTransform &&
		floatEqual(p.TextShadowRadius, o.TextShadowRadius) &&
		p.TextShadowColor == o.TextShadowColor &&
		p.HasTextShadowColor == o.HasTextShadowColor &&
		p.BaseWritingDirection == o.BaseWritingDirection &&
		p.LayoutDirection == o.LayoutDirection &&
		p.IsHighlighted == o.IsHighlighted &&
		p.Role == o.Role &&
		p.AccessibilityRole == o.AccessibilityRole &&
		p.LayoutEquivalent(o)
}

// LayoutEquivalent reports whether p and o lay text out identically: only
// attributes that affect measurement are compared.
func (p Props) LayoutEquivalent(o Props) bool {
	return p.FontFamily == o.FontFamily &&
		floatEqual(p.FontSize, o.FontSize) &&
		floatEqual(p.FontSizeMultiplier, o.FontSizeMultiplier) &&
		p.FontWeight == o.FontWeight &&
		p.FontStyle == o.FontStyle &&
		p.FontVariant == o.FontVariant &&
		p.AllowFontScaling == o.AllowFontScaling &&
		floatEqual(p.LetterSpacing, o.LetterSpacing) &&
		floatEqual(p.LineHeight, o.LineHeight) &&
		p.Alignment == o.Alignment
}

// LayoutHash hashes the attributes compared by [Props.LayoutEquivalent].
func (p Props) LayoutHash() uint64 {
	h := fnv.New64a()
	writeString := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeUint := func(v uint64) {
		var b [8]byte
		for i := range b {
			b[i] = byte(v >> (8 * i))
		}
		h.Write(b[:])
	}
	writeFloat := func(f float64) {
		if math.IsNaN(f) {
			writeUint(math.Float64bits(math.NaN()))
			return
		}
		if f == 0 {
			f = 0 // fold -0
		}
		writeUint(math.Float64bits(f))
	}
	writeString(p.FontFamily)
	writeFloat(p.FontSize)
	writeFloat(p.FontSizeMultiplier)
	writeUint(uint64(int64(p.FontWeight)))
	writeUint(uint64(int64(p.FontStyle)))
	writeString(p.FontVariant)
	if p.AllowFontScaling {
		writeUint(1)
	} else {
		writeUint(0)
	}
	writeFloat(p.LetterSpacing)
	writeFloat(p.LineHeight)
	writeString(p.Alignment)
	return h.Sum64()
}
