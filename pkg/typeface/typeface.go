// Package typeface resolves the font used to measure and draw a run of text.
//
// A text record exposes its requested family, style and weight through
// [FontAttributeProvider]. [FindEffective] combines those attributes with a
// base [Typeface] and a [Source] of registered faces to pick the nearest
// match. Resolution never fails: unknown families fall back to the base
// typeface's family with the requested style and weight applied.
package typeface

import "fmt"

// Style is the requested slant of a run of text.
type Style int

const (
	// StyleUnset means the record does not specify a style.
	StyleUnset  Style = -1
	StyleNormal Style = 0
	StyleItalic Style = 2
)

// String returns a human-readable representation of the style.
func (s Style) String() string {
	switch s {
	case StyleUnset:
		return "unset"
	case StyleNormal:
		return "normal"
	case StyleItalic:
		return "italic"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// Weight is a numeric font weight in the CSS 100-900 range.
type Weight int

const (
	// WeightUnset means the record does not specify a weight.
	WeightUnset      Weight = -1
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemibold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// String returns a human-readable representation of the weight.
func (w Weight) String() string {
	switch w {
	case WeightUnset:
		return "unset"
	case WeightThin:
		return "thin"
	case WeightExtraLight:
		return "extra_light"
	case WeightLight:
		return "light"
	case WeightNormal:
		return "normal"
	case WeightMedium:
		return "medium"
	case WeightSemibold:
		return "semibold"
	case WeightBold:
		return "bold"
	case WeightExtraBold:
		return "extra_bold"
	case WeightBlack:
		return "black"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// valid reports whether w is a usable weight.
func (w Weight) valid() bool {
	return w >= 1 && w <= 1000
}

// Attributes is the font request carried by a text record. An empty Family
// means no family was requested.
type Attributes struct {
	Family string
	Style  Style
	Weight Weight
}

// Unset reports whether no attribute is requested.
func (a Attributes) Unset() bool {
	return a.Family == "" && a.Style == StyleUnset && a.Weight == WeightUnset
}

// FontAttributeProvider is implemented by records that own font attributes.
type FontAttributeProvider interface {
	FontAttributes() Attributes
}

// FontMetrics holds vertical metrics at a given size. Ascent is negative
// (above the baseline) and Descent positive, as on Android.
type FontMetrics struct {
	Ascent  float64
	Descent float64
	Leading float64
}

// Height returns the distance from ascent to descent.
func (m FontMetrics) Height() float64 {
	return m.Descent - m.Ascent
}

// Face measures glyphs of a single font file.
type Face interface {
	Metrics(size float64) (FontMetrics, error)
	Advance(text string, size float64) (float64, error)
}

// Typeface is a resolved font: a face plus the family, weight and slant it
// was selected for. Face may be nil when no font data backs the typeface.
type Typeface struct {
	Family string
	Weight Weight
	Italic bool
	Face   Face
}

// Metrics returns the face's metrics at size.
func (t Typeface) Metrics(size float64) (FontMetrics, error) {
	if t.Face == nil {
		return FontMetrics{}, fmt.Errorf("typeface: %q has no face", t.Family)
	}
	return t.Face.Metrics(size)
}

// String describes the typeface for logs and CLI output.
func (t Typeface) String() string {
	slant := "normal"
	if t.Italic {
		slant = "italic"
	}
	return fmt.Sprintf("%s %d %s", t.Family, int(t.Weight), slant)
}

// Source looks up registered faces.
type Source interface {
	// Match returns the registered typeface of family closest to weight and
	// italic, or false when the family is unknown.
	Match(family string, weight Weight, italic bool) (Typeface, bool)
}
