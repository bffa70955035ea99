package textattr

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/richtext/pkg/dynamic"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/mapbuffer"
	"github.com/go-drift/richtext/pkg/typeface"
)

// Binary keys of the text-attribute buffer, numbered as React Native's
// TA_KEY_* constants. 17 and 23-25 are unused here.
const (
	KeyForegroundColor      mapbuffer.Key = 0
	KeyBackgroundColor      mapbuffer.Key = 1
	KeyOpacity              mapbuffer.Key = 2
	KeyFontFamily           mapbuffer.Key = 3
	KeyFontSize             mapbuffer.Key = 4
	KeyFontSizeMultiplier   mapbuffer.Key = 5
	KeyFontWeight           mapbuffer.Key = 6
	KeyFontStyle            mapbuffer.Key = 7
	KeyFontVariant          mapbuffer.Key = 8
	KeyAllowFontScaling     mapbuffer.Key = 9
	KeyLetterSpacing        mapbuffer.Key = 10
	KeyLineHeight           mapbuffer.Key = 11
	KeyAlignment            mapbuffer.Key = 12
	KeyBestWritingDirection mapbuffer.Key = 13
	KeyTextDecorationColor  mapbuffer.Key = 14
	KeyTextDecorationLine   mapbuffer.Key = 15
	KeyTextDecorationStyle  mapbuffer.Key = 16
	KeyTextShadowRadius     mapbuffer.Key = 18
	KeyTextShadowColor      mapbuffer.Key = 19
	KeyIsHighlighted        mapbuffer.Key = 20
	KeyLayoutDirection      mapbuffer.Key = 21
	KeyAccessibilityRole    mapbuffer.Key = 22
	KeyRole                 mapbuffer.Key = 26
	KeyTextTransform        mapbuffer.Key = 27
)

// reader abstracts the two attribute encodings for the conversion table.
type reader interface {
	has(a *attr) bool
	number(a *attr) (float64, bool)
	str(a *attr) (string, bool)
	boolean(a *attr) (bool, bool)
}

// attr is one row of the conversion table.
type attr struct {
	name  string
	key   mapbuffer.Key
	apply func(p *Props, r reader, a *attr)
}

var attrs = []attr{
	{"color", KeyForegroundColor, func(p *Props, r reader, a *attr) {
		p.ForegroundColor, p.HasForegroundColor = readColor(r, a)
	}},
	{"backgroundColor", KeyBackgroundColor, func(p *Props, r reader, a *attr) {
		p.BackgroundColor, p.HasBackgroundColor = readColor(r, a)
	}},
	{"opacity", KeyOpacity, func(p *Props, r reader, a *attr) {
		p.Opacity = readFloat(r, a)
	}},
	{"fontFamily", KeyFontFamily, func(p *Props, r reader, a *attr) {
		p.FontFamily, _ = r.str(a)
	}},
	{"fontSize", KeyFontSize, func(p *Props, r reader, a *attr) {
		if v, ok := r.number(a); ok && v > 0 {
			p.FontSize = v
		}
	}},
	{"fontSizeMultiplier", KeyFontSizeMultiplier, func(p *Props, r reader, a *attr) {
		p.FontSizeMultiplier = readFloat(r, a)
	}},
	{"fontWeight", KeyFontWeight, func(p *Props, r reader, a *attr) {
		p.FontWeight = readWeight(r, a)
	}},
	{"fontStyle", KeyFontStyle, func(p *Props, r reader, a *attr) {
		if s, ok := r.str(a); ok {
			p.FontStyle = ParseFontStyle(s)
		}
	}},
	{"fontVariant", KeyFontVariant, func(p *Props, r reader, a *attr) {
		p.FontVariant, _ = r.str(a)
	}},
	{"allowFontScaling", KeyAllowFontScaling, func(p *Props, r reader, a *attr) {
		if v, ok := r.boolean(a); ok {
			p.AllowFontScaling = v
		}
	}},
	{"letterSpacing", KeyLetterSpacing, func(p *Props, r reader, a *attr) {
		p.LetterSpacing = readFloat(r, a)
	}},
	{"lineHeight", KeyLineHeight, func(p *Props, r reader, a *attr) {
		p.LineHeight = readFloat(r, a)
	}},
	{"textAlign", KeyAlignment, func(p *Props, r reader, a *attr) {
		p.Alignment, _ = r.str(a)
	}},
	{"baseWritingDirection", KeyBestWritingDirection, func(p *Props, r reader, a *attr) {
		p.BaseWritingDirection, _ = r.str(a)
	}},
	{"textDecorationColor", KeyTextDecorationColor, func(p *Props, r reader, a *attr) {
		p.TextDecorationColor, p.HasTextDecorationColor = readColor(r, a)
	}},
	{"textDecorationLine", KeyTextDecorationLine, func(p *Props, r reader, a *attr) {
		p.TextDecorationLine, _ = r.str(a)
	}},
	{"textDecorationStyle", KeyTextDecorationStyle, func(p *Props, r reader, a *attr) {
		p.TextDecorationStyle, _ = r.str(a)
	}},
	{"textShadowRadius", KeyTextShadowRadius, func(p *Props, r reader, a *attr) {
		p.TextShadowRadius = readFloat(r, a)
	}},
	{"textShadowColor", KeyTextShadowColor, func(p *Props, r reader, a *attr) {
		p.TextShadowColor, p.HasTextShadowColor = readColor(r, a)
	}},
	{"isHighlighted", KeyIsHighlighted, func(p *Props, r reader, a *attr) {
		p.IsHighlighted, _ = r.boolean(a)
	}},
	{"layoutDirection", KeyLayoutDirection, func(p *Props, r reader, a *attr) {
		p.LayoutDirection, _ = r.str(a)
	}},
	{"accessibilityRole", KeyAccessibilityRole, func(p *Props, r reader, a *attr) {
		p.AccessibilityRole, _ = r.str(a)
	}},
	{"role", KeyRole, func(p *Props, r reader, a *attr) {
		p.Role, _ = r.str(a)
	}},
	{"textTransform", KeyTextTransform, func(p *Props, r reader, a *attr) {
		p.TextTransform, _ = r.str(a)
	}},
}

func parse(r reader) Props {
	p := Defaults()
	for i := range attrs {
		a := &attrs[i]
		if r.has(a) {
			a.apply(&p, r, a)
		}
	}
	return p
}

// FromMap resolves camelCase style attributes.
func FromMap(m dynamic.Map) Props {
	return parse(mapReader{m})
}

// FromMapBuffer resolves TA_KEY_* style attributes.
func FromMapBuffer(buf mapbuffer.Buffer) Props {
	return parse(bufferReader{buf})
}

func readFloat(r reader, a *attr) float64 {
	if v, ok := r.number(a); ok {
		return v
	}
	return math.NaN()
}

// readColor accepts an ARGB integer (signed or unsigned 32-bit) or a hex
// string.
func readColor(r reader, a *attr) (graphics.Color, bool) {
	if v, ok := r.number(a); ok {
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxUint32 {
			return 0, false
		}
		return graphics.Color(uint32(int64(v))), true
	}
	if s, ok := r.str(a); ok {
		c, err := graphics.ParseHexColor(s)
		return c, err == nil
	}
	return 0, false
}

func readWeight(r reader, a *attr) typeface.Weight {
	if s, ok := r.str(a); ok {
		return ParseFontWeight(s)
	}
	if v, ok := r.number(a); ok {
		return weightFromNumber(v)
	}
	return typeface.WeightUnset
}

// ParseFontWeight parses "normal", "bold" and numeric weights "100"-"900".
// Anything else is unset.
func ParseFontWeight(s string) typeface.Weight {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "regular":
		return typeface.WeightNormal
	case "bold":
		return typeface.WeightBold
	case "":
		return typeface.WeightUnset
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return typeface.WeightUnset
	}
	return weightFromNumber(v)
}

func weightFromNumber(v float64) typeface.Weight {
	if v != math.Trunc(v) || v < 100 || v > 900 || int(v)%100 != 0 {
		return typeface.WeightUnset
	}
	return typeface.Weight(int(v))
}

// ParseFontStyle parses "normal" and "italic"; "oblique" maps to italic.
func ParseFontStyle(s string) typeface.Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return typeface.StyleNormal
	case "italic", "oblique":
		return typeface.StyleItalic
	default:
		return typeface.StyleUnset
	}
}

type mapReader struct {
	m dynamic.Map
}

func (r mapReader) has(a *attr) bool {
	return r.m.HasKey(a.name)
}

func (r mapReader) number(a *attr) (float64, bool) {
	v, err := r.m.Double(a.name)
	return v, err == nil
}

func (r mapReader) str(a *attr) (string, bool) {
	v, err := r.m.String(a.name)
	return v, err == nil
}

func (r mapReader) boolean(a *attr) (bool, bool) {
	v, err := r.m.Bool(a.name)
	return v, err == nil
}

type bufferReader struct {
	buf mapbuffer.Buffer
}

func (r bufferReader) has(a *attr) bool {
	return r.buf.Has(a.key)
}

func (r bufferReader) number(a *attr) (float64, bool) {
	typ, err := r.buf.TypeOf(a.key)
	if err != nil {
		return 0, false
	}
	switch typ {
	case mapbuffer.TypeDouble:
		v, err := r.buf.Double(a.key)
		return v, err == nil
	case mapbuffer.TypeInt:
		v, err := r.buf.Int(a.key)
		return float64(v), err == nil
	case mapbuffer.TypeLong:
		v, err := r.buf.Long(a.key)
		return float64(v), err == nil
	default:
		return 0, false
	}
}

func (r bufferReader) str(a *attr) (string, bool) {
	v, err := r.buf.String(a.key)
	return v, err == nil
}

func (r bufferReader) boolean(a *attr) (bool, bool) {
	v, err := r.buf.Bool(a.key)
	return v, err == nil
}
