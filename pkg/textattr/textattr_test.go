package textattr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/richtext/pkg/dynamic"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/mapbuffer/mapbuffertest"
	"github.com/go-drift/richtext/pkg/textattr"
	"github.com/go-drift/richtext/pkg/typeface"
)

const styleJSON = `{
  "color": -16777216,
  "backgroundColor": 4294967040,
  "fontFamily": "Inter",
  "fontSize": 15.5,
  "fontSizeMultiplier": 1.2,
  "fontWeight": "bold",
  "fontStyle": "italic",
  "letterSpacing": 0.5,
  "lineHeight": 22,
  "textAlign": "center",
  "textDecorationLine": "underline",
  "isHighlighted": true,
  "layoutDirection": "rtl",
  "role": "link"
}`

func styleBuffer() *mapbuffertest.Builder {
	return mapbuffertest.New().
		PutInt(textattr.KeyForegroundColor, -16777216).
		PutInt(textattr.KeyBackgroundColor, -256).
		PutString(textattr.KeyFontFamily, "Inter").
		PutDouble(textattr.KeyFontSize, 15.5).
		PutDouble(textattr.KeyFontSizeMultiplier, 1.2).
		PutString(textattr.KeyFontWeight, "700").
		PutString(textattr.KeyFontStyle, "italic").
		PutDouble(textattr.KeyLetterSpacing, 0.5).
		PutInt(textattr.KeyLineHeight, 22).
		PutString(textattr.KeyAlignment, "center").
		PutString(textattr.KeyTextDecorationLine, "underline").
		PutBool(textattr.KeyIsHighlighted, true).
		PutString(textattr.KeyLayoutDirection, "rtl").
		PutString(textattr.KeyRole, "link")
}

func TestBackingsProduceEqualProps(t *testing.T) {
	m, err := dynamic.FromJSON([]byte(styleJSON))
	require.NoError(t, err)
	fromMap := textattr.FromMap(m)
	fromBuf := textattr.FromMapBuffer(styleBuffer().Build())

	assert.True(t, fromMap.Equal(fromBuf), "map: %+v\nbuffer: %+v", fromMap, fromBuf)
	assert.Equal(t, fromMap.LayoutHash(), fromBuf.LayoutHash())

	assert.Equal(t, graphics.ColorBlack, fromMap.ForegroundColor)
	assert.True(t, fromMap.HasForegroundColor)
	assert.Equal(t, graphics.ColorYellow, fromMap.BackgroundColor)
	assert.Equal(t, "Inter", fromMap.FontFamily)
	assert.Equal(t, typeface.WeightBold, fromMap.FontWeight)
	assert.Equal(t, typeface.StyleItalic, fromMap.FontStyle)
	assert.Equal(t, 22.0, fromMap.LineHeight)
	assert.True(t, fromMap.IsHighlighted)
}

func TestFromMapIsDeterministic(t *testing.T) {
	m, err := dynamic.FromJSON([]byte(styleJSON))
	require.NoError(t, err)
	assert.True(t, textattr.FromMap(m).Equal(textattr.FromMap(m)))
}

func TestEmptyInputIsDefaults(t *testing.T) {
	p := textattr.FromMap(dynamic.NewMap(nil))
	assert.True(t, p.Equal(textattr.Defaults()))
	assert.True(t, textattr.FromMapBuffer(mapbuffertest.New().Build()).Equal(p))

	assert.False(t, p.HasForegroundColor)
	assert.Equal(t, float64(textattr.UnsetFontSize), p.FontSize)
	assert.True(t, math.IsNaN(p.LetterSpacing))
	assert.True(t, p.AllowFontScaling)
	assert.True(t, p.FontAttributes().Unset())
}

func TestWrongTypedValuesAreIgnored(t *testing.T) {
	p := textattr.FromMap(dynamic.NewMap(map[string]any{
		"fontSize":         "large",
		"color":            true,
		"fontWeight":       550,
		"fontStyle":        3,
		"allowFontScaling": "no",
		"lineHeight":       []any{1},
	}))
	assert.True(t, p.Equal(textattr.Defaults()), "%+v", p)
}

func TestFontWeightParsing(t *testing.T) {
	tests := []struct {
		in   string
		want typeface.Weight
	}{
		{"bold", typeface.WeightBold},
		{"normal", typeface.WeightNormal},
		{"100", typeface.WeightThin},
		{"900", typeface.WeightBlack},
		{"950", typeface.WeightUnset},
		{"450", typeface.WeightUnset},
		{"heavy", typeface.WeightUnset},
		{"", typeface.WeightUnset},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textattr.ParseFontWeight(tt.in), "ParseFontWeight(%q)", tt.in)
	}

	p := textattr.FromMap(dynamic.NewMap(map[string]any{"fontWeight": 600}))
	assert.Equal(t, typeface.WeightSemibold, p.FontWeight)
}

func TestFontStyleParsing(t *testing.T) {
	assert.Equal(t, typeface.StyleItalic, textattr.ParseFontStyle("italic"))
	assert.Equal(t, typeface.StyleItalic, textattr.ParseFontStyle("Oblique"))
	assert.Equal(t, typeface.StyleNormal, textattr.ParseFontStyle("normal"))
	assert.Equal(t, typeface.StyleUnset, textattr.ParseFontStyle("slanted"))
}

func TestHexColorStrings(t *testing.T) {
	p := textattr.FromMap(dynamic.NewMap(map[string]any{"color": "#FF0000"}))
	assert.True(t, p.HasForegroundColor)
	assert.Equal(t, graphics.ColorRed, p.ForegroundColor)
}

func TestEffectiveFontSize(t *testing.T) {
	p := textattr.Defaults()
	assert.Equal(t, 14.0, p.EffectiveFontSize())

	p.FontSize = 15.5
	assert.Equal(t, 16.0, p.EffectiveFontSize())

	p.FontSizeMultiplier = 2
	assert.Equal(t, 31.0, p.EffectiveFontSize())

	p.AllowFontScaling = false
	assert.Equal(t, 16.0, p.EffectiveFontSize())
}

func TestLayoutEquivalenceIgnoresColor(t *testing.T) {
	a := textattr.Defaults()
	a.FontSize = 12
	b := a
	b.ForegroundColor, b.HasForegroundColor = graphics.ColorRed, true

	assert.False(t, a.Equal(b))
	assert.True(t, a.LayoutEquivalent(b))
	assert.Equal(t, a.LayoutHash(), b.LayoutHash())

	b.FontWeight = typeface.WeightBold
	assert.False(t, a.LayoutEquivalent(b))
	assert.NotEqual(t, a.LayoutHash(), b.LayoutHash())
}

func TestFontAttributes(t *testing.T) {
	p := textattr.Defaults()
	p.FontFamily = "serif"
	p.FontWeight = typeface.WeightLight
	assert.Equal(t, typeface.Attributes{
		Family: "serif",
		Style:  typeface.StyleUnset,
		Weight: typeface.WeightLight,
	}, p.FontAttributes())
}
