package typeface

import (
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNTFace is a [Face] backed by TrueType or OpenType font data.
// Metrics are cached per size.
type SFNTFace struct {
	font *sfnt.Font
	name string

	mu      sync.Mutex
	buf     sfnt.Buffer
	metrics map[float64]FontMetrics
}

// ParseFace parses TrueType or OpenType (CFF) data.
func ParseFace(data []byte) (*SFNTFace, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	face := &SFNTFace{font: f, metrics: make(map[float64]FontMetrics)}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil {
		face.name = name
	}
	return face, nil
}

// Name returns the font's full name from its name table, if present.
func (f *SFNTFace) Name() string {
	return f.name
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// Metrics returns ascent (negative), descent and leading at size.
func (f *SFNTFace) Metrics(size float64) (FontMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.metrics[size]; ok {
		return m, nil
	}
	fm, err := f.font.Metrics(&f.buf, ppem(size), font.HintingNone)
	if err != nil {
		return FontMetrics{}, err
	}
	ascent := fromFixed(fm.Ascent)
	descent := fromFixed(fm.Descent)
	leading := fromFixed(fm.Height) - ascent - descent
	if leading < 0 {
		leading = 0
	}
	m := FontMetrics{Ascent: -ascent, Descent: descent, Leading: leading}
	f.metrics[size] = m
	return m, nil
}

// Advance returns the horizontal advance of text at size, including kerning.
// Runes missing from the font use the advance of glyph 0.
func (f *SFNTFace) Advance(text string, size float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	em := ppem(size)
	var total fixed.Int26_6
	prev, hasPrev := sfnt.GlyphIndex(0), false
	for _, r := range text {
		idx, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			return 0, err
		}
		if hasPrev {
			if k, err := f.font.Kern(&f.buf, prev, idx, em, font.HintingNone); err == nil {
				total += k
			}
		}
		adv, err := f.font.GlyphAdvance(&f.buf, idx, em, font.HintingNone)
		if err != nil {
			return 0, err
		}
		total += adv
		prev, hasPrev = idx, true
	}
	return fromFixed(total), nil
}

// FontFace returns an x/image font.Face at size for glyph rasterization.
func (f *SFNTFace) FontFace(size float64) (font.Face, error) {
	return opentype.NewFace(f.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
