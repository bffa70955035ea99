package typeface

import (
	"sync"

	"github.com/go-fonts/latin-modern/lmmono10italic"
	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-drift/richtext/pkg/errors"
)

// Bundled family names.
const (
	FamilyGo               = "Go"
	FamilyGoMono           = "Go Mono"
	FamilyLatinModernRoman = "Latin Modern Roman"
	FamilyLatinModernSans  = "Latin Modern Sans"
	FamilyLatinModernMono  = "Latin Modern Mono"
	FamilySansSerif        = "sans-serif"
	FamilySerif            = "serif"
	FamilyMonospace        = "monospace"
	defaultFamily          = FamilyGo
)

type bundledFont struct {
	family string
	weight Weight
	italic bool
	data   []byte
}

var goFonts = []bundledFont{
	{FamilyGo, WeightNormal, false, goregular.TTF},
	{FamilyGo, WeightMedium, false, gomedium.TTF},
	{FamilyGo, WeightBold, false, gobold.TTF},
	{FamilyGo, WeightNormal, true, goitalic.TTF},
	{FamilyGo, WeightMedium, true, gomediumitalic.TTF},
	{FamilyGo, WeightBold, true, gobolditalic.TTF},
	{FamilyGoMono, WeightNormal, false, gomono.TTF},
	{FamilyGoMono, WeightBold, false, gomonobold.TTF},
	{FamilyGoMono, WeightNormal, true, gomonoitalic.TTF},
	{FamilyGoMono, WeightBold, true, gomonobolditalic.TTF},
}

var latinModernFonts = []bundledFont{
	{FamilyLatinModernRoman, WeightNormal, false, lmroman10regular.TTF},
	{FamilyLatinModernRoman, WeightBold, false, lmroman10bold.TTF},
	{FamilyLatinModernRoman, WeightNormal, true, lmroman10italic.TTF},
	{FamilyLatinModernRoman, WeightBold, true, lmroman10bolditalic.TTF},
	{FamilyLatinModernSans, WeightNormal, false, lmsans10regular.TTF},
	{FamilyLatinModernSans, WeightBold, false, lmsans10bold.TTF},
	{FamilyLatinModernSans, WeightNormal, true, lmsans10oblique.TTF},
	{FamilyLatinModernMono, WeightNormal, false, lmmono10regular.TTF},
	{FamilyLatinModernMono, WeightNormal, true, lmmono10italic.TTF},
}

func loadBundled(op string, fonts []bundledFont) *Collection {
	c := NewCollection()
	for _, f := range fonts {
		if err := c.RegisterFont(f.family, f.weight, f.italic, f.data); err != nil {
			errors.Report(&errors.Error{Op: op, Kind: errors.KindFont, Err: err})
		}
	}
	return c
}

// GoFonts returns a new collection of the Go font families.
func GoFonts() *Collection {
	return loadBundled("typeface.GoFonts", goFonts)
}

// LatinModern returns a new collection of the Latin Modern families.
func LatinModern() *Collection {
	return loadBundled("typeface.LatinModern", latinModernFonts)
}

var (
	defaultCollection     *Collection
	defaultCollectionOnce sync.Once
)

// Default returns the shared collection of every bundled family, with the
// generic sans-serif, serif and monospace aliases. Callers must not register
// into it; use [NewDefault] for a private copy.
func Default() *Collection {
	defaultCollectionOnce.Do(func() {
		defaultCollection = NewDefault()
	})
	return defaultCollection
}

// NewDefault builds a fresh collection equivalent to [Default].
func NewDefault() *Collection {
	c := GoFonts()
	c.Merge(LatinModern())
	c.Alias(FamilySansSerif, FamilyGo)
	c.Alias(FamilySerif, FamilyLatinModernRoman)
	c.Alias(FamilyMonospace, FamilyGoMono)
	return c
}

// DefaultTypeface returns the regular member of the default family in c.
func DefaultTypeface(c *Collection) Typeface {
	if c != nil {
		if tf, ok := c.Match(defaultFamily, WeightNormal, false); ok {
			return tf
		}
	}
	return Typeface{Family: defaultFamily, Weight: WeightNormal}
}
