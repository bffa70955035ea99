package typeface

import (
	"testing"
	"testing/fstest"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type stubFace struct {
	name string
}

func (f *stubFace) Metrics(size float64) (FontMetrics, error) {
	return FontMetrics{Ascent: -0.8 * size, Descent: 0.2 * size}, nil
}

func (f *stubFace) Advance(text string, size float64) (float64, error) {
	return float64(len(text)) * size / 2, nil
}

type attrs Attributes

func (a attrs) FontAttributes() Attributes { return Attributes(a) }

func newStubCollection(t *testing.T) (*Collection, map[string]*stubFace) {
	t.Helper()
	faces := map[string]*stubFace{}
	c := NewCollection()
	add := func(fam string, w Weight, italic bool) {
		f := &stubFace{name: Typeface{Family: fam, Weight: w, Italic: italic}.String()}
		faces[f.name] = f
		if err := c.Register(fam, w, italic, f); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	add("Inter", WeightLight, false)
	add("Inter", WeightNormal, false)
	add("Inter", WeightBold, false)
	add("Inter", WeightNormal, true)
	add("Base", WeightNormal, false)
	add("Base", WeightBold, false)
	add("Base", WeightBold, true)
	return c, faces
}

func TestApplyStylesAllUnsetReturnsBase(t *testing.T) {
	c, _ := newStubCollection(t)
	base := Typeface{Family: "Base", Weight: WeightNormal, Face: &stubFace{name: "base"}}
	got := ApplyStyles(base, StyleUnset, WeightUnset, "", c)
	if got != base {
		t.Errorf("ApplyStyles = %v, want base %v", got, base)
	}
}

func TestApplyStylesFamilyLookup(t *testing.T) {
	c, faces := newStubCollection(t)
	base, _ := c.Match("Base", WeightNormal, false)

	got := ApplyStyles(base, StyleUnset, WeightUnset, "inter", c)
	if got.Family != "Inter" || got.Weight != WeightNormal || got.Italic {
		t.Errorf("ApplyStyles(inter) = %v", got)
	}
	if got.Face != faces["Inter 400 normal"] {
		t.Errorf("expected regular Inter face")
	}
}

func TestApplyStylesUnknownFamilyFallsBackToBaseFamily(t *testing.T) {
	c, _ := newStubCollection(t)
	base, _ := c.Match("Base", WeightNormal, false)

	got := ApplyStyles(base, StyleItalic, WeightBold, "Missing Sans", c)
	if got.Family != "Base" {
		t.Errorf("Family = %q, want Base", got.Family)
	}
	if !got.Italic || got.Weight != WeightBold {
		t.Errorf("expected bold italic, got %v", got)
	}
}

func TestApplyStylesInheritsFromBase(t *testing.T) {
	c, _ := newStubCollection(t)
	base, _ := c.Match("Base", WeightBold, true)

	got := ApplyStyles(base, StyleUnset, WeightUnset, "Inter", c)
	if got.Weight != WeightNormal || !got.Italic {
		// Inter has no bold italic: the italic member wins over weight.
		t.Errorf("ApplyStyles = %v, want Inter 400 italic", got)
	}

	got = ApplyStyles(base, StyleNormal, WeightUnset, "", c)
	if got.Italic || got.Weight != WeightBold || got.Family != "Base" {
		t.Errorf("ApplyStyles(normal) = %v, want Base 700 normal", got)
	}
}

func TestApplyStylesWithoutSourceKeepsBaseFace(t *testing.T) {
	face := &stubFace{name: "base"}
	base := Typeface{Family: "Base", Weight: WeightNormal, Face: face}
	got := ApplyStyles(base, StyleItalic, WeightUnset, "Other", nil)
	if got.Face != face || got.Family != "Base" || !got.Italic {
		t.Errorf("ApplyStyles = %v", got)
	}
}

func TestFindEffective(t *testing.T) {
	c, _ := newStubCollection(t)
	base, _ := c.Match("Base", WeightNormal, false)

	got := FindEffective(attrs{Family: "Inter", Style: StyleUnset, Weight: WeightBold}, base, c)
	if got.Family != "Inter" || got.Weight != WeightBold {
		t.Errorf("FindEffective = %v", got)
	}
	if got := FindEffective(nil, base, c); got != base {
		t.Errorf("FindEffective(nil) = %v, want base", got)
	}
}

func TestWeightMatching(t *testing.T) {
	c := NewCollection()
	for _, w := range []Weight{WeightThin, WeightLight, WeightMedium, WeightBold, WeightBlack} {
		if err := c.Register("W", w, false, &stubFace{}); err != nil {
			t.Fatal(err)
		}
	}
	tests := []struct {
		want Weight
		got  Weight
	}{
		{WeightNormal, WeightMedium},
		{WeightMedium, WeightMedium},
		{WeightLight, WeightLight},
		{WeightExtraLight, WeightThin},
		{WeightSemibold, WeightBold},
		{WeightExtraBold, WeightBlack},
	}
	for _, tt := range tests {
		tf, ok := c.Match("W", tt.want, false)
		if !ok {
			t.Fatalf("Match(%v) not found", tt.want)
		}
		if tf.Weight != tt.got {
			t.Errorf("Match(%v).Weight = %v, want %v", tt.want, tf.Weight, tt.got)
		}
	}
}

func TestWeightMatchingNormalPrefersLighterOverHeavier(t *testing.T) {
	c := NewCollection()
	_ = c.Register("W", WeightLight, false, &stubFace{})
	_ = c.Register("W", WeightBold, false, &stubFace{})
	tf, _ := c.Match("W", WeightNormal, false)
	if tf.Weight != WeightLight {
		t.Errorf("Match(400).Weight = %v, want 300", tf.Weight)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	c := NewCollection()
	if err := c.Register("", WeightNormal, false, &stubFace{}); err == nil {
		t.Error("expected error for empty family")
	}
	if err := c.Register("x", WeightNormal, false, nil); err == nil {
		t.Error("expected error for nil face")
	}
	if err := c.Register("x", WeightUnset, false, &stubFace{}); err == nil {
		t.Error("expected error for unset weight")
	}
	if err := c.RegisterFont("x", WeightNormal, false, []byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestAliasAndFamilies(t *testing.T) {
	c, _ := newStubCollection(t)
	c.Alias("sans-serif", "Inter")
	if !c.Has("SANS-SERIF") {
		t.Error("expected alias to resolve case-insensitively")
	}
	tf, ok := c.Match("sans-serif", WeightBold, false)
	if !ok || tf.Family != "Inter" {
		t.Errorf("Match(alias) = %v, %v", tf, ok)
	}
	fams := c.Families()
	if len(fams) != 2 || fams[0] != "Base" || fams[1] != "Inter" {
		t.Errorf("Families() = %v", fams)
	}
}

func TestAssetLookup(t *testing.T) {
	c := NewCollection()
	c.SetAssets(fstest.MapFS{
		"fonts/Custom.ttf":      {Data: goregular.TTF},
		"fonts/Custom_bold.ttf": {Data: gobold.TTF},
		"fonts/Broken.ttf":      {Data: []byte("garbage")},
	})

	tf, ok := c.Match("Custom", WeightBold, false)
	if !ok {
		t.Fatal("expected Custom to load from assets")
	}
	if tf.Weight != WeightBold || tf.Face == nil {
		t.Errorf("Match(Custom bold) = %v", tf)
	}
	if _, ok := c.Match("Broken", WeightNormal, false); ok {
		t.Error("expected unparsable asset to be skipped")
	}
	if _, ok := c.Match("Absent", WeightNormal, false); ok {
		t.Error("expected absent family to miss")
	}
}

func TestBundledGoFontsMetrics(t *testing.T) {
	c := GoFonts()
	tf, ok := c.Match(FamilyGo, WeightNormal, false)
	if !ok {
		t.Fatal("Go family missing")
	}
	m, err := tf.Metrics(20)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if m.Ascent >= 0 {
		t.Errorf("Ascent = %v, want negative", m.Ascent)
	}
	if m.Descent <= 0 {
		t.Errorf("Descent = %v, want positive", m.Descent)
	}
	narrow, err := tf.Face.Advance("ii", 20)
	if err != nil {
		t.Fatal(err)
	}
	wide, err := tf.Face.Advance("WW", 20)
	if err != nil {
		t.Fatal(err)
	}
	if !(narrow > 0 && wide > narrow) {
		t.Errorf("Advance(ii)=%v Advance(WW)=%v", narrow, wide)
	}
}

func TestDefaultAliases(t *testing.T) {
	c := Default()
	for alias, want := range map[string]string{
		FamilySansSerif: FamilyGo,
		FamilySerif:     FamilyLatinModernRoman,
		FamilyMonospace: FamilyGoMono,
	} {
		tf, ok := c.Match(alias, WeightNormal, false)
		if !ok || tf.Family != want {
			t.Errorf("Match(%q) = %v, %v; want family %q", alias, tf, ok, want)
		}
	}
	if base := DefaultTypeface(c); base.Face == nil || base.Family != FamilyGo {
		t.Errorf("DefaultTypeface = %v", base)
	}
}

func TestTypefaceWithoutFace(t *testing.T) {
	if _, err := (Typeface{Family: "x"}).Metrics(12); err == nil {
		t.Error("expected error for missing face")
	}
}
