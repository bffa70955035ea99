package attributedstring

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/richtext/pkg/dynamic"
	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/mapbuffer"
	"github.com/go-drift/richtext/pkg/mapbuffer/mapbuffertest"
	"github.com/go-drift/richtext/pkg/textattr"
)

const sampleYAML = `
shards:
  - attributes:
      backgroundColor: 0xFFFFFF00
    fragments:
      - string: "Hello "
        reactTag: 7
        attributes:
          fontSize: 16
          fontWeight: bold
          color: 0xFF000000
      - string: "world"
        attributes:
          fontSize: 16
          fontStyle: italic
  - fragments:
      - string: "\uFFFC"
        isAttachment: true
        width: 24
        height: 18.5
        reactTag: 9
`

func sampleBuffer() *mapbuffertest.Builder {
	hello := mapbuffertest.New().
		PutString(KeyFragmentString, "Hello ").
		PutInt(KeyFragmentReactTag, 7).
		PutMapBuffer(KeyFragmentTextAttributes, mapbuffertest.New().
			PutDouble(textattr.KeyFontSize, 16).
			PutString(textattr.KeyFontWeight, "bold").
			PutInt(textattr.KeyForegroundColor, -16777216))
	world := mapbuffertest.New().
		PutString(KeyFragmentString, "world").
		PutMapBuffer(KeyFragmentTextAttributes, mapbuffertest.New().
			PutDouble(textattr.KeyFontSize, 16).
			PutString(textattr.KeyFontStyle, "italic"))
	attachment := mapbuffertest.New().
		PutString(KeyFragmentString, AttachmentCharacter).
		PutBool(KeyFragmentIsAttachment, true).
		PutDouble(KeyFragmentWidth, 24).
		PutDouble(KeyFragmentHeight, 18.5).
		PutInt(KeyFragmentReactTag, 9)

	first := mapbuffertest.New().
		PutArray(KeyShardFragments, hello, world).
		PutMapBuffer(KeyShardAttributes, mapbuffertest.New().PutInt(KeyShardBackgroundColor, -256))
	second := mapbuffertest.New().PutArray(KeyShardFragments, attachment)

	return mapbuffertest.New().
		PutString(KeyString, "Hello world"+AttachmentCharacter).
		PutArray(KeyShards, first, second)
}

func backings(t *testing.T) map[string]AttributedString {
	t.Helper()
	m, err := dynamic.FromYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	return map[string]AttributedString{
		"map":       FromMap(m),
		"mapbuffer": FromMapBuffer(sampleBuffer().Build()),
	}
}

func mustFragment(t *testing.T, as AttributedString, shard, fragment int) Fragment {
	t.Helper()
	f, err := FragmentAt(as, FragmentHandle{ShardIndex: shard, FragmentIndex: fragment})
	if err != nil {
		t.Fatalf("FragmentAt(%d, %d): %v", shard, fragment, err)
	}
	return f
}

func TestBackingsAgree(t *testing.T) {
	all := backings(t)
	m, b := all["map"], all["mapbuffer"]

	if m.ShardCount() != 2 || b.ShardCount() != 2 {
		t.Fatalf("ShardCount = %d / %d, want 2", m.ShardCount(), b.ShardCount())
	}
	for i := 0; i < m.ShardCount(); i++ {
		sm, err := m.Shard(i)
		if err != nil {
			t.Fatal(err)
		}
		sb, err := b.Shard(i)
		if err != nil {
			t.Fatal(err)
		}
		if sm.FragmentCount() != sb.FragmentCount() {
			t.Fatalf("shard %d: FragmentCount = %d / %d", i, sm.FragmentCount(), sb.FragmentCount())
		}
		for j := 0; j < sm.FragmentCount(); j++ {
			fm := mustFragment(t, m, i, j)
			fb := mustFragment(t, b, i, j)

			if !fm.TextAttributeProps().Equal(fb.TextAttributeProps()) {
				t.Errorf("[%d][%d] props differ:\nmap: %+v\nbuf: %+v", i, j, fm.TextAttributeProps(), fb.TextAttributeProps())
			}
			textM, okM := fm.Text()
			textB, okB := fb.Text()
			if textM != textB || okM != okB {
				t.Errorf("[%d][%d] Text = %q,%v / %q,%v", i, j, textM, okM, textB, okB)
			}
			if fm.Width() != fb.Width() || fm.Height() != fb.Height() {
				t.Errorf("[%d][%d] size = %vx%v / %vx%v", i, j, fm.Width(), fm.Height(), fb.Width(), fb.Height())
			}
			if fm.HasReactTag() != fb.HasReactTag() || fm.HasIsAttachment() != fb.HasIsAttachment() {
				t.Errorf("[%d][%d] presence flags differ", i, j)
			}
			tm, _ := fm.ReactTag()
			tb, _ := fb.ReactTag()
			if tm != tb {
				t.Errorf("[%d][%d] ReactTag = %d / %d", i, j, tm, tb)
			}
		}
	}

	eq, err := LayoutEquivalent(m, b)
	if err != nil || !eq {
		t.Errorf("LayoutEquivalent = %v, %v", eq, err)
	}
	hm, _ := LayoutHash(m)
	hb, _ := LayoutHash(b)
	if hm != hb {
		t.Errorf("LayoutHash = %x / %x", hm, hb)
	}
}

func TestFragmentValues(t *testing.T) {
	for name, as := range backings(t) {
		t.Run(name, func(t *testing.T) {
			hello := mustFragment(t, as, 0, 0)
			if tag, ok := hello.ReactTag(); !ok || tag != 7 {
				t.Errorf("ReactTag = %d, %v, want 7", tag, ok)
			}
			if hello.HasIsAttachment() {
				t.Error("text fragment should not carry isAttachment")
			}
			if _, ok := hello.IsAttachment(); ok {
				t.Error("IsAttachment should report absent")
			}
			props := hello.TextAttributeProps()
			if props.FontSize != 16 || props.ForegroundColor != graphics.ColorBlack {
				t.Errorf("props = %+v", props)
			}

			world := mustFragment(t, as, 0, 1)
			if world.HasReactTag() {
				t.Error("world should have no reactTag")
			}
			if _, ok := world.ReactTag(); ok {
				t.Error("ReactTag should report absent")
			}

			att := mustFragment(t, as, 1, 0)
			if v, ok := att.IsAttachment(); !ok || !v {
				t.Errorf("IsAttachment = %v, %v", v, ok)
			}
			if att.Width() != 24 || att.Height() != 18.5 {
				t.Errorf("size = %vx%v, want 24x18.5", att.Width(), att.Height())
			}
			if !att.TextAttributeProps().Equal(textattr.Defaults()) {
				t.Error("fragment without attributes should resolve to defaults")
			}
		})
	}
}

func TestShardAttributes(t *testing.T) {
	for name, as := range backings(t) {
		t.Run(name, func(t *testing.T) {
			first, _ := as.Shard(0)
			attrs, ok := first.Attributes()
			if !ok || !attrs.HasBackgroundColor || attrs.BackgroundColor != graphics.ColorYellow {
				t.Errorf("Attributes() = %+v, %v", attrs, ok)
			}
			second, _ := as.Shard(1)
			if _, ok := second.Attributes(); ok {
				t.Error("second shard should have no attributes")
			}
		})
	}
}

func TestOutOfRange(t *testing.T) {
	for name, as := range backings(t) {
		t.Run(name, func(t *testing.T) {
			for _, idx := range []int{-1, 2} {
				_, err := as.Shard(idx)
				var indexErr *errors.IndexError
				if !stderrors.As(err, &indexErr) {
					t.Fatalf("Shard(%d): expected IndexError, got %v", idx, err)
				}
				if indexErr.Count != 2 {
					t.Errorf("Count = %d, want 2", indexErr.Count)
				}
				var richErr *errors.Error
				if !stderrors.As(err, &richErr) || richErr.Kind != errors.KindIndex || richErr.Backing != name {
					t.Errorf("unexpected error wrapper %#v", richErr)
				}
			}
			sh, _ := as.Shard(0)
			if _, err := sh.Fragment(5); err == nil {
				t.Error("Fragment(5): expected error")
			}
		})
	}
}

func TestMissingChildren(t *testing.T) {
	cases := map[string]AttributedString{
		"map":       FromMap(dynamic.NewMap(map[string]any{})),
		"mapbuffer": FromMapBuffer(mapbuffertest.New().Build()),
	}
	for name, as := range cases {
		t.Run(name, func(t *testing.T) {
			if as.ShardCount() != 0 {
				t.Errorf("ShardCount = %d, want 0", as.ShardCount())
			}
			_, err := as.Shard(0)
			var missing *errors.MissingFieldError
			if !stderrors.As(err, &missing) {
				t.Errorf("expected MissingFieldError, got %v", err)
			}
			empty, err := IsEmpty(as)
			if err != nil || !empty {
				t.Errorf("IsEmpty = %v, %v", empty, err)
			}
		})
	}
}

func TestWrongTypedChildren(t *testing.T) {
	as := FromMap(dynamic.NewMap(map[string]any{"shards": "nope"}))
	_, err := as.Shard(0)
	var richErr *errors.Error
	if !stderrors.As(err, &richErr) || richErr.Kind != errors.KindDecode {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestMalformedAttributesAreReported(t *testing.T) {
	h := &errors.Collector{}
	defer errors.Capture(h)()

	as := FromMap(dynamic.NewMap(map[string]any{
		"shards": []any{map[string]any{
			"fragments": []any{map[string]any{"string": "x", "attributes": 5}},
		}},
	}))
	f := mustFragment(t, as, 0, 0)
	if !f.TextAttributeProps().Equal(textattr.Defaults()) {
		t.Error("expected defaults for malformed attributes")
	}
	if errs := h.Errors(); len(errs) != 1 || errs[0].Kind != errors.KindDecode {
		t.Errorf("reported = %v", errs)
	}
}

func TestHelpers(t *testing.T) {
	for name, as := range backings(t) {
		t.Run(name, func(t *testing.T) {
			joined, err := JoinedString(as)
			if err != nil {
				t.Fatal(err)
			}
			if joined != "Hello world"+AttachmentCharacter {
				t.Errorf("JoinedString = %q", joined)
			}
			first, _ := as.Shard(0)
			if s, _ := ShardString(first); s != "Hello world" {
				t.Errorf("ShardString = %q", s)
			}
			if n, _ := CountAllAttachments(as); n != 1 {
				t.Errorf("CountAllAttachments = %d, want 1", n)
			}
			frags, err := AllFragments(as)
			if err != nil || len(frags) != 3 {
				t.Errorf("AllFragments = %d, %v", len(frags), err)
			}
			if empty, _ := IsEmpty(as); empty {
				t.Error("IsEmpty = true")
			}
		})
	}
}

func TestLayoutEquivalenceIgnoresColorAndChecksAttachmentSize(t *testing.T) {
	base := sampleBuffer()
	recolored := mapbuffertest.New().
		PutArray(KeyShards,
			mapbuffertest.New().PutArray(KeyShardFragments,
				mapbuffertest.New().
					PutString(KeyFragmentString, "Hello ").
					PutMapBuffer(KeyFragmentTextAttributes, mapbuffertest.New().
						PutDouble(textattr.KeyFontSize, 16).
						PutString(textattr.KeyFontWeight, "700").
						PutInt(textattr.KeyForegroundColor, -65536)),
				mapbuffertest.New().
					PutString(KeyFragmentString, "world").
					PutMapBuffer(KeyFragmentTextAttributes, mapbuffertest.New().
						PutDouble(textattr.KeyFontSize, 16).
						PutString(textattr.KeyFontStyle, "italic"))),
			mapbuffertest.New().PutArray(KeyShardFragments,
				mapbuffertest.New().
					PutString(KeyFragmentString, AttachmentCharacter).
					PutBool(KeyFragmentIsAttachment, true).
					PutDouble(KeyFragmentWidth, 30).
					PutDouble(KeyFragmentHeight, 18.5)))

	a := FromMapBuffer(base.Build())
	b := FromMapBuffer(recolored.Build())
	if eq, _ := LayoutEquivalent(a, b); eq {
		t.Error("different attachment width should not be equivalent")
	}
	ha, _ := LayoutHash(a)
	hb, _ := LayoutHash(b)
	if ha != hb {
		t.Error("hash should ignore color and attachment size")
	}
}

func TestBinaryKeyNumbers(t *testing.T) {
	// Buffers are written by the native side; these numbers are shared with it.
	keys := []struct {
		name string
		got  mapbuffer.Key
		want mapbuffer.Key
	}{
		{"KeyHash", KeyHash, 0},
		{"KeyString", KeyString, 1},
		{"KeyShards", KeyShards, 2},
		{"KeyCacheID", KeyCacheID, 3},
		{"KeyBaseAttributes", KeyBaseAttributes, 4},
		{"KeyShardFragments", KeyShardFragments, 0},
		{"KeyShardAttributes", KeyShardAttributes, 1},
		{"KeyShardBackgroundColor", KeyShardBackgroundColor, 0},
		{"KeyFragmentString", KeyFragmentString, 0},
		{"KeyFragmentReactTag", KeyFragmentReactTag, 1},
		{"KeyFragmentIsAttachment", KeyFragmentIsAttachment, 2},
		{"KeyFragmentWidth", KeyFragmentWidth, 3},
		{"KeyFragmentHeight", KeyFragmentHeight, 4},
		{"KeyFragmentTextAttributes", KeyFragmentTextAttributes, 5},
		{"textattr.KeyForegroundColor", textattr.KeyForegroundColor, 0},
		{"textattr.KeyFontSize", textattr.KeyFontSize, 4},
		{"textattr.KeyTextShadowRadius", textattr.KeyTextShadowRadius, 18},
		{"textattr.KeyRole", textattr.KeyRole, 26},
		{"textattr.KeyTextTransform", textattr.KeyTextTransform, 27},
	}
	for _, k := range keys {
		if k.got != k.want {
			t.Errorf("%s = %d, want %d", k.name, k.got, k.want)
		}
	}
}
