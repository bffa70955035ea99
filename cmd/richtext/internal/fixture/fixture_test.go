package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/unicode/bidi"

	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/mapbuffer/mapbuffertest"
)

func write(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBackings(t *testing.T) {
	dir := t.TempDir()
	paths := map[string]string{
		"map": write(t, dir, "a.json", []byte(`{"version": "1.0.0", "shards": [{"fragments": [{"string": "hi"}]}]}`)),
		"yaml": write(t, dir, "b.yml", []byte("shards:\n  - fragments:\n      - string: hi\n")),
		"mapbuffer": write(t, dir, "c.mb", mapbuffertest.New().
			PutArray(attributedstring.KeyShards, mapbuffertest.New().
				PutArray(attributedstring.KeyShardFragments, mapbuffertest.New().
					PutString(attributedstring.KeyFragmentString, "hi"))).
			Bytes()),
	}
	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			f, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			s, err := attributedstring.JoinedString(f.String)
			if err != nil || s != "hi" {
				t.Errorf("JoinedString = %q, %v", s, err)
			}
			if f.Layout != nil {
				t.Error("unexpected layout")
			}
			want := "map"
			if strings.HasSuffix(path, ".mb") {
				want = "mapbuffer"
			}
			if f.Backing != want {
				t.Errorf("Backing = %q, want %q", f.Backing, want)
			}
		})
	}
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		data string
	}{
		{"unknown extension", "a.txt", "hello"},
		{"bad json", "b.json", "{"},
		{"future version", "c.json", `{"version": "2.0.0"}`},
		{"corrupt buffer", "d.mb", "\x01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(write(t, dir, tt.file, []byte(tt.data))); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadSidecarLayout(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "s.json", []byte(`{"shards": []}`))
	write(t, dir, "s.layout.yaml", []byte(`
advance: 10
topPadding: 1
lines:
  - {start: 0, end: 4, top: 0, baseline: 16, bottom: 20, left: 0, right: 40}
  - {start: 4, end: 6, top: 20, baseline: 36, bottom: 40, left: 80, right: 100, rtl: true}
`))
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Layout == nil || f.Layout.LineCount() != 2 {
		t.Fatalf("layout = %+v", f.Layout)
	}
	if f.Layout.Lines()[1].Direction != bidi.RightToLeft {
		t.Error("second line should be right-to-left")
	}
	if x := f.Layout.PrimaryHorizontal(5); x != 90 {
		t.Errorf("PrimaryHorizontal(5) = %v, want 90", x)
	}
	if f.Layout.TopPadding() != 1 {
		t.Errorf("TopPadding() = %v", f.Layout.TopPadding())
	}
}

func TestLoadLayoutRejectsGaps(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "g.layout.yaml", []byte("lines:\n  - {start: 1, end: 2}\n"))
	if _, err := LoadLayout(path); err == nil {
		t.Error("expected error for layout not starting at 0")
	}
}
