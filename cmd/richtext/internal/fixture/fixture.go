// Package fixture loads attributed strings and optional line layouts from
// files.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/bidi"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/richtext/cmd/richtext/internal/config"
	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/dynamic"
	"github.com/go-drift/richtext/pkg/mapbuffer"
	"github.com/go-drift/richtext/pkg/textlayout"
)

// Fixture is a loaded attributed string.
type Fixture struct {
	Path    string
	Backing string
	String  attributedstring.AttributedString
	// Layout is the sidecar layout, or nil when the fixture has none.
	Layout *textlayout.StaticLayout
}

// Load reads path by extension: .json and .yaml/.yml hold the map
// representation, .mb the binary buffer. A sibling <name>.layout.yaml is
// loaded as the fixture's layout.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &Fixture{Path: path}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".yaml", ".yml":
		var m dynamic.Map
		if ext == ".json" {
			m, err = dynamic.FromJSON(data)
		} else {
			m, err = dynamic.FromYAML(data)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		if m.HasKey("version") {
			v, err := m.String("version")
			if err != nil {
				return nil, fmt.Errorf("%s: version must be a string", filepath.Base(path))
			}
			if _, err := config.CheckVersion(v); err != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
		}
		f.Backing = "map"
		f.String = attributedstring.FromMap(m)
	case ".mb":
		buf, err := mapbuffer.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		f.Backing = "mapbuffer"
		f.String = attributedstring.FromMapBuffer(buf)
	default:
		return nil, fmt.Errorf("unsupported fixture type %q (want .json, .yaml or .mb)", ext)
	}

	layout, err := LoadLayout(LayoutPath(path))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	f.Layout = layout
	return f, nil
}

// LayoutPath returns the sidecar layout path of a fixture.
func LayoutPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".layout.yaml"
}

// layoutFile is the sidecar layout document.
type layoutFile struct {
	Lines []struct {
		Start    int     `yaml:"start"`
		End      int     `yaml:"end"`
		Top      float64 `yaml:"top"`
		Baseline float64 `yaml:"baseline"`
		Bottom   float64 `yaml:"bottom"`
		Left     float64 `yaml:"left"`
		Right    float64 `yaml:"right"`
		RTL      bool    `yaml:"rtl"`
	} `yaml:"lines"`
	// Advances lists every UTF-16 unit's advance; Advance applies one
	// width to all units instead.
	Advances      []float64 `yaml:"advances"`
	Advance       float64   `yaml:"advance"`
	TopPadding    float64   `yaml:"topPadding"`
	BottomPadding float64   `yaml:"bottomPadding"`
}

// LoadLayout reads a sidecar layout.
func LoadLayout(path string) (*textlayout.StaticLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc layoutFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	lines := make([]textlayout.Line, len(doc.Lines))
	units := 0
	for i, l := range doc.Lines {
		lines[i] = textlayout.Line{
			Start: l.Start, End: l.End,
			Top: l.Top, Baseline: l.Baseline, Bottom: l.Bottom,
			Left: l.Left, Right: l.Right,
		}
		if l.RTL {
			lines[i].Direction = bidi.RightToLeft
		}
		units = l.End
	}
	advances := doc.Advances
	if len(advances) == 0 {
		advances = textlayout.UniformAdvances(units, doc.Advance)
	}
	layout, err := textlayout.New(lines, advances)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return layout.WithPadding(doc.TopPadding, doc.BottomPadding), nil
}
