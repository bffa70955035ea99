package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/text/unicode/bidi"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/span"
)

// FileName is the configuration file looked up by [LoadOptional].
const FileName = "richtext.yaml"

// SupportedMajor is the configuration format major version.
const SupportedMajor = "v1"

// Config represents the optional richtext.yaml configuration.
type Config struct {
	Version string       `yaml:"version,omitempty"`
	Style   StyleConfig  `yaml:"style"`
	Fonts   FontsConfig  `yaml:"fonts"`
	Render  RenderConfig `yaml:"render"`
}

// StyleConfig overrides the highlight style. Colors are hex strings.
type StyleConfig struct {
	Fill         string   `yaml:"fill,omitempty"`
	Border       string   `yaml:"border,omitempty"`
	BorderWidth  *float64 `yaml:"borderWidth,omitempty"`
	CornerRadius *float64 `yaml:"cornerRadius,omitempty"`
	AllShards    bool     `yaml:"allShards,omitempty"`
}

// FontsConfig adds fonts to the bundled collection.
type FontsConfig struct {
	// Dir holds a fonts/ directory of <family>[_bold|_italic|_bold_italic]
	// files, relative to the configuration file.
	Dir     string            `yaml:"dir,omitempty"`
	Default string            `yaml:"default,omitempty"`
	Aliases map[string]string `yaml:"aliases,omitempty"`
}

// RenderConfig contains layout and raster settings.
type RenderConfig struct {
	MaxWidth   float64 `yaml:"maxWidth,omitempty"`
	FontSize   float64 `yaml:"fontSize,omitempty"`
	Padding    float64 `yaml:"padding,omitempty"`
	Scale      float64 `yaml:"scale,omitempty"`
	Background string  `yaml:"background,omitempty"`
	Foreground string  `yaml:"foreground,omitempty"`
	// Direction is auto, ltr or rtl.
	Direction  string  `yaml:"direction,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	Version    string
	Style      span.Style
	AllShards  bool
	FontsDir   string
	Font       string
	Aliases    map[string]string
	MaxWidth   float64
	FontSize   float64
	Padding    float64
	Scale      float64
	Background graphics.Color
	Foreground graphics.Color
	Direction  bidi.Direction
}

// LoadOptional reads richtext.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Resolve validates cfg and fills in defaults. dir anchors relative paths.
func Resolve(cfg *Config, dir string) (*Resolved, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	version, err := CheckVersion(cfg.Version)
	if err != nil {
		return nil, err
	}

	style := span.DefaultStyle()
	if style.FillColor, err = colorOr(cfg.Style.Fill, style.FillColor, "style.fill"); err != nil {
		return nil, err
	}
	if style.BorderColor, err = colorOr(cfg.Style.Border, style.BorderColor, "style.border"); err != nil {
		return nil, err
	}
	if w := cfg.Style.BorderWidth; w != nil {
		if *w < 0 {
			return nil, fmt.Errorf("style.borderWidth must not be negative (got %v)", *w)
		}
		style.BorderWidth = *w
	}
	if r := cfg.Style.CornerRadius; r != nil {
		if *r < 0 {
			return nil, fmt.Errorf("style.cornerRadius must not be negative (got %v)", *r)
		}
		style.CornerRadius = *r
	}

	background, err := colorOr(cfg.Render.Background, graphics.ColorWhite, "render.background")
	if err != nil {
		return nil, err
	}
	foreground, err := colorOr(cfg.Render.Foreground, graphics.ColorBlack, "render.foreground")
	if err != nil {
		return nil, err
	}

	scale := cfg.Render.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 || cfg.Render.MaxWidth < 0 || cfg.Render.Padding < 0 || cfg.Render.FontSize < 0 {
		return nil, fmt.Errorf("render settings must not be negative")
	}

	var direction bidi.Direction
	switch strings.ToLower(strings.TrimSpace(cfg.Render.Direction)) {
	case "", "auto":
		direction = bidi.Neutral
	case "ltr":
		direction = bidi.LeftToRight
	case "rtl":
		direction = bidi.RightToLeft
	default:
		return nil, fmt.Errorf("render.direction must be auto, ltr or rtl (got %q)", cfg.Render.Direction)
	}

	fontsDir := strings.TrimSpace(cfg.Fonts.Dir)
	if fontsDir != "" && !filepath.IsAbs(fontsDir) {
		fontsDir = filepath.Join(dir, fontsDir)
	}
	font := strings.TrimSpace(cfg.Fonts.Default)
	if font == "" {
		font = "sans-serif"
	}

	return &Resolved{
		Root:       dir,
		Version:    version,
		Style:      style,
		AllShards:  cfg.Style.AllShards,
		FontsDir:   fontsDir,
		Font:       font,
		Aliases:    cfg.Fonts.Aliases,
		MaxWidth:   cfg.Render.MaxWidth,
		FontSize:   cfg.Render.FontSize,
		Padding:    cfg.Render.Padding,
		Scale:      scale,
		Background: background,
		Foreground: foreground,
		Direction:  direction,
	}, nil
}

// CheckVersion canonicalizes a format version and rejects unsupported
// majors. An empty version means the current one.
func CheckVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return SupportedMajor + ".0.0", nil
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return "", fmt.Errorf("version %q is not a semantic version", version)
	}
	if major := semver.Major(version); major != SupportedMajor {
		return "", fmt.Errorf("version %s is not supported (want %s.x)", version, SupportedMajor)
	}
	return semver.Canonical(version), nil
}

func colorOr(s string, def graphics.Color, field string) (graphics.Color, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	c, err := graphics.ParseHexColor(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return c, nil
}
