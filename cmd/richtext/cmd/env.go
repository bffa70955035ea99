package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/richtext/cmd/richtext/internal/config"
	"github.com/go-drift/richtext/cmd/richtext/internal/fixture"
	"github.com/go-drift/richtext/pkg/span"
	"github.com/go-drift/richtext/pkg/textlayout"
	"github.com/go-drift/richtext/pkg/typeface"
)

// env is the resolved configuration and font collection of a command.
type env struct {
	cfg   *config.Resolved
	fonts *typeface.Collection
	base  typeface.Typeface
}

func loadEnv() (*env, error) {
	var (
		cfg *config.Config
		dir string
		err error
	)
	if configPath != "" {
		dir = filepath.Dir(configPath)
		cfg, err = config.Load(configPath)
	} else {
		if dir, err = os.Getwd(); err != nil {
			return nil, err
		}
		cfg, err = config.LoadOptional(dir)
	}
	if err != nil {
		return nil, err
	}
	resolved, err := config.Resolve(cfg, dir)
	if err != nil {
		return nil, err
	}

	fonts := typeface.NewDefault()
	if resolved.FontsDir != "" {
		fonts.SetAssets(os.DirFS(resolved.FontsDir))
	}
	for alias, target := range resolved.Aliases {
		fonts.Alias(alias, target)
	}
	base, ok := fonts.Match(resolved.Font, typeface.WeightNormal, false)
	if !ok {
		return nil, fmt.Errorf("font %q not found", resolved.Font)
	}
	return &env{cfg: resolved, fonts: fonts, base: base}, nil
}

// flags are the options shared by the fixture commands.
type flags struct {
	width     float64
	hasWidth  bool
	allShards bool
	output    string
	scale     float64
	path      string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", arg)
			}
			i++
			return args[i], nil
		}
		switch arg {
		case "--width":
			v, err := value()
			if err != nil {
				return nil, err
			}
			if f.width, err = strconv.ParseFloat(v, 64); err != nil || f.width < 0 {
				return nil, fmt.Errorf("invalid --width %q", v)
			}
			f.hasWidth = true
		case "--scale":
			v, err := value()
			if err != nil {
				return nil, err
			}
			if f.scale, err = strconv.ParseFloat(v, 64); err != nil || f.scale <= 0 {
				return nil, fmt.Errorf("invalid --scale %q", v)
			}
		case "--all-shards":
			f.allShards = true
		case "-o", "--output":
			v, err := value()
			if err != nil {
				return nil, err
			}
			f.output = v
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag: %s", arg)
			}
			if f.path != "" {
				return nil, fmt.Errorf("unexpected argument: %s", arg)
			}
			f.path = arg
		}
	}
	if f.path == "" {
		return nil, fmt.Errorf("fixture path required")
	}
	return f, nil
}

func (e *env) maxWidth(f *flags) float64 {
	if f.hasWidth {
		return f.width
	}
	return e.cfg.MaxWidth
}

func (e *env) buildOptions(f *flags) span.BuildOptions {
	return span.BuildOptions{Style: e.cfg.Style, AllShards: f.allShards || e.cfg.AllShards}
}

// view lays the fixture out, using its sidecar layout when it has one.
func (e *env) view(fx *fixture.Fixture, f *flags) (*textlayout.View, error) {
	var (
		view *textlayout.View
		err  error
	)
	if fx.Layout != nil {
		text, err := span.BuildShardSpans(fx.String, e.buildOptions(f))
		if err != nil {
			return nil, err
		}
		view = textlayout.NewView(text, fx.Layout, e.base)
	} else {
		view, err = textlayout.ViewFromAttributedString(fx.String, e.base, textlayout.ViewOptions{
			Spans:    e.buildOptions(f),
			Layout:   textlayout.Options{MaxWidth: e.maxWidth(f), Direction: e.cfg.Direction},
			FontSize: e.cfg.FontSize,
		})
		if err != nil {
			return nil, err
		}
	}
	view.PaddingLeft = e.cfg.Padding
	view.PaddingTop = e.cfg.Padding
	return view, nil
}

func loadFixture(args []string) (*env, *fixture.Fixture, *flags, error) {
	f, err := parseFlags(args)
	if err != nil {
		return nil, nil, nil, err
	}
	e, err := loadEnv()
	if err != nil {
		return nil, nil, nil, err
	}
	fx, err := fixture.Load(f.path)
	if err != nil {
		return nil, nil, nil, err
	}
	return e, fx, f, nil
}
