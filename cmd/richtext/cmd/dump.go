package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/richtext/cmd/richtext/internal/fixture"
	"github.com/go-drift/richtext/pkg/attributedstring"
	"github.com/go-drift/richtext/pkg/errors"
	"github.com/go-drift/richtext/pkg/textattr"
)

func init() {
	RegisterCommand(&Command{
		Name:  "dump",
		Short: "Print the shards and fragments of a fixture",
		Long: `Print the structure of an attributed string.

Shows every shard with its background color and every fragment with
its text, react tag, attachment size and the text attributes that
differ from the defaults, followed by the joined string and its
layout hash. Attributes that could not be decoded are listed as
warnings at the end.`,
		Usage: "richtext dump <fixture>",
		Run:   runDump,
	})
}

func runDump(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	fx, err := fixture.Load(f.path)
	if err != nil {
		return err
	}
	as := fx.String

	warnings := &errors.Collector{}
	defer errors.Capture(warnings)()

	fmt.Fprintf(stdout, "%s (%s, %d shards)\n", fx.Path, fx.Backing, as.ShardCount())
	for i := 0; i < as.ShardCount(); i++ {
		shard, err := as.Shard(i)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("shard %d: %d fragments", i, shard.FragmentCount())
		if attrs, ok := shard.Attributes(); ok && attrs.HasBackgroundColor {
			line += " background=" + attrs.BackgroundColor.String()
		}
		fmt.Fprintln(stdout, line)

		for j := 0; j < shard.FragmentCount(); j++ {
			frag, err := shard.Fragment(j)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "  fragment %d: %s\n", j, describeFragment(frag))
		}
	}

	joined, err := attributedstring.JoinedString(as)
	if err != nil {
		return err
	}
	hash, err := attributedstring.LayoutHash(as)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "string: %s\n", strconv.Quote(joined))
	fmt.Fprintf(stdout, "layout hash: %016x\n", hash)
	for _, msg := range warnings.Messages() {
		fmt.Fprintf(stdout, "warning: %s\n", msg)
	}
	return nil
}

func describeFragment(f attributedstring.Fragment) string {
	var parts []string
	if attributedstring.IsAttachment(f) {
		parts = append(parts, fmt.Sprintf("attachment %gx%g", f.Width(), f.Height()))
	} else if s, ok := f.Text(); ok {
		parts = append(parts, strconv.Quote(s))
	}
	if tag, ok := f.ReactTag(); ok {
		parts = append(parts, fmt.Sprintf("tag=%d", tag))
	}
	parts = append(parts, describeProps(f.TextAttributeProps())...)
	return strings.Join(parts, " ")
}

// describeProps lists the attributes set on p.
func describeProps(p textattr.Props) []string {
	var out []string
	add := func(k string, v any) { out = append(out, fmt.Sprintf("%s=%v", k, v)) }
	if p.HasForegroundColor {
		add("color", p.ForegroundColor)
	}
	if p.HasBackgroundColor {
		add("backgroundColor", p.BackgroundColor)
	}
	if p.FontFamily != "" {
		add("fontFamily", p.FontFamily)
	}
	if p.FontSize != textattr.UnsetFontSize && !math.IsNaN(p.FontSize) {
		add("fontSize", p.FontSize)
	}
	a := p.FontAttributes()
	if a.Weight >= 0 {
		add("fontWeight", int(a.Weight))
	}
	if a.Style >= 0 {
		add("fontStyle", int(a.Style))
	}
	if !math.IsNaN(p.LetterSpacing) {
		add("letterSpacing", p.LetterSpacing)
	}
	if !math.IsNaN(p.LineHeight) {
		add("lineHeight", p.LineHeight)
	}
	if p.IsHighlighted {
		add("highlighted", true)
	}
	return out
}
