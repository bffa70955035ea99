package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-drift/richtext/pkg/typeface"
)

func init() {
	RegisterCommand(&Command{
		Name:  "fonts",
		Short: "List font families or resolve a font request",
		Long: `List the bundled font families, or show which typeface a request
resolves to.

Examples:
  richtext fonts                     List families
  richtext fonts serif bold italic   Resolve a family, weight and style`,
		Usage: "richtext fonts [family [weight] [italic]]",
		Run:   runFonts,
	})
}

func runFonts(args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		for _, name := range e.fonts.Families() {
			marker := ""
			if name == e.base.Family {
				marker = " (default)"
			}
			fmt.Fprintf(stdout, "%s%s\n", name, marker)
		}
		return nil
	}

	weight := typeface.WeightUnset
	style := typeface.StyleUnset
	for _, arg := range args[1:] {
		switch strings.ToLower(arg) {
		case "italic", "oblique":
			style = typeface.StyleItalic
		case "normal":
			style = typeface.StyleNormal
		case "bold":
			weight = typeface.WeightBold
		default:
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid weight or style %q", arg)
			}
			weight = typeface.Weight(n)
		}
	}
	tf := typeface.ApplyStyles(e.base, style, weight, args[0], e.fonts)
	fmt.Fprintf(stdout, "%s\n", tf)
	return nil
}
