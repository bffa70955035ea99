package cmd

import (
	"fmt"

	"github.com/go-drift/richtext/pkg/measure"
	"github.com/go-drift/richtext/pkg/textlayout"
)

func init() {
	RegisterCommand(&Command{
		Name:  "measure",
		Short: "Print the measured size and attachment frames",
		Long: `Measure a fixture with the configured font and print its size and
the frame of every inline attachment.

Flags:
  --width N   Wrap lines at N (default: render.maxWidth)`,
		Usage: "richtext measure [--width N] <fixture>",
		Run:   runMeasure,
	})
}

// measurements is shared by every measure run in the process.
var measurements = measure.NewCache(measure.DefaultCapacity)

func runMeasure(args []string) error {
	e, fx, f, err := loadFixture(args)
	if err != nil {
		return err
	}
	m := textlayout.Measurer{Base: e.base, Options: textlayout.Options{Direction: e.cfg.Direction}}
	key := measure.Key{String: fx.String, MaxWidth: e.maxWidth(f)}
	result, err := measurements.GetOrMeasure(key, m.Measure)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "size: %gx%g\n", result.Size.Width, result.Size.Height)
	for i, a := range result.Attachments {
		clipped := ""
		if a.Clipped {
			clipped = " (clipped)"
		}
		r := a.Frame
		fmt.Fprintf(stdout, "attachment %d: x=%g y=%g w=%g h=%g%s\n", i, r.Left, r.Top, r.Width(), r.Height(), clipped)
	}
	return nil
}
