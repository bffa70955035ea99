// Command richtext inspects, measures and renders attributed-string
// fixtures.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/richtext/cmd/richtext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
