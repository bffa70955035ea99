// Package testing captures canvas output for tests.
//
// # Display ops
//
// Record what a paint function draws:
//
//	ops := richtexttest.RecordOps(size, func(c graphics.Canvas) {
//	    span.DrawBackground(view, c, fonts)
//	})
//	for _, h := range richtexttest.Highlights(ops) {
//	    // h.Outer is the border rect, h.Inner the fill rect.
//	}
//
// # Snapshot Testing
//
// Capture and compare display-op snapshots:
//
//	snapshot := richtexttest.CaptureSnapshot(size, paint)
//	snapshot.MatchesFile(t, "testdata/highlight.snapshot.json")
//
// Update snapshots with:
//
//	RICHTEXT_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import richtexttest "github.com/go-drift/richtext/pkg/testing"
package testing
