package cmd

import (
	"fmt"

	"github.com/go-drift/richtext/pkg/graphics"
	"github.com/go-drift/richtext/pkg/span"
	richtexttest "github.com/go-drift/richtext/pkg/testing"
	"github.com/go-drift/richtext/pkg/textlayout"
)

func init() {
	RegisterCommand(&Command{
		Name:  "ops",
		Short: "Print the highlight display list as JSON",
		Long: `Lay out a fixture and print the drawing operations of its shard
highlights as a JSON snapshot: the joined text, the view size, the
attached spans, the painted bounds and the recorded canvas operations.

Flags:
  --width N       Wrap lines at N (default: render.maxWidth)
  --all-shards    Highlight every shard, not only those with a background`,
		Usage: "richtext ops [--width N] [--all-shards] <fixture>",
		Run:   runOps,
	})
}

func runOps(args []string) error {
	e, fx, f, err := loadFixture(args)
	if err != nil {
		return err
	}
	view, err := e.view(fx, f)
	if err != nil {
		return err
	}
	snap, err := snapshotView(view, e)
	if err != nil {
		return err
	}
	data, err := snap.MarshalIndent()
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

func snapshotView(view *textlayout.View, e *env) (*richtexttest.Snapshot, error) {
	var drawErr error
	snap := richtexttest.CaptureSnapshot(view.Size(), func(c graphics.Canvas) {
		drawErr = view.DrawBackground(c, e.fonts)
	})
	if drawErr != nil {
		return nil, drawErr
	}
	snap.Text = view.Text().String()
	for _, a := range view.Text().Spans() {
		node := richtexttest.SpanNode{Type: fmt.Sprintf("%T", a.Span), Start: a.Start, End: a.End}
		if s, ok := a.Span.(*span.ShardSpan); ok {
			st := s.Style()
			node.Type = "ShardSpan"
			node.Props = map[string]any{
				"fill":         st.FillColor.String(),
				"border":       st.BorderColor.String(),
				"borderWidth":  st.BorderWidth,
				"cornerRadius": st.CornerRadius,
				"fontSize":     s.FontSize(),
			}
		}
		snap.Spans = append(snap.Spans, node)
	}
	return snap, nil
}
