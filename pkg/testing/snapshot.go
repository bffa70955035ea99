package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/richtext/pkg/graphics"
)

// UpdateSnapshotsEnv names the environment variable that, when set to "1",
// makes MatchesFile rewrite golden files instead of comparing.
const UpdateSnapshotsEnv = "RICHTEXT_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the text, its spans and the display operations of one
// paint pass.
type Snapshot struct {
	Text  string     `json:"text,omitempty"`
	Size  [2]float64 `json:"size"`
	Spans []SpanNode `json:"spans,omitempty"`
	// Bounds is the painted extent of DisplayOps, absent when nothing
	// was drawn.
	Bounds     map[string]any `json:"bounds,omitempty"`
	DisplayOps []DisplayOp    `json:"displayOps,omitempty"`
}

// SpanNode records a span attachment.
type SpanNode struct {
	Type  string         `json:"type"`
	Start int            `json:"start"`
	End   int            `json:"end"`
	Props map[string]any `json:"props,omitempty"`
}

// CaptureSnapshot records the display operations produced by paint.
func CaptureSnapshot(size graphics.Size, paint func(graphics.Canvas)) *Snapshot {
	recorder := &graphics.PictureRecorder{}
	canvas := recorder.BeginRecording(size)
	paint(canvas)
	dl := recorder.EndRecording()
	snap := &Snapshot{
		Size:       [2]float64{round2(size.Width), round2(size.Height)},
		DisplayOps: SerializeDisplayList(dl),
	}
	if b := dl.Bounds(); !b.IsEmpty() {
		snap.Bounds = serializeRect(b)
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// RICHTEXT_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.MarshalIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := s.MarshalIndent()
	b, _ := other.MarshalIndent()
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

// MarshalIndent encodes the snapshot as indented JSON with sorted keys.
func (s *Snapshot) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary renders the ops one per line, params in key order. Useful in
// failure messages.
func Summary(ops []DisplayOp) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.Op)
		for _, k := range sortedKeys(op.Params) {
			fmt.Fprintf(&b, " %s=%v", k, op.Params[k])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
