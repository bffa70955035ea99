package span

import (
	stderrors "errors"
	"fmt"
	"unicode/utf16"

	"github.com/go-drift/richtext/pkg/errors"
)

// Attached is a span with the range it covers.
type Attached struct {
	Span  any
	Start int
	End   int
}

// Text is a string with spans attached to ranges of it. Spans are compared
// by identity, so they should be pointers.
type Text struct {
	s     string
	units int
	spans []Attached
}

// NewText returns s without spans.
func NewText(s string) *Text {
	return &Text{s: s, units: utf16Len(s)}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// String returns the text.
func (t *Text) String() string {
	return t.s
}

// Len returns the length in UTF-16 code units.
func (t *Text) Len() int {
	return t.units
}

// SetSpan attaches span to [start, end). Attaching a span that is already
// attached moves it.
func (t *Text) SetSpan(span any, start, end int) error {
	if span == nil {
		return &errors.Error{Op: "span.Text.SetSpan", Err: stderrors.New("nil span")}
	}
	if err := t.checkRange(start, end); err != nil {
		return &errors.Error{Op: "span.Text.SetSpan", Kind: errors.KindIndex, Err: err}
	}
	for i := range t.spans {
		if t.spans[i].Span == span {
			t.spans[i].Start, t.spans[i].End = start, end
			return nil
		}
	}
	t.spans = append(t.spans, Attached{Span: span, Start: start, End: end})
	return nil
}

// checkRange validates [start, end) as positions in [0, Len()].
func (t *Text) checkRange(start, end int) error {
	switch {
	case start < 0 || start > t.units:
		return &errors.IndexError{Index: start, Count: t.units + 1}
	case end < 0 || end > t.units:
		return &errors.IndexError{Index: end, Count: t.units + 1}
	case end < start:
		return fmt.Errorf("end %d before start %d", end, start)
	}
	return nil
}

// RemoveSpan detaches span; it is a no-op when span is not attached.
func (t *Text) RemoveSpan(span any) {
	for i := range t.spans {
		if t.spans[i].Span == span {
			t.spans = append(t.spans[:i], t.spans[i+1:]...)
			return
		}
	}
}

// ClearSpans detaches every span.
func (t *Text) ClearSpans() {
	t.spans = nil
}

// Spans returns the attached spans in attach order.
func (t *Text) Spans() []Attached {
	out := make([]Attached, len(t.spans))
	copy(out, t.spans)
	return out
}

// SpanRange returns the range span is attached to.
func (t *Text) SpanRange(span any) (start, end int, ok bool) {
	for _, a := range t.spans {
		if a.Span == span {
			return a.Start, a.End, true
		}
	}
	return 0, 0, false
}
