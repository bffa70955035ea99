package textlayout

import (
	"math"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/unicode/bidi"

	"github.com/go-drift/richtext/pkg/typeface"
)

// Options controls [Build].
type Options struct {
	// MaxWidth wraps lines at word boundaries; zero disables wrapping.
	MaxWidth float64
	// Direction is the paragraph direction, LeftToRight by default.
	// Neutral or Mixed detect it from each paragraph's first strong
	// character.
	Direction bidi.Direction
	// LineSpacing is added below every line.
	LineSpacing float64
}

// MeasureAdvances returns the advance of every UTF-16 unit of text at size.
// The low surrogate of a pair carries a zero advance.
func MeasureAdvances(text string, face typeface.Face, size float64) ([]float64, error) {
	var adv []float64
	for _, r := range text {
		w, err := face.Advance(string(r), size)
		if err != nil {
			return nil, err
		}
		adv = append(adv, w)
		if utf16.RuneLen(r) == 2 {
			adv = append(adv, 0)
		}
	}
	return adv, nil
}

// runes indexes text by rune with UTF-16 offsets and prefix widths.
type runes struct {
	r      []rune
	offset []int     // UTF-16 offset of rune i; offset[len(r)] is the total.
	prefix []float64 // width of runes before i.
}

func index(text string, adv []float64) runes {
	var rs runes
	off := 0
	x := 0.0
	for _, r := range text {
		rs.r = append(rs.r, r)
		rs.offset = append(rs.offset, off)
		rs.prefix = append(rs.prefix, x)
		n := utf16.RuneLen(r)
		for _, a := range adv[off : off+n] {
			x += a
		}
		off += n
	}
	rs.offset = append(rs.offset, off)
	rs.prefix = append(rs.prefix, x)
	return rs
}

// visibleWidth is the width of runes [from, to) without trailing
// whitespace.
func (rs runes) visibleWidth(from, to int) float64 {
	for to > from && unicode.IsSpace(rs.r[to-1]) {
		to--
	}
	return rs.prefix[to] - rs.prefix[from]
}

// wrap splits runes [start, end) into lines no wider than maxWidth where
// possible. Whitespace hangs past the edge; a word wider than maxWidth is
// split mid-word.
func (rs runes) wrap(start, end int, maxWidth float64) [][2]int {
	var out [][2]int
	lineStart, lastBreak := start, -1
	for i := start; i < end; {
		if unicode.IsSpace(rs.r[i]) {
			i++
			lastBreak = i
			continue
		}
		if maxWidth > 0 && i > lineStart && rs.prefix[i+1]-rs.prefix[lineStart] > maxWidth {
			cut := i
			if lastBreak > lineStart {
				cut = lastBreak
			}
			out = append(out, [2]int{lineStart, cut})
			lineStart, lastBreak, i = cut, -1, cut
			continue
		}
		i++
	}
	return append(out, [2]int{lineStart, end})
}

// Build lays out text in tf at size. Paragraphs split at '\n', which stays
// on the line it ends. Right-to-left lines are aligned to the right edge of
// MaxWidth, or of the widest line when not wrapping.
func Build(text string, tf typeface.Typeface, size float64, opts Options) (*StaticLayout, error) {
	metrics, err := tf.Metrics(size)
	if err != nil {
		return nil, err
	}
	adv, err := MeasureAdvances(text, tf.Face, size)
	if err != nil {
		return nil, err
	}
	rs := index(text, adv)
	n := len(rs.r)

	type run struct {
		from, to int
		dir      bidi.Direction
	}
	var runs []run
	for paraStart := 0; ; {
		paraEnd := paraStart
		for paraEnd < n && rs.r[paraEnd] != '\n' {
			paraEnd++
		}
		dir := opts.Direction
		if dir != bidi.LeftToRight && dir != bidi.RightToLeft {
			dir = DetectDirection(string(rs.r[paraStart:paraEnd]))
		}
		limit := paraEnd
		if paraEnd < n {
			limit++
		}
		for _, ln := range rs.wrap(paraStart, limit, opts.MaxWidth) {
			runs = append(runs, run{from: ln[0], to: ln[1], dir: dir})
		}
		if limit == n {
			if paraEnd < n {
				// A trailing newline opens an empty last line.
				runs = append(runs, run{from: n, to: n, dir: dir})
			}
			break
		}
		paraStart = limit
	}

	lineHeight := metrics.Height() + metrics.Leading + opts.LineSpacing
	lines := make([]Line, len(runs))
	widest := 0.0
	for i, r := range runs {
		w := rs.visibleWidth(r.from, r.to)
		widest = math.Max(widest, w)
		top := float64(i) * lineHeight
		lines[i] = Line{
			Start:     rs.offset[r.from],
			End:       rs.offset[r.to],
			Top:       top,
			Baseline:  top - metrics.Ascent,
			Bottom:    top + lineHeight,
			Right:     w,
			Direction: r.dir,
		}
	}

	box := opts.MaxWidth
	if box <= 0 {
		box = widest
	}
	for i := range lines {
		if lines[i].Direction == bidi.RightToLeft {
			lines[i].Left = box - lines[i].Right
			lines[i].Right = box
		}
	}
	return New(lines, adv)
}
