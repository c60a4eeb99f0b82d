// Package wrap breaks logical lines of styled text into display lines that
// fit a fixed character width. Styling and link attribution survive the
// break points: a wrapped word keeps the exact segments it was built from.
package wrap

import (
	"unicode"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

// Wrap splits line into display lines of at most width runes. Words that fit
// within width are never split; words wider than the line are hard-broken.
// Whitespace that lands exactly on a break point is dropped so no display
// line starts with an injected space. Always returns at least one line.
func Wrap(line segment.Line, width int) []segment.Line {
	if width <= 0 {
		return []segment.Line{nil}
	}

	w := wrapper{width: width}
	for _, seg := range line {
		for _, r := range seg.Text {
			if unicode.IsSpace(r) {
				w.flushWord()
				w.placeSpace(seg, r)
				continue
			}
			w.word = segment.Append(w.word, styled(seg, string(r)))
			w.wordLen++
		}
	}
	w.flushWord()
	if len(w.cur) > 0 || len(w.lines) == 0 {
		w.lines = append(w.lines, w.cur)
	}
	return w.lines
}

// NoWrap passes the line through as a single display line, used for
// pre-formatted content such as spell listings.
func NoWrap(line segment.Line) []segment.Line {
	return []segment.Line{line}
}

type wrapper struct {
	width   int
	lines   []segment.Line
	cur     segment.Line
	curLen  int
	word    segment.Line
	wordLen int
}

func (w *wrapper) newline() {
	w.lines = append(w.lines, w.cur)
	w.cur = nil
	w.curLen = 0
}

// placeSpace commits a whitespace rune after the word before it has been
// flushed. A space falling on a full line becomes the break itself.
func (w *wrapper) placeSpace(seg segment.Segment, r rune) {
	if w.curLen >= w.width {
		w.newline()
		return
	}
	w.cur = segment.Append(w.cur, styled(seg, string(r)))
	w.curLen++
}

func (w *wrapper) flushWord() {
	if w.wordLen == 0 {
		return
	}
	switch {
	case w.curLen+w.wordLen <= w.width:
		for _, f := range w.word {
			w.cur = segment.Append(w.cur, f)
		}
		w.curLen += w.wordLen
	case w.wordLen <= w.width:
		w.newline()
		for _, f := range w.word {
			w.cur = segment.Append(w.cur, f)
		}
		w.curLen = w.wordLen
	default:
		// Wider than the line: break mid-word, filling each line edge.
		for _, f := range w.word {
			for _, r := range f.Text {
				if w.curLen >= w.width {
					w.newline()
				}
				w.cur = segment.Append(w.cur, styled(f, string(r)))
				w.curLen++
			}
		}
	}
	w.word = nil
	w.wordLen = 0
}

func styled(seg segment.Segment, text string) segment.Segment {
	seg.Text = text
	return seg
}
