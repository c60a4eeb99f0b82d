package segment

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a run of text by the game construct that produced it.
type Kind uint8

const (
	KindNormal Kind = iota
	KindLink
	KindMonsterbold
	KindSpell
	KindSpeech
)

// Color is an opaque color name or hex string. Empty means "inherit the
// window default"; the render layer decides what that resolves to.
type Color string

// Link identifies the game object behind a clickable run of text. Text
// accumulates the visible words attached to the same ExistID and is not
// part of link identity.
type Link struct {
	ExistID string
	Noun    string
	Text    string
	Coord   string
}

// Segment is a run of styled text within one logical line. A nil Link means
// the text is not clickable.
type Segment struct {
	Text string
	Fg   Color
	Bg   Color
	Bold bool
	Kind Kind
	Link *Link
}

// StyleEq reports whether two segments carry the same style and link
// identity, i.e. whether they may merge into one run.
func (s Segment) StyleEq(o Segment) bool {
	return s.Fg == o.Fg && s.Bg == o.Bg && s.Bold == o.Bold && s.Kind == o.Kind && linkEq(s.Link, o.Link)
}

func linkEq(a, b *Link) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ExistID == b.ExistID && a.Noun == b.Noun && a.Coord == b.Coord
}

// Line is one logical line of styled text.
type Line []Segment

// Append adds a segment to the line, merging it into the last run when the
// style matches. Empty segments are dropped.
func Append(line Line, seg Segment) Line {
	if seg.Text == "" {
		return line
	}
	if len(line) > 0 {
		last := &line[len(line)-1]
		if last.StyleEq(seg) {
			last.Text += seg.Text
			return line
		}
	}
	return append(line, seg)
}

// Text renders the line as plain text, ignoring styling.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Len is the line length in runes.
func (l Line) Len() int {
	n := 0
	for _, s := range l {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// SegmentAt returns the segment covering the given rune offset.
func (l Line) SegmentAt(off int) (Segment, bool) {
	if off < 0 {
		return Segment{}, false
	}
	for _, s := range l {
		n := utf8.RuneCountInString(s.Text)
		if off < n {
			return s, true
		}
		off -= n
	}
	return Segment{}, false
}

// WordAt returns the whitespace-delimited word covering the given rune
// offset, stripped of surrounding punctuation. Empty when the offset is out
// of range or sits on whitespace.
func (l Line) WordAt(off int) string {
	runes := []rune(l.Text())
	if off < 0 || off >= len(runes) || isSpace(runes[off]) {
		return ""
	}
	start := off
	for start > 0 && !isSpace(runes[start-1]) {
		start--
	}
	end := off
	for end < len(runes) && !isSpace(runes[end]) {
		end++
	}
	return strings.Trim(string(runes[start:end]), ".,;:!?'\"()[]")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// Plain builds an unstyled segment.
func Plain(text string) Segment {
	return Segment{Text: text}
}
