// Package stream holds the text state behind each game window: a source
// buffer of logical lines and a render-side view of wrapped display lines
// that follows the source incrementally.
package stream

import (
	"github.com/Nisugi/two-face-sub002/internal/links"
	"github.com/Nisugi/two-face-sub002/internal/segment"
)

// Mode selects how a window's content evolves.
type Mode uint8

const (
	// ModeScrollback appends lines and trims the oldest past the cap.
	ModeScrollback Mode = iota
	// ModeReplace swaps the whole content on every update (room window).
	ModeReplace
)

// Options configures a Buffer at construction. Transform, when set, runs
// over every committed line before it is stored (highlight rules).
type Options struct {
	Mode      Mode
	Wrap      bool
	MaxLines  int
	Transform func(segment.Line) segment.Line
}

// Buffer is the source of truth for one window: committed logical lines,
// the line currently being assembled, and the link cache fed by it. It is
// not safe for concurrent use; all mutation happens on the update loop.
type Buffer struct {
	mode      Mode
	wrap      bool
	maxLines  int
	transform func(segment.Line) segment.Line

	lines []segment.Line
	cur   segment.Line
	gen   uint64
	links *links.Cache
}

func New(opts Options) *Buffer {
	return &Buffer{
		mode:      opts.Mode,
		wrap:      opts.Wrap,
		maxLines:  opts.MaxLines,
		transform: opts.Transform,
		links:     links.New(),
	}
}

// AddSegment appends styled text to the line under assembly, merging
// adjacent equal-style runs. Linked text is recorded in the link cache as
// it arrives, before any wrap or transform touches it.
func (b *Buffer) AddSegment(seg segment.Segment) {
	if seg.Text == "" {
		return
	}
	if seg.Link != nil {
		b.links.Record(seg.Text, *seg.Link)
	}
	b.cur = segment.Append(b.cur, seg)
}

// AddText appends plain text to the line under assembly.
func (b *Buffer) AddText(text string) {
	b.AddSegment(segment.Plain(text))
}

// EndLine commits the line under assembly, empty or not. Blank feed lines
// stay blank display lines.
func (b *Buffer) EndLine() {
	line := b.cur
	b.cur = nil
	if b.transform != nil {
		line = b.transform(line)
	}
	b.lines = append(b.lines, line)
	b.gen++
	if b.maxLines > 0 && len(b.lines) > b.maxLines {
		b.lines = b.lines[len(b.lines)-b.maxLines:]
	}
}

// Replace swaps in a whole new set of lines, dropping any partial line.
// The generation still advances by the batch size so views resync, and the
// incoming links are recorded just as appended ones would be.
func (b *Buffer) Replace(lines []segment.Line) {
	b.cur = nil
	b.lines = append([]segment.Line(nil), lines...)
	for _, line := range lines {
		for _, seg := range line {
			if seg.Link != nil {
				b.links.Record(seg.Text, *seg.Link)
			}
		}
	}
	if n := uint64(len(lines)); n > 0 {
		b.gen += n
	} else {
		b.gen++
	}
}

// Clear drops all content. The generation is untouched and the link cache
// survives: text leaving the screen does not forget the objects it named.
func (b *Buffer) Clear() {
	b.lines = nil
	b.cur = nil
}

func (b *Buffer) Lines() []segment.Line { return b.lines }
func (b *Buffer) Len() int              { return len(b.lines) }
func (b *Buffer) Generation() uint64    { return b.gen }
func (b *Buffer) Links() *links.Cache   { return b.links }
func (b *Buffer) Mode() Mode            { return b.mode }
func (b *Buffer) Wrapping() bool        { return b.wrap }
