package stream

import (
	"github.com/Nisugi/two-face-sub002/internal/segment"
	"github.com/Nisugi/two-face-sub002/internal/wrap"
)

// View is the render-side cache of one window: the source buffer's lines
// wrapped to the window's content width, plus the scroll position. It syncs
// against the buffer's generation counter so a frame only wraps what the
// frame added.
type View struct {
	width  int
	height int

	lines   []segment.Line
	counts  []int // display lines produced per source line, same order
	srcLen  int   // source length at last sync
	lastGen uint64

	scroll int // display lines scrolled up from the live bottom
}

func NewView() *View {
	return &View{}
}

// SetSize fixes the content area. A width change invalidates every wrapped
// line; a height change only moves the clamp.
func (v *View) SetSize(width, height int, b *Buffer) {
	if height < 0 {
		height = 0
	}
	v.height = height
	if width != v.width {
		v.width = width
		v.rebuild(b)
	}
	v.clampScroll()
}

// Sync brings the view up to date with the buffer. Scrollback windows that
// fell behind by more than the buffer still holds are rebuilt from scratch;
// otherwise only the trailing delta is wrapped and appended. Replace-mode
// windows always rebuild, their content is brand new on every change.
func (v *View) Sync(b *Buffer) {
	// Never subtract in a direction that could wrap the counter.
	if b.gen <= v.lastGen {
		return
	}
	delta := b.gen - v.lastGen
	if b.mode == ModeReplace || delta > uint64(len(b.lines)) {
		v.rebuild(b)
		return
	}

	added := b.lines[len(b.lines)-int(delta):]
	for _, ln := range added {
		out := v.wrapLine(b, ln)
		v.lines = append(v.lines, out...)
		v.counts = append(v.counts, len(out))
	}

	// Mirror the buffer's front trim so the cache stays bounded.
	if over := v.srcLen + int(delta) - len(b.lines); over > 0 {
		drop := 0
		for _, n := range v.counts[:over] {
			drop += n
		}
		v.lines = v.lines[drop:]
		v.counts = v.counts[over:]
	}
	v.srcLen = len(b.lines)
	v.lastGen = b.gen
	v.clampScroll()
}

// Reset empties the view and realigns it with the buffer's current
// generation. Clearing a window goes through here because a clear leaves
// the generation untouched and sync alone cannot see it.
func (v *View) Reset(b *Buffer) {
	v.lines = nil
	v.counts = nil
	v.srcLen = 0
	v.lastGen = b.gen
	v.scroll = 0
}

func (v *View) rebuild(b *Buffer) {
	v.lines = v.lines[:0]
	v.counts = v.counts[:0]
	for _, ln := range b.lines {
		out := v.wrapLine(b, ln)
		v.lines = append(v.lines, out...)
		v.counts = append(v.counts, len(out))
	}
	v.srcLen = len(b.lines)
	v.lastGen = b.gen
	v.clampScroll()
}

func (v *View) wrapLine(b *Buffer, ln segment.Line) []segment.Line {
	if !b.wrap {
		return wrap.NoWrap(ln)
	}
	return wrap.Wrap(ln, v.width)
}

// Start is the index of the first visible display line:
// total - height - scroll, floored at zero.
func (v *View) Start() int {
	start := len(v.lines) - v.height - v.scroll
	if start < 0 {
		start = 0
	}
	return start
}

// Visible returns the display lines currently inside the viewport, at most
// height of them, oldest first.
func (v *View) Visible() []segment.Line {
	start := v.Start()
	end := start + v.height
	if end > len(v.lines) {
		end = len(v.lines)
	}
	return v.lines[start:end]
}

// ScrollBy moves the viewport, positive toward older content. The offset
// clamps to [0, total-height] so the view can neither scroll past the top
// nor detach from the live bottom.
func (v *View) ScrollBy(delta int) {
	v.scroll += delta
	v.clampScroll()
}

// ScrollToLive snaps back to the newest content.
func (v *View) ScrollToLive() {
	v.scroll = 0
}

func (v *View) Scroll() int { return v.scroll }
func (v *View) Len() int    { return len(v.lines) }
func (v *View) Height() int { return v.height }
func (v *View) Width() int  { return v.width }

func (v *View) clampScroll() {
	max := len(v.lines) - v.height
	if max < 0 {
		max = 0
	}
	if v.scroll > max {
		v.scroll = max
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

// LinkAt resolves a content-relative position to the link under it, if
// any. Link text missing from the wire is backfilled from the visible run.
func (v *View) LinkAt(col, row int) (segment.Link, bool) {
	line, ok := v.lineAt(row)
	if !ok {
		return segment.Link{}, false
	}
	seg, ok := line.SegmentAt(col)
	if !ok || seg.Link == nil {
		return segment.Link{}, false
	}
	link := *seg.Link
	if link.Text == "" {
		link.Text = seg.Text
	}
	return link, true
}

// WordAt returns the word under a content-relative position, for link-cache
// lookup when the position carries no direct link.
func (v *View) WordAt(col, row int) string {
	line, ok := v.lineAt(row)
	if !ok {
		return ""
	}
	return line.WordAt(col)
}

func (v *View) lineAt(row int) (segment.Line, bool) {
	if row < 0 || row >= v.height {
		return nil, false
	}
	idx := v.Start() + row
	if idx < 0 || idx >= len(v.lines) {
		return nil, false
	}
	return v.lines[idx], true
}
