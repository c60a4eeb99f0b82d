package tui

import (
	"github.com/Nisugi/two-face-sub002/internal/segment"
	"github.com/Nisugi/two-face-sub002/internal/stream"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px < r.x+r.w && py >= r.y && py < r.y+r.h
}

// insets measure the chrome actually drawn on each side: the border, plus
// the title row on windows that have one.
type insets struct {
	top, right, bottom, left int
}

func (r rect) inner(in insets) rect {
	return rect{
		x: r.x + in.left,
		y: r.y + in.top,
		w: r.w - in.left - in.right,
		h: r.h - in.top - in.bottom,
	}
}

// window ties one game stream to its buffer, view and screen placement.
type window struct {
	name    string
	title   string
	buf     *stream.Buffer
	view    *stream.View
	rect    rect
	insets  insets
	visible bool
}

func newWindow(name, title string, in insets, opts stream.Options) *window {
	return &window{
		name:    name,
		title:   title,
		buf:     stream.New(opts),
		view:    stream.NewView(),
		insets:  in,
		visible: true,
	}
}

func (w *window) resize(r rect) {
	w.rect = r
	inner := r.inner(w.insets)
	if inner.w < 0 {
		inner.w = 0
	}
	if inner.h < 0 {
		inner.h = 0
	}
	w.view.SetSize(inner.w, inner.h, w.buf)
	w.view.Sync(w.buf)
}

func (w *window) sync() {
	w.view.Sync(w.buf)
}

// clear empties both sides of the window. The buffer's generation does not
// move on clear, so the view has to be reset by hand.
func (w *window) clear() {
	w.buf.Clear()
	w.view.Reset(w.buf)
}

// contentPos translates display coordinates into content-relative column
// and row, reporting false for the border, the title row, or anywhere
// outside the window.
func (w *window) contentPos(x, y int) (int, int, bool) {
	if !w.visible || !w.rect.contains(x, y) {
		return 0, 0, false
	}
	inner := w.rect.inner(w.insets)
	if !inner.contains(x, y) {
		return 0, 0, false
	}
	return x - inner.x, y - inner.y, true
}

// resolveClick turns a click into the link under it: first the segment hit
// test, then the clicked word against this window's link cache.
func (w *window) resolveClick(x, y int) (segment.Link, bool) {
	col, row, ok := w.contentPos(x, y)
	if !ok {
		return segment.Link{}, false
	}
	if link, ok := w.view.LinkAt(col, row); ok {
		return link, true
	}
	word := w.view.WordAt(col, row)
	if word == "" {
		return segment.Link{}, false
	}
	return w.buf.Links().FindByWord(word)
}

func (w *window) scrollBy(delta int) {
	w.view.ScrollBy(delta)
}

func (w *window) innerWidth() int {
	return w.rect.inner(w.insets).w
}

func (w *window) innerHeight() int {
	return w.rect.inner(w.insets).h
}
