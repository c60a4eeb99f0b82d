// Package links remembers which game objects recently produced clickable
// text, so a click on plain rendered text can still resolve to an object.
package links

import (
	"strings"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

// Entries are evicted oldest-first once the cache is full. 100 covers a few
// screens of game output without letting a busy room grow the cache forever.
const maxEntries = 100

// Cache holds recently seen links in arrival order, newest last. Each window
// owns one; clearing a window's text keeps its cache intact.
type Cache struct {
	entries []segment.Link
}

func New() *Cache {
	return &Cache{}
}

// Record notes that text was rendered for the given link. Consecutive
// recordings for the same exist id accumulate into one entry, so "a large
// wolf" lands in a single entry even when the feed splits it across
// segments. A different exist id always starts a new entry. The entry keeps
// what was actually rendered, not the link's own text.
func (c *Cache) Record(text string, link segment.Link) {
	if text == "" || link.ExistID == "" {
		return
	}
	if n := len(c.entries); n > 0 && c.entries[n-1].ExistID == link.ExistID {
		c.entries[n-1].Text += text
		return
	}
	c.entries = append(c.entries, segment.Link{
		ExistID: link.ExistID,
		Noun:    link.Noun,
		Text:    text,
		Coord:   link.Coord,
	})
	if len(c.entries) > maxEntries {
		c.entries = c.entries[len(c.entries)-maxEntries:]
	}
}

// FindByWord resolves a clicked word against the cache. Matching prefers,
// in order: a word of a multi-word entry, an exact noun, a single-word
// entry. Within each tier newer entries win. Matching is case-insensitive
// and ignores surrounding punctuation on entry words.
func (c *Cache) FindByWord(word string) (segment.Link, bool) {
	word = strings.TrimSpace(word)
	if word == "" {
		return segment.Link{}, false
	}

	for i := len(c.entries) - 1; i >= 0; i-- {
		if e := c.entries[i]; matchesToken(e.Text, word, true) {
			return e, true
		}
	}
	for i := len(c.entries) - 1; i >= 0; i-- {
		if e := c.entries[i]; strings.EqualFold(e.Noun, word) {
			return e, true
		}
	}
	for i := len(c.entries) - 1; i >= 0; i-- {
		if e := c.entries[i]; matchesToken(e.Text, word, false) {
			return e, true
		}
	}
	return segment.Link{}, false
}

func (c *Cache) Len() int {
	return len(c.entries)
}

// matchesToken reports whether word equals one of the whitespace-delimited
// tokens of text, restricted to multi-word or single-word entries.
func matchesToken(text, word string, multi bool) bool {
	tokens := strings.Fields(text)
	if multi != (len(tokens) > 1) {
		return false
	}
	for _, tok := range tokens {
		if strings.EqualFold(strings.Trim(tok, ".,;:!?'\"()[]"), word) {
			return true
		}
	}
	return false
}
