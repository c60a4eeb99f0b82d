package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

func viewTexts(v *View) []string {
	out := make([]string, len(v.lines))
	for i, ln := range v.lines {
		out[i] = ln.Text()
	}
	return out
}

func TestSync_IncrementalAppendsOnlyDelta(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(80, 10, b)

	commitText(b, "line 1")
	commitText(b, "line 2")
	v.Sync(b)
	require.Equal(t, 2, v.Len())

	// Poison an already-synced source line: the incremental path must not
	// look at it again.
	b.lines[0] = segment.Line{segment.Plain("REWRAPPED")}

	commitText(b, "line 3")
	commitText(b, "line 4")
	commitText(b, "line 5")
	v.Sync(b)

	assert.Equal(t, []string{"line 1", "line 2", "line 3", "line 4", "line 5"}, viewTexts(v))
}

func TestSync_NoWorkWhenCaughtUp(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(80, 10, b)
	commitText(b, "only line")
	v.Sync(b)

	before := viewTexts(v)
	v.Sync(b)
	assert.Equal(t, before, viewTexts(v))
}

func TestSync_RotationForcesRebuild(t *testing.T) {
	b := scrollbackBuffer(5)
	v := NewView()
	v.SetSize(80, 10, b)

	commitText(b, "line 1")
	commitText(b, "line 2")
	v.Sync(b)

	// Seven more commits into a five-line buffer: the view is now behind by
	// more lines than the source still holds.
	for i := 3; i <= 9; i++ {
		commitText(b, fmt.Sprintf("line %d", i))
	}
	v.Sync(b)

	assert.Equal(t, []string{"line 5", "line 6", "line 7", "line 8", "line 9"}, viewTexts(v))
}

func TestSync_MirrorsSourceTrim(t *testing.T) {
	b := scrollbackBuffer(2)
	v := NewView()
	v.SetSize(5, 10, b)

	commitText(b, "aaaaa bbbbb")
	commitText(b, "c")
	v.Sync(b)
	require.Equal(t, []string{"aaaaa", "bbbbb", "c"}, viewTexts(v))

	// The next commit rotates one source line out; the view must drop both
	// display lines that source line wrapped into.
	commitText(b, "d")
	v.Sync(b)
	assert.Equal(t, []string{"c", "d"}, viewTexts(v))

	for i := 0; i < 40; i++ {
		commitText(b, "x")
		v.Sync(b)
	}
	assert.Equal(t, 2, v.Len(), "the display cache stays bounded by the source cap")
}

func TestSync_ReplaceModeAlwaysRebuilds(t *testing.T) {
	b := New(Options{Mode: ModeReplace, Wrap: true})
	v := NewView()
	v.SetSize(40, 10, b)

	b.Replace([]segment.Line{
		{segment.Plain("A dusty road.")},
		{segment.Plain("Obvious exits: north, east.")},
	})
	v.Sync(b)
	require.Equal(t, 2, v.Len())

	b.Replace([]segment.Line{{segment.Plain("A muddy trail.")}})
	v.Sync(b)
	assert.Equal(t, []string{"A muddy trail."}, viewTexts(v), "replaced content never duplicates")
}

func TestSync_StaleGenerationIsNoWork(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(80, 10, b)
	commitText(b, "line 1")
	v.Sync(b)

	v.lastGen = b.Generation() + 5
	require.NotPanics(t, func() { v.Sync(b) })
	assert.Equal(t, 1, v.Len())
}

func TestSetSize_WidthChangeRewraps(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(10, 5, b)
	commitText(b, "alpha beta gamma delta")
	v.Sync(b)
	require.Equal(t, []string{"alpha beta", "gamma ", "delta"}, viewTexts(v))

	v.SetSize(30, 5, b)
	assert.Equal(t, []string{"alpha beta gamma delta"}, viewTexts(v))

	v.SetSize(30, 8, b)
	assert.Equal(t, 1, v.Len(), "a height-only change does not rewrap")
}

func TestScroll_ClampsToContent(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(20, 4, b)
	for i := 1; i <= 10; i++ {
		commitText(b, fmt.Sprintf("line %d", i))
	}
	v.Sync(b)

	v.ScrollBy(100)
	assert.Equal(t, 6, v.Scroll(), "offset tops out at total minus viewport")
	assert.Equal(t, 0, v.Start())

	v.ScrollBy(-2)
	assert.Equal(t, 4, v.Scroll())
	assert.Equal(t, 2, v.Start())

	v.ScrollBy(-100)
	assert.Equal(t, 0, v.Scroll())
	assert.Equal(t, 6, v.Start())

	v.ScrollToLive()
	got := v.Visible()
	require.Len(t, got, 4)
	assert.Equal(t, "line 7", got[0].Text())
	assert.Equal(t, "line 10", got[3].Text())
}

func TestScroll_ShortContent(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(20, 10, b)
	commitText(b, "just one line")
	v.Sync(b)

	v.ScrollBy(50)
	assert.Equal(t, 0, v.Scroll())
	assert.Equal(t, 0, v.Start())
	assert.Len(t, v.Visible(), 1)
}

func TestReset_RealignsAfterClear(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(20, 4, b)
	for i := 0; i < 6; i++ {
		commitText(b, "old text")
	}
	v.Sync(b)
	v.ScrollBy(2)

	b.Clear()
	v.Reset(b)

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, 0, v.Scroll())

	commitText(b, "fresh text")
	v.Sync(b)
	assert.Equal(t, []string{"fresh text"}, viewTexts(v))
}

func TestLinkAt_ResolvesSegmentsAndBackfillsText(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(20, 3, b)
	b.AddText("look ")
	b.AddSegment(segment.Segment{Text: "sword", Kind: segment.KindLink, Link: &segment.Link{ExistID: "S", Noun: "sword"}})
	b.EndLine()
	v.Sync(b)

	link, ok := v.LinkAt(5, 0)
	require.True(t, ok)
	assert.Equal(t, "S", link.ExistID)
	assert.Equal(t, "sword", link.Text, "link text is backfilled from the rendered run")

	_, ok = v.LinkAt(2, 0)
	assert.False(t, ok, "plain text carries no link")
	_, ok = v.LinkAt(4, 0)
	assert.False(t, ok, "the space between runs is plain")
	_, ok = v.LinkAt(15, 0)
	assert.False(t, ok, "past the end of the line")
}

func TestLinkAt_StaleCoordinatesAreSafe(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(20, 3, b)
	commitText(b, "one line")
	v.Sync(b)

	_, ok := v.LinkAt(0, 2)
	assert.False(t, ok, "a row below the content resolves to nothing")
	_, ok = v.LinkAt(0, -1)
	assert.False(t, ok)
	_, ok = v.LinkAt(0, 99)
	assert.False(t, ok)
}

func TestWordAt_ReadsWordUnderColumn(t *testing.T) {
	b := scrollbackBuffer(100)
	v := NewView()
	v.SetSize(30, 3, b)
	commitText(b, "The wolf snarls.")
	v.Sync(b)

	assert.Equal(t, "wolf", v.WordAt(5, 0))
	assert.Equal(t, "snarls", v.WordAt(12, 0))
	assert.Equal(t, "", v.WordAt(3, 0))
	assert.Equal(t, "", v.WordAt(5, 2))
}
