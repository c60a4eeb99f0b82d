package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

func scrollbackBuffer(max int) *Buffer {
	return New(Options{Mode: ModeScrollback, Wrap: true, MaxLines: max})
}

func commitText(b *Buffer, text string) {
	b.AddText(text)
	b.EndLine()
}

func TestEndLine_CommitsAndAdvancesGeneration(t *testing.T) {
	b := scrollbackBuffer(100)
	b.AddText("hello")
	assert.Equal(t, 0, b.Len(), "nothing is committed until the line ends")
	assert.Equal(t, uint64(0), b.Generation())

	b.AddSegment(segment.Segment{Text: " world", Kind: segment.KindMonsterbold})
	b.EndLine()

	require.Equal(t, 1, b.Len())
	assert.Equal(t, uint64(1), b.Generation())
	line := b.Lines()[0]
	assert.Equal(t, "hello world", line.Text())
	require.Len(t, line, 2, "differently styled runs stay separate")
}

func TestEndLine_AdjacentRunsMerge(t *testing.T) {
	b := scrollbackBuffer(100)
	b.AddText("one ")
	b.AddText("two")
	b.EndLine()

	require.Equal(t, 1, b.Len())
	assert.Len(t, b.Lines()[0], 1)
}

func TestEndLine_BlankLinesKept(t *testing.T) {
	b := scrollbackBuffer(100)
	b.EndLine()

	require.Equal(t, 1, b.Len())
	assert.Equal(t, uint64(1), b.Generation())
	assert.Equal(t, 0, b.Lines()[0].Len())
}

func TestMaxLines_TrimsOldest(t *testing.T) {
	b := scrollbackBuffer(3)
	for i := 1; i <= 5; i++ {
		commitText(b, fmt.Sprintf("line %d", i))
	}

	require.Equal(t, 3, b.Len())
	assert.Equal(t, "line 3", b.Lines()[0].Text())
	assert.Equal(t, "line 5", b.Lines()[2].Text())
	assert.Equal(t, uint64(5), b.Generation(), "trimming never rewinds the generation")
}

func TestAddSegment_RecordsLinks(t *testing.T) {
	b := scrollbackBuffer(100)
	b.AddText("You see ")
	b.AddSegment(segment.Segment{
		Text: "a large wolf",
		Kind: segment.KindLink,
		Link: &segment.Link{ExistID: "9", Noun: "wolf"},
	})
	b.EndLine()

	got, ok := b.Links().FindByWord("wolf")
	require.True(t, ok)
	assert.Equal(t, "9", got.ExistID)

	// Command links carry no exist id and stay out of the cache.
	b.AddSegment(segment.Segment{Text: "gate", Kind: segment.KindLink, Link: &segment.Link{Noun: "go gate"}})
	b.EndLine()
	_, ok = b.Links().FindByWord("gate")
	assert.False(t, ok)
}

func TestTransform_RunsOnCommitOnly(t *testing.T) {
	b := New(Options{
		Mode:     ModeScrollback,
		Wrap:     true,
		MaxLines: 100,
		Transform: func(ln segment.Line) segment.Line {
			for i := range ln {
				ln[i].Bold = true
			}
			return ln
		},
	})

	b.AddText("danger")
	require.Len(t, b.cur, 1)
	assert.False(t, b.cur[0].Bold, "the line under assembly is untouched")

	b.EndLine()
	require.Equal(t, 1, b.Len())
	assert.True(t, b.Lines()[0][0].Bold)
}

func TestReplace_SwapsContentAndRecordsLinks(t *testing.T) {
	b := New(Options{Mode: ModeReplace, Wrap: true})
	b.AddText("half a line")

	b.Replace([]segment.Line{
		{segment.Plain("A dusty road.")},
		{{Text: "a signpost", Kind: segment.KindLink, Link: &segment.Link{ExistID: "77", Noun: "signpost"}}},
	})

	require.Equal(t, 2, b.Len())
	assert.Equal(t, uint64(2), b.Generation())
	assert.Nil(t, b.cur, "a partial line does not survive a replace")

	got, ok := b.Links().FindByWord("signpost")
	require.True(t, ok)
	assert.Equal(t, "77", got.ExistID)

	b.Replace([]segment.Line{{segment.Plain("A muddy trail.")}})
	require.Equal(t, 1, b.Len())
	assert.Equal(t, uint64(3), b.Generation())

	b.Replace(nil)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, uint64(4), b.Generation(), "an empty replace still advances so views resync")
}

func TestClear_KeepsGenerationAndLinks(t *testing.T) {
	b := scrollbackBuffer(100)
	b.AddSegment(segment.Segment{Text: "a wolf", Kind: segment.KindLink, Link: &segment.Link{ExistID: "9", Noun: "wolf"}})
	b.EndLine()
	commitText(b, "it snarls")
	gen := b.Generation()

	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, gen, b.Generation())
	_, ok := b.Links().FindByWord("wolf")
	assert.True(t, ok, "clearing text must not forget the objects it named")
}
