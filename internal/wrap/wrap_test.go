package wrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

func plainLine(text string) segment.Line {
	return segment.Line{segment.Plain(text)}
}

func texts(lines []segment.Line) []string {
	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = ln.Text()
	}
	return out
}

func TestWrap_EmptyInput(t *testing.T) {
	out := Wrap(nil, 10)
	require.Len(t, out, 1, "empty input still produces one display line")
	assert.Equal(t, 0, out[0].Len())
}

func TestWrap_ZeroWidth(t *testing.T) {
	out := Wrap(plainLine("anything at all"), 0)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Len())

	out = Wrap(plainLine("anything"), -3)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Len())
}

func TestWrap_Sentence(t *testing.T) {
	out := Wrap(plainLine("look at the sword"), 8)
	assert.Equal(t, []string{"look at ", "the ", "sword"}, texts(out))
}

func TestWrap_WordMovedWholeToNextLine(t *testing.T) {
	out := Wrap(plainLine("abc de"), 3)
	assert.Equal(t, []string{"abc", "de"}, texts(out))
}

func TestWrap_BreakSpaceDropped(t *testing.T) {
	out := Wrap(plainLine("aa bb"), 2)
	assert.Equal(t, []string{"aa", "bb"}, texts(out))
	for _, ln := range out {
		assert.False(t, strings.HasPrefix(ln.Text(), " "), "no line starts with an injected space")
	}
}

func TestWrap_ExactFitNoPhantomLine(t *testing.T) {
	out := Wrap(plainLine("abcd efgh"), 4)
	assert.Equal(t, []string{"abcd", "efgh"}, texts(out))
}

func TestWrap_HardBreaksOversizedWord(t *testing.T) {
	out := Wrap(plainLine("abcdefghij"), 4)
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, texts(out))
}

func TestWrap_HardBreakFillsCurrentLine(t *testing.T) {
	out := Wrap(plainLine("xy abcdefg"), 4)
	assert.Equal(t, []string{"xy a", "bcde", "fg"}, texts(out))
}

func TestWrap_KeepsWordsIntact(t *testing.T) {
	words := []string{"alpha", "beta", "gamma", "zz"}
	out := Wrap(plainLine(strings.Join(words, " ")), 6)

	var got []string
	for _, ln := range out {
		got = append(got, strings.Fields(ln.Text())...)
	}
	assert.Equal(t, words, got, "words that fit the width never split")
}

func TestWrap_RoundTripAcrossWidths(t *testing.T) {
	input := "You also see a large black wolf and an extraordinarily unwieldy halberd here."
	want := strings.ReplaceAll(input, " ", "")

	for width := 1; width <= 25; width++ {
		out := Wrap(plainLine(input), width)
		joined := strings.Join(texts(out), "")
		assert.Equal(t, want, strings.ReplaceAll(joined, " ", ""),
			"width %d: no characters besides break spaces may be lost", width)
		for i, ln := range out {
			assert.LessOrEqual(t, ln.Len(), width, "width %d line %d exceeds bound", width, i)
			if i > 0 {
				assert.False(t, strings.HasPrefix(ln.Text(), " "),
					"width %d line %d starts with an injected space", width, i)
			}
		}
	}
}

func TestWrap_StyleAndLinkPreserved(t *testing.T) {
	wolf := &segment.Link{ExistID: "9", Noun: "wolf"}
	line := segment.Line{
		{Text: "Big", Bold: true},
		{Text: " bad "},
		{Text: "wolf pack", Kind: segment.KindLink, Link: wolf},
	}

	out := Wrap(line, 7)
	require.Equal(t, []string{"Big bad", "wolf ", "pack"}, texts(out))

	require.Len(t, out[0], 2)
	assert.True(t, out[0][0].Bold)
	assert.Equal(t, "Big", out[0][0].Text)
	assert.False(t, out[0][1].Bold)

	for _, ln := range out[1:] {
		require.Len(t, ln, 1, "link fragments on one line merge back into one run")
		require.NotNil(t, ln[0].Link)
		assert.Equal(t, "9", ln[0].Link.ExistID)
		assert.Equal(t, segment.KindLink, ln[0].Kind)
	}
}

func TestWrap_NoAdjacentEqualRuns(t *testing.T) {
	line := segment.Line{
		{Text: "one two "},
		{Text: "three", Kind: segment.KindMonsterbold},
		{Text: " four five six seven"},
	}

	for _, width := range []int{3, 5, 9, 80} {
		for _, ln := range Wrap(line, width) {
			for i := 1; i < len(ln); i++ {
				assert.False(t, ln[i-1].StyleEq(ln[i]),
					"width %d: adjacent equal-style runs must be merged", width)
			}
		}
	}
}

func TestWrap_SingleSegmentStaysSingle(t *testing.T) {
	out := Wrap(plainLine("hello world"), 20)
	require.Len(t, out, 1)
	assert.Len(t, out[0], 1, "per-rune processing must not shred one run into many")
	assert.Equal(t, "hello world", out[0][0].Text)
}

func TestNoWrap_PassesThrough(t *testing.T) {
	line := segment.Line{{Text: "  410  Elemental Wave        [3:12]"}}
	out := NoWrap(line)
	require.Len(t, out, 1)
	assert.Equal(t, line.Text(), out[0].Text())
}

func BenchmarkWrap(b *testing.B) {
	line := segment.Line{
		{Text: "You also see "},
		{Text: "a large black wolf", Kind: segment.KindLink, Link: &segment.Link{ExistID: "1", Noun: "wolf"}},
		{Text: ", a heavy iron gate, some scattered debris and "},
		{Text: "a dented copper lockbox", Kind: segment.KindLink, Link: &segment.Link{ExistID: "2", Noun: "lockbox"}},
		{Text: " that looks as if it has been through several owners already."},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Wrap(line, 80)
	}
}
