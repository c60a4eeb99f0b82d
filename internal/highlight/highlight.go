// Package highlight applies user-defined regex styling to committed lines.
// Matches restyle exactly the runes they cover: segments are split at match
// boundaries, link attribution survives, and equal-style runs merge back.
package highlight

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

// Rule is one compiled highlight pattern with the style it paints.
type Rule struct {
	Name    string
	Pattern string
	regex   *regexp.Regexp
	Fg      string
	Bg      string
	Bold    bool
}

func (r Rule) restyle(seg segment.Segment) segment.Segment {
	if r.Fg != "" {
		seg.Fg = segment.Color(r.Fg)
	}
	if r.Bg != "" {
		seg.Bg = segment.Color(r.Bg)
	}
	if r.Bold {
		seg.Bold = true
	}
	return seg
}

// Set is an ordered collection of rules. Earlier rules win where matches
// overlap.
type Set struct {
	rules []Rule
}

// Compile validates definitions and prepares regexes.
func Compile(defs []RuleDefinition) (Set, error) {
	compiled := make([]Rule, 0, len(defs))
	for _, def := range defs {
		if def.Pattern == "" {
			return Set{}, fmt.Errorf("rule %q missing pattern", def.Name)
		}
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return Set{}, fmt.Errorf("compile %q: %w", def.Name, err)
		}
		compiled = append(compiled, Rule{
			Name:    def.Name,
			Pattern: def.Pattern,
			regex:   re,
			Fg:      def.Fg,
			Bg:      def.Bg,
			Bold:    def.Bold,
		})
	}
	return Set{rules: compiled}, nil
}

func (s Set) Len() int {
	return len(s.rules)
}

type span struct {
	start, end int
	rule       int
}

// Apply restyles every match of every rule on the line. Offsets are byte
// offsets into the line's plain text and always fall on rune boundaries
// because they come from regex matches.
func (s Set) Apply(line segment.Line) segment.Line {
	if len(s.rules) == 0 || len(line) == 0 {
		return line
	}
	text := line.Text()

	var spans []span
	for ri := range s.rules {
		for _, loc := range s.rules[ri].regex.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], rule: ri})
		}
	}
	if len(spans) == 0 {
		return line
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].rule < spans[j].rule
	})

	// Overlaps resolve to whichever span starts first, then rule order.
	kept := spans[:0]
	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor || sp.end <= sp.start {
			continue
		}
		kept = append(kept, sp)
		cursor = sp.end
	}

	var out segment.Line
	off := 0
	si := 0
	for _, seg := range line {
		segEnd := off + len(seg.Text)
		pos := off
		for pos < segEnd {
			for si < len(kept) && kept[si].end <= pos {
				si++
			}
			cutEnd := segEnd
			styled := -1
			if si < len(kept) && kept[si].start <= pos {
				styled = kept[si].rule
				if kept[si].end < cutEnd {
					cutEnd = kept[si].end
				}
			} else if si < len(kept) && kept[si].start < segEnd {
				cutEnd = kept[si].start
			}
			piece := seg
			piece.Text = seg.Text[pos-off : cutEnd-off]
			if styled >= 0 {
				piece = s.rules[styled].restyle(piece)
			}
			out = segment.Append(out, piece)
			pos = cutEnd
		}
		off = segEnd
	}
	return out
}
