// Package protocol parses the XML-ish markup feed relayed by Lich into
// styled segments and window events. The grammar is the Wrayth/StormFront
// subset the game actually sends; everything unrecognized is skipped so a
// protocol addition never breaks the client.
package protocol

import (
	"strconv"
	"strings"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

// Parser is a stateful, line-oriented tokenizer. Stream redirection and
// bold depth persist across lines until popped; links, presets, prompts and
// components open and close within a line in the feed as the game sends it.
// Tags never span feed lines; a tag truncated at end of line is dropped
// along with the rest of the line.
type Parser struct {
	stream string
	bold   int
	preset segment.Kind
	style  string
	link   *segment.Link

	inSpell  bool
	spellBuf string

	inComp   bool
	comp     string
	compSegs segment.Line

	inPrompt bool
	prompt   string

	emitted []string
}

func NewParser() *Parser {
	return &Parser{}
}

// Feed parses one raw feed line into events. It never fails: bad input
// degrades to skipped tags or dropped line tails, not errors.
func (p *Parser) Feed(line string) []Event {
	var events []Event
	p.emitted = p.emitted[:0]
	hasTag := false

	i := 0
	for i < len(line) {
		if line[i] == '<' {
			hasTag = true
			j := strings.IndexByte(line[i:], '>')
			if j < 0 {
				break
			}
			p.handleTag(line[i+1:i+j], &events)
			i += j + 1
			continue
		}
		k := strings.IndexByte(line[i:], '<')
		var text string
		if k < 0 {
			text = line[i:]
			i = len(line)
		} else {
			text = line[i : i+k]
			i += k
		}
		p.emitText(decodeEntities(text), &events)
	}

	// A component left open at end of line is flushed rather than lost.
	if p.inComp {
		p.closeComponent(&events)
	}

	for _, s := range p.emitted {
		events = append(events, EndLine{Stream: s})
	}
	// Blank feed lines are paragraph breaks; markup-only lines are not.
	if !hasTag && len(p.emitted) == 0 {
		events = append(events, EndLine{Stream: p.stream})
	}
	return events
}

func (p *Parser) handleTag(tag string, events *[]Event) {
	name, attrs, closing := parseTag(tag)
	if closing {
		switch name {
		case "b":
			if p.bold > 0 {
				p.bold--
			}
		case "a", "d":
			p.closeLink()
		case "preset":
			p.preset = segment.KindNormal
		case "spell":
			p.inSpell = false
			*events = append(*events, Spell{Name: strings.TrimSpace(p.spellBuf)})
		case "component":
			p.closeComponent(events)
		case "prompt":
			p.inPrompt = false
			*events = append(*events, Prompt{Text: strings.TrimSpace(p.prompt)})
		}
		return
	}

	switch name {
	case "pushBold", "b":
		p.bold++
	case "popBold":
		if p.bold > 0 {
			p.bold--
		}
	case "a":
		p.link = &segment.Link{ExistID: attrs["exist"], Noun: attrs["noun"], Coord: attrs["coord"]}
	case "d":
		p.link = &segment.Link{Noun: attrs["cmd"], Coord: attrs["coord"]}
	case "preset":
		p.preset = presetKind(attrs["id"])
	case "style":
		p.style = attrs["id"]
	case "spell":
		p.inSpell = true
		p.spellBuf = ""
	case "pushStream":
		p.stream = attrs["id"]
	case "popStream":
		p.stream = ""
	case "clearStream":
		*events = append(*events, Clear{Stream: attrs["id"]})
	case "streamWindow":
		*events = append(*events, Window{ID: attrs["id"], Title: attrs["title"], Subtitle: attrs["subtitle"]})
	case "component":
		p.inComp = true
		p.comp = attrs["id"]
		p.compSegs = nil
	case "prompt":
		p.inPrompt = true
		p.prompt = ""
	case "progressBar":
		*events = append(*events, Vitals{Bar: attrs["id"], Value: atoi(attrs["value"]), Label: attrs["text"]})
	case "roundTime":
		*events = append(*events, Roundtime{Until: atoi64(attrs["value"])})
	}
}

func (p *Parser) emitText(text string, events *[]Event) {
	if text == "" {
		return
	}
	if p.inPrompt {
		p.prompt += text
		return
	}
	if p.inSpell {
		p.spellBuf += text
		return
	}

	seg := segment.Segment{Text: text}
	switch {
	case p.link != nil:
		seg.Kind = segment.KindLink
		seg.Link = p.link
		p.link.Text += text
	case p.style == "roomName", p.bold > 0:
		seg.Kind = segment.KindMonsterbold
	case p.preset != segment.KindNormal:
		seg.Kind = p.preset
	}

	if p.inComp {
		p.compSegs = segment.Append(p.compSegs, seg)
		return
	}
	*events = append(*events, Text{Stream: p.stream, Seg: seg})
	p.markEmitted(p.stream)
}

// closeLink finishes the active link. A <d> tag without a cmd attribute
// uses its own visible text as the command.
func (p *Parser) closeLink() {
	if p.link != nil && p.link.Noun == "" {
		p.link.Noun = strings.TrimSpace(p.link.Text)
	}
	p.link = nil
}

func (p *Parser) closeComponent(events *[]Event) {
	if !p.inComp {
		return
	}
	*events = append(*events, Component{ID: p.comp, Segs: p.compSegs})
	p.inComp = false
	p.comp = ""
	p.compSegs = nil
}

func (p *Parser) markEmitted(stream string) {
	for _, s := range p.emitted {
		if s == stream {
			return
		}
	}
	p.emitted = append(p.emitted, stream)
}

func presetKind(id string) segment.Kind {
	switch id {
	case "speech", "whisper", "thought":
		return segment.KindSpeech
	case "spell":
		return segment.KindSpell
	default:
		return segment.KindNormal
	}
}

// parseTag splits the inside of <...> into name, attributes and a closing
// flag. Values may be single- or double-quoted; entities inside values are
// decoded.
func parseTag(s string) (string, map[string]string, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "/"))
	if strings.HasPrefix(s, "/") {
		return strings.TrimSpace(s[1:]), nil, true
	}
	name := s
	rest := ""
	if sp := strings.IndexByte(s, ' '); sp >= 0 {
		name = s[:sp]
		rest = s[sp+1:]
	}
	return name, parseAttrs(rest), false
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == ' ' {
			i++
		}
		start := i
		for i < len(s) && s[i] != '=' && s[i] != ' ' {
			i++
		}
		key := s[start:i]
		if key == "" {
			i++
			continue
		}
		if i >= len(s) || s[i] != '=' {
			attrs[key] = ""
			continue
		}
		i++
		if i < len(s) && (s[i] == '\'' || s[i] == '"') {
			q := s[i]
			i++
			start = i
			for i < len(s) && s[i] != q {
				i++
			}
			attrs[key] = decodeEntities(s[start:i])
			if i < len(s) {
				i++
			}
			continue
		}
		start = i
		for i < len(s) && s[i] != ' ' {
			i++
		}
		attrs[key] = decodeEntities(s[start:i])
	}
	return attrs
}

var entities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func decodeEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return entities.Replace(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
