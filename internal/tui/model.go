// Package tui composes the game windows into a bubbletea program: layout,
// rendering, mouse and key routing, and the command line.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Nisugi/two-face-sub002/internal/feed"
	"github.com/Nisugi/two-face-sub002/internal/highlight"
	"github.com/Nisugi/two-face-sub002/internal/protocol"
	"github.com/Nisugi/two-face-sub002/internal/segment"
	"github.com/Nisugi/two-face-sub002/internal/stream"
)

// ModelConfig wires the session into the UI.
type ModelConfig struct {
	Conn           *feed.Conn
	ThemeName      string
	Scrollback     int
	Highlights     highlight.Set
	HighlightsPath string
	Reload         <-chan struct{}
	Windows        map[string]bool
	Echo           bool
}

// Model renders the game session across its windows.
type Model struct {
	cfg    ModelConfig
	theme  Theme
	parser *protocol.Parser
	conn   *feed.Conn
	hl     *highlight.Set
	reload <-chan struct{}

	windows    []*window
	byStream   map[string]*window
	mainWin    *window
	thoughtWin *window
	roomWin    *window
	spellWin   *window
	invWin     *window

	roomState roomState
	vitals    map[string]vital
	prompt    string
	spell     string
	rtUntil   int64
	now       time.Time

	input   textinput.Model
	history []string
	histPos int
	keys    keyMap

	width  int
	height int
	sized  bool

	pendingResize *tea.WindowSizeMsg
	resizeQueued  bool
	lastResize    time.Time

	notification  string
	notificationT time.Time
	connected     bool
}

// roomState accumulates the pieces the feed sends separately; any change
// rebuilds the room window wholesale.
type roomState struct {
	name    string
	desc    segment.Line
	objs    segment.Line
	players segment.Line
	exits   segment.Line
}

type feedMsg feed.Event
type feedClosedMsg struct{}
type reloadMsg struct{}
type tickMsg time.Time
type resizeFlushMsg struct{}
type sentMsg struct{ err error }

const (
	statusHeight   = 1
	inputHeight    = 3
	rightColWidth  = 42
	thoughtsHeight = 7
	roomHeight     = 10
	spellsHeight   = 9
	wheelLines     = 3
	historyMax     = 100
	resizeDebounce = 200 * time.Millisecond
)

type keyMap struct {
	Quit      key.Binding
	Send      key.Binding
	HistPrev  key.Binding
	HistNext  key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Live      key.Binding
	Escape    key.Binding
	Room      key.Binding
	Inventory key.Binding
	Spells    key.Binding
	Thoughts  key.Binding
	Theme     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Send:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		HistPrev:  key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "older command")),
		HistNext:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "newer command")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll back")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll forward")),
		Live:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "jump to live")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear input")),
		Room:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "room")),
		Inventory: key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "inventory")),
		Spells:    key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "spells")),
		Thoughts:  key.NewBinding(key.WithKeys("f5"), key.WithHelp("F5", "thoughts")),
		Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	}
}

// NewModel returns a configured Bubble Tea model.
func NewModel(cfg ModelConfig) Model {
	scrollback := cfg.Scrollback
	if scrollback <= 0 {
		scrollback = 2000
	}

	hl := cfg.Highlights
	holder := &hl
	transform := func(ln segment.Line) segment.Line {
		return holder.Apply(ln)
	}

	mainWin := newWindow("main", "", insets{1, 1, 1, 1}, stream.Options{
		Mode:      stream.ModeScrollback,
		Wrap:      true,
		MaxLines:  scrollback,
		Transform: transform,
	})
	thoughtWin := newWindow("thoughts", "Thoughts", insets{2, 1, 1, 1}, stream.Options{
		Mode:     stream.ModeScrollback,
		Wrap:     true,
		MaxLines: 500,
	})
	roomWin := newWindow("room", "Room", insets{2, 1, 1, 1}, stream.Options{
		Mode: stream.ModeReplace,
		Wrap: true,
	})
	spellWin := newWindow("spells", "Active Spells", insets{2, 1, 1, 1}, stream.Options{
		Mode:     stream.ModeScrollback,
		Wrap:     false,
		MaxLines: 200,
	})
	invWin := newWindow("inventory", "Inventory", insets{2, 1, 1, 1}, stream.Options{
		Mode:     stream.ModeScrollback,
		Wrap:     true,
		MaxLines: 500,
	})

	for name, vis := range cfg.Windows {
		switch name {
		case "room":
			roomWin.visible = vis
		case "inventory":
			invWin.visible = vis
		case "spells":
			spellWin.visible = vis
		case "thoughts":
			thoughtWin.visible = vis
		}
	}

	input := textinput.New()
	input.Prompt = "❯ "
	input.CharLimit = 512
	input.Focus()

	return Model{
		cfg:    cfg,
		theme:  themeByName(cfg.ThemeName),
		parser: protocol.NewParser(),
		conn:   cfg.Conn,
		hl:     holder,
		reload: cfg.Reload,

		windows:    []*window{mainWin, thoughtWin, roomWin, spellWin, invWin},
		byStream:   map[string]*window{"": mainWin, "thoughts": thoughtWin, "inv": invWin, "percWindow": spellWin, "logons": thoughtWin, "death": thoughtWin},
		mainWin:    mainWin,
		thoughtWin: thoughtWin,
		roomWin:    roomWin,
		spellWin:   spellWin,
		invWin:     invWin,

		vitals:    make(map[string]vital),
		input:     input,
		keys:      defaultKeyMap(),
		now:       time.Now(),
		connected: cfg.Conn != nil,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.watchReload(), pulse(), textinput.Blink, tea.EnterAltScreen)
}

func (m Model) listen() tea.Cmd {
	if m.conn == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-m.conn.Events()
		if !ok {
			return feedClosedMsg{}
		}
		return feedMsg(evt)
	}
}

func (m Model) watchReload() tea.Cmd {
	if m.reload == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.reload; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

func pulse() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case feedMsg:
		return m.consumeFeed(msg)

	case feedClosedMsg:
		m.connected = false
		m.notify("connection closed")
		return m, nil

	case reloadMsg:
		if m.cfg.HighlightsPath != "" {
			set, err := highlight.LoadFromFile(m.cfg.HighlightsPath)
			if err != nil {
				m.notify(fmt.Sprintf("highlights: %v", err))
			} else {
				*m.hl = set
				m.notify(fmt.Sprintf("highlights reloaded (%d rules)", set.Len()))
			}
		}
		return m, m.watchReload()

	case tickMsg:
		m.now = time.Time(msg)
		if m.notification != "" && time.Since(m.notificationT) > 5*time.Second {
			m.notification = ""
		}
		return m, pulse()

	case resizeFlushMsg:
		m.resizeQueued = false
		if m.pendingResize != nil {
			pending := *m.pendingResize
			m.pendingResize = nil
			m.lastResize = time.Now()
			m.applyResize(pending.Width, pending.Height)
		}
		return m, nil

	case sentMsg:
		if msg.err != nil {
			m.notify(fmt.Sprintf("send: %v", msg.err))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize applies the first size immediately; resizes arriving inside
// the debounce window coalesce to the latest and apply once it elapses.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if !m.sized {
		m.sized = true
		m.lastResize = time.Now()
		m.applyResize(msg.Width, msg.Height)
		return m, nil
	}
	if time.Since(m.lastResize) >= resizeDebounce && m.pendingResize == nil {
		m.lastResize = time.Now()
		m.applyResize(msg.Width, msg.Height)
		return m, nil
	}
	pending := msg
	m.pendingResize = &pending
	if m.resizeQueued {
		return m, nil
	}
	m.resizeQueued = true
	return m, tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
		return resizeFlushMsg{}
	})
}

func (m *Model) applyResize(width, height int) {
	if width < 40 {
		width = 40
	}
	if height < 12 {
		height = 12
	}
	m.width = width
	m.height = height
	m.input.Width = width - 6
	m.layout()
}

// layout recomputes every window rect from the current size and visibility
// set, then lets each view re-wrap if its width changed.
func (m *Model) layout() {
	bodyH := m.height - statusHeight - inputHeight
	if bodyH < 6 {
		bodyH = 6
	}

	right := m.visibleRight()
	rightW := 0
	if len(right) > 0 {
		rightW = rightColWidth
		if m.width < rightColWidth*2 {
			rightW = m.width / 2
		}
	}
	mainW := m.width - rightW

	thoughtsH := 0
	if m.thoughtWin.visible {
		thoughtsH = thoughtsHeight
		if bodyH-thoughtsH < 8 {
			thoughtsH = clamp(bodyH/3, 4, thoughtsHeight)
		}
	}
	mainH := bodyH - thoughtsH

	m.mainWin.resize(rect{x: 0, y: 0, w: mainW, h: mainH})
	if m.thoughtWin.visible {
		m.thoughtWin.resize(rect{x: 0, y: mainH, w: mainW, h: thoughtsH})
	}

	y := 0
	for i, w := range right {
		var h int
		switch w {
		case m.roomWin:
			h = roomHeight
		case m.spellWin:
			h = spellsHeight
		default:
			h = bodyH - y
		}
		if i == len(right)-1 {
			h = bodyH - y
		}
		if h < 4 {
			h = 4
		}
		w.resize(rect{x: mainW, y: y, w: rightW, h: h})
		y += h
	}
}

func (m Model) visibleRight() []*window {
	var out []*window
	for _, w := range []*window{m.roomWin, m.spellWin, m.invWin} {
		if w.visible {
			out = append(out, w)
		}
	}
	return out
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Send):
		return m, m.submit()

	case key.Matches(msg, m.keys.HistPrev):
		if m.histPos > 0 {
			m.histPos--
			m.input.SetValue(m.history[m.histPos])
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.HistNext):
		if m.histPos < len(m.history) {
			m.histPos++
			if m.histPos == len(m.history) {
				m.input.SetValue("")
			} else {
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.mainWin.scrollBy(m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.mainWin.scrollBy(-m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.Live):
		m.mainWin.view.ScrollToLive()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.histPos = len(m.history)
		} else {
			m.mainWin.view.ScrollToLive()
		}
		return m, nil

	case key.Matches(msg, m.keys.Room):
		m.toggleWindow(m.roomWin)
		return m, nil

	case key.Matches(msg, m.keys.Inventory):
		m.toggleWindow(m.invWin)
		return m, nil

	case key.Matches(msg, m.keys.Spells):
		m.toggleWindow(m.spellWin)
		return m, nil

	case key.Matches(msg, m.keys.Thoughts):
		m.toggleWindow(m.thoughtWin)
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = themeByName(nextTheme(m.theme.Name))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if w := m.windowAt(msg.X, msg.Y); w != nil {
			w.scrollBy(wheelLines)
		}
	case tea.MouseButtonWheelDown:
		if w := m.windowAt(msg.X, msg.Y); w != nil {
			w.scrollBy(-wheelLines)
		}
	case tea.MouseButtonLeft:
		if w := m.windowAt(msg.X, msg.Y); w != nil {
			if link, ok := w.resolveClick(msg.X, msg.Y); ok {
				if cmd := commandForLink(link); cmd != "" {
					return m, m.sendCommand(cmd)
				}
			}
		}
	}
	return m, nil
}

func (m Model) windowAt(x, y int) *window {
	for _, w := range m.windows {
		if w.visible && w.rect.contains(x, y) {
			return w
		}
	}
	return nil
}

func (m Model) pageSize() int {
	page := m.mainWin.innerHeight() - 1
	if page < 1 {
		page = 1
	}
	return page
}

func (m *Model) toggleWindow(w *window) {
	w.visible = !w.visible
	if w.visible {
		w.sync()
	}
	m.layout()
}

func (m Model) consumeFeed(evt feedMsg) (tea.Model, tea.Cmd) {
	if evt.Err != nil {
		m.notify(evt.Err.Error())
		return m, m.listen()
	}
	m.apply(m.parser.Feed(evt.Line))
	m.syncAll()
	return m, m.listen()
}

func (m *Model) apply(events []protocol.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case protocol.Text:
			m.windowFor(ev.Stream).buf.AddSegment(ev.Seg)
		case protocol.EndLine:
			m.windowFor(ev.Stream).buf.EndLine()
		case protocol.Clear:
			if w, ok := m.byStream[ev.Stream]; ok {
				w.clear()
			}
		case protocol.Window:
			m.applyWindow(ev)
		case protocol.Component:
			m.applyComponent(ev)
		case protocol.Prompt:
			m.prompt = ev.Text
		case protocol.Vitals:
			m.vitals[ev.Bar] = vital{value: ev.Value, label: ev.Label}
		case protocol.Roundtime:
			m.rtUntil = ev.Until
		case protocol.Spell:
			m.spell = ev.Name
		}
	}
}

func (m *Model) applyWindow(ev protocol.Window) {
	if ev.ID == "room" {
		sub := strings.TrimSpace(ev.Subtitle)
		if name := strings.TrimSpace(strings.TrimPrefix(sub, "-")); name != "" {
			m.roomState.name = name
		}
		return
	}
	if w, ok := m.byStream[ev.ID]; ok && ev.Title != "" {
		w.title = ev.Title
	}
}

func (m *Model) applyComponent(ev protocol.Component) {
	part, ok := strings.CutPrefix(ev.ID, "room ")
	if !ok {
		return
	}
	switch part {
	case "desc":
		m.roomState.desc = ev.Segs
	case "objs":
		m.roomState.objs = ev.Segs
	case "players":
		m.roomState.players = ev.Segs
	case "exits":
		m.roomState.exits = ev.Segs
	default:
		return
	}
	m.rebuildRoom()
}

func (m *Model) rebuildRoom() {
	lines := make([]segment.Line, 0, 4)
	for _, ln := range []segment.Line{m.roomState.desc, m.roomState.objs, m.roomState.players, m.roomState.exits} {
		if len(ln) > 0 {
			lines = append(lines, ln)
		}
	}
	m.roomWin.buf.Replace(lines)
}

func (m *Model) syncAll() {
	for _, w := range m.windows {
		if w.visible {
			w.sync()
		}
	}
}

func (m Model) windowFor(stream string) *window {
	if w, ok := m.byStream[stream]; ok {
		return w
	}
	return m.mainWin
}

func (m *Model) submit() tea.Cmd {
	cmd := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if cmd != "" {
		if n := len(m.history); n == 0 || m.history[n-1] != cmd {
			m.history = append(m.history, cmd)
		}
		if len(m.history) > historyMax {
			m.history = m.history[len(m.history)-historyMax:]
		}
	}
	m.histPos = len(m.history)
	return m.sendCommand(cmd)
}

// commandForLink turns a resolved link into a game command: exist links
// look the object up by id, command links run their text as typed.
func commandForLink(link segment.Link) string {
	if link.ExistID != "" {
		return fmt.Sprintf("look #%s", link.ExistID)
	}
	return strings.TrimSpace(link.Noun)
}

func (m *Model) sendCommand(cmd string) tea.Cmd {
	if m.cfg.Echo && cmd != "" {
		m.mainWin.buf.AddSegment(segment.Segment{Text: "> " + cmd, Kind: segment.KindSpeech})
		m.mainWin.buf.EndLine()
		m.mainWin.sync()
		m.mainWin.view.ScrollToLive()
	}
	conn := m.conn
	if conn == nil {
		return nil
	}
	return func() tea.Msg {
		return sentMsg{err: conn.Send(cmd)}
	}
}

func (m *Model) notify(text string) {
	m.notification = text
	m.notificationT = time.Now()
}

func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func coalesce(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
