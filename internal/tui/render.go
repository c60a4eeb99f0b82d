package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Connecting..."
	}

	mainCol := m.renderWindow(m.mainWin)
	if m.thoughtWin.visible {
		mainCol = lipgloss.JoinVertical(lipgloss.Left, mainCol, m.renderWindow(m.thoughtWin))
	}

	body := mainCol
	if right := m.visibleRight(); len(right) > 0 {
		parts := make([]string, 0, len(right))
		for _, w := range right {
			parts = append(parts, m.renderWindow(w))
		}
		rightCol := lipgloss.JoinVertical(lipgloss.Left, parts...)
		body = lipgloss.JoinHorizontal(lipgloss.Top, mainCol, rightCol)
	}

	result := lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatus(), m.renderInput())
	if lipgloss.Height(result) > m.height {
		lines := strings.Split(result, "\n")
		if len(lines) > m.height {
			lines = lines[:m.height]
		}
		result = strings.Join(lines, "\n")
	}
	return result
}

// renderWindow paints one window at its laid-out size: optional title row,
// then the view's visible display lines, padded to fill, inside the border.
func (m Model) renderWindow(w *window) string {
	inner := w.rect.inner(w.insets)
	width, height := inner.w, inner.h
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	chrome := 0
	if w.insets.top > 1 {
		chrome = w.insets.top - 1
	}
	rows := make([]string, 0, height+chrome)
	if chrome > 0 {
		rows = append(rows, m.renderTitle(w, width))
	}
	for _, ln := range w.view.Visible() {
		rows = append(rows, m.renderLine(ln, width))
	}
	for len(rows) < height+chrome {
		rows = append(rows, strings.Repeat(" ", width))
	}

	style := m.theme.Border.Width(w.rect.w - 2).Height(w.rect.h - 2)
	return style.Render(strings.Join(rows, "\n"))
}

func (m Model) renderTitle(w *window, width int) string {
	title := w.title
	if w == m.roomWin && m.roomState.name != "" {
		title = m.roomState.name
	}
	title = runewidth.Truncate(title, width, "…")
	if pad := width - runewidth.StringWidth(title); pad > 0 {
		title += strings.Repeat(" ", pad)
	}
	return m.theme.Title.Render(title)
}

// renderLine resolves each segment's style against the theme and pads the
// row to the exact content width. Non-wrapping windows clip here.
func (m Model) renderLine(ln segment.Line, width int) string {
	var b strings.Builder
	remaining := width
	for _, seg := range ln {
		if remaining <= 0 {
			break
		}
		text := seg.Text
		if n := utf8.RuneCountInString(text); n > remaining {
			text = string([]rune(text)[:remaining])
			remaining = 0
		} else {
			remaining -= n
		}
		b.WriteString(m.styleFor(seg).Render(text))
	}
	if remaining > 0 {
		b.WriteString(strings.Repeat(" ", remaining))
	}
	return b.String()
}

// styleFor maps a segment onto the theme: the kind picks the base style,
// explicit colors and bold override it.
func (m Model) styleFor(seg segment.Segment) lipgloss.Style {
	style, ok := m.theme.KindStyles[seg.Kind]
	if !ok {
		style = m.theme.Text
	}
	if seg.Fg != "" {
		style = style.Foreground(lipgloss.Color(string(seg.Fg)))
	}
	if seg.Bg != "" {
		style = style.Background(lipgloss.Color(string(seg.Bg)))
	}
	if seg.Bold {
		style = style.Bold(true)
	}
	return style
}

func (m Model) renderInput() string {
	return m.theme.Input.Width(m.width - 2).Render(m.input.View())
}
