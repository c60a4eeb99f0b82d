package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type vital struct {
	value int
	label string
}

// vitalsOrder fixes the pill order regardless of update arrival.
var vitalsOrder = []string{"health", "mana", "stamina", "spirit"}

func (m Model) renderStatus() string {
	parts := []string{m.theme.Prompt.Render(coalesce(m.prompt, ">"))}

	if remain := m.rtUntil - m.now.Unix(); remain > 0 {
		parts = append(parts, m.theme.Notify.Render(fmt.Sprintf("RT %d", remain)))
	}
	if m.spell != "" && !strings.EqualFold(m.spell, "none") {
		parts = append(parts, m.theme.Notify.Render("✦ "+runewidth.Truncate(m.spell, 24, "…")))
	}

	for _, id := range vitalsOrder {
		v, ok := m.vitals[id]
		if !ok {
			continue
		}
		label := v.label
		if label == "" {
			label = fmt.Sprintf("%s %d%%", id, v.value)
		}
		parts = append(parts, m.pillFor(v.value).Render(runewidth.Truncate(label, 20, "…")))
	}

	if m.notification != "" {
		parts = append(parts, m.theme.Notify.Render(runewidth.Truncate(m.notification, 48, "…")))
	} else if m.width >= 110 {
		parts = append(parts, "F2 room · F3 inv · F4 spells · F5 thoughts · ctrl+t theme")
	} else if m.width >= 80 {
		parts = append(parts, "F2-F5 windows · ctrl+t theme")
	}

	if !m.connected {
		parts = append(parts, m.theme.PillBad.Render("offline"))
	}

	// Styled parts carry escape codes, so fit whole parts by visible width
	// instead of truncating the joined string.
	maxw := m.width - 2
	if maxw < 1 {
		maxw = 1
	}
	var b strings.Builder
	used := 0
	for i, part := range parts {
		w := lipgloss.Width(part)
		sep := 0
		if i > 0 {
			sep = 2
		}
		if used+sep+w > maxw {
			break
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(part)
		used += sep + w
	}
	return m.theme.StatusBar.Width(m.width).Render(b.String())
}

func (m Model) pillFor(value int) lipgloss.Style {
	switch {
	case value >= 67:
		return m.theme.PillGood
	case value >= 34:
		return m.theme.PillWarn
	default:
		return m.theme.PillBad
	}
}
