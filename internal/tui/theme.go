package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nisugi/two-face-sub002/internal/segment"
)

// Theme describes the colors and styles for the UI.
type Theme struct {
	Name       string
	Text       lipgloss.Style
	Border     lipgloss.Style
	Title      lipgloss.Style
	StatusBar  lipgloss.Style
	Input      lipgloss.Style
	Prompt     lipgloss.Style
	KindStyles map[segment.Kind]lipgloss.Style
	PillGood   lipgloss.Style
	PillWarn   lipgloss.Style
	PillBad    lipgloss.Style
	Notify     lipgloss.Style
}

func themeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "ember":
		return emberTheme()
	case "moss":
		return mossTheme()
	default:
		return ivoryTheme()
	}
}

func ivoryTheme() Theme {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color("#D8D3C5"))
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8A8473"))
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#E8DEB8")).Bold(true)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("#1C1B17")).Background(lipgloss.Color("#B8AE8F")).Padding(0, 1)
	input := border.BorderForeground(lipgloss.Color("#B8AE8F"))
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("#E8DEB8")).Bold(true)

	kinds := map[segment.Kind]lipgloss.Style{
		segment.KindNormal:      text,
		segment.KindLink:        lipgloss.NewStyle().Foreground(lipgloss.Color("#9CC4E4")).Underline(true),
		segment.KindMonsterbold: lipgloss.NewStyle().Foreground(lipgloss.Color("#F2D16B")).Bold(true),
		segment.KindSpell:       lipgloss.NewStyle().Foreground(lipgloss.Color("#C8A2D0")),
		segment.KindSpeech:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A3C9A8")),
	}

	return Theme{
		Name:       "ivory",
		Text:       text,
		Border:     border,
		Title:      title,
		StatusBar:  status,
		Input:      input,
		Prompt:     prompt,
		KindStyles: kinds,
		PillGood:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1C1B17")).Background(lipgloss.Color("#A3C9A8")).Padding(0, 1),
		PillWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1C1B17")).Background(lipgloss.Color("#F2D16B")).Padding(0, 1),
		PillBad:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F5EFE0")).Background(lipgloss.Color("#C65F5F")).Padding(0, 1),
		Notify:     lipgloss.NewStyle().Foreground(lipgloss.Color("#F2D16B")),
	}
}

func emberTheme() Theme {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color("#E0C9B4"))
	border := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#8C4A32"))
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#F08C42")).Bold(true)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("#1A0E08")).Background(lipgloss.Color("#F08C42")).Padding(0, 1)
	input := border.BorderForeground(lipgloss.Color("#F08C42"))
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("#F08C42")).Bold(true)

	kinds := map[segment.Kind]lipgloss.Style{
		segment.KindNormal:      text,
		segment.KindLink:        lipgloss.NewStyle().Foreground(lipgloss.Color("#E4B363")).Underline(true),
		segment.KindMonsterbold: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B4A")).Bold(true),
		segment.KindSpell:       lipgloss.NewStyle().Foreground(lipgloss.Color("#D98CB3")),
		segment.KindSpeech:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8FD694")),
	}

	return Theme{
		Name:       "ember",
		Text:       text,
		Border:     border,
		Title:      title,
		StatusBar:  status,
		Input:      input,
		Prompt:     prompt,
		KindStyles: kinds,
		PillGood:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1A0E08")).Background(lipgloss.Color("#8FD694")).Padding(0, 1),
		PillWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#1A0E08")).Background(lipgloss.Color("#E4B363")).Padding(0, 1),
		PillBad:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F5E4D4")).Background(lipgloss.Color("#B8352F")).Padding(0, 1),
		Notify:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B4A")),
	}
}

func mossTheme() Theme {
	text := lipgloss.NewStyle().Foreground(lipgloss.Color("#C9D4C5"))
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5C7354"))
	title := lipgloss.NewStyle().Foreground(lipgloss.Color("#A8C686")).Bold(true)
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("#10140E")).Background(lipgloss.Color("#7E9970")).Padding(0, 1)
	input := border.BorderForeground(lipgloss.Color("#7E9970"))
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color("#A8C686")).Bold(true)

	kinds := map[segment.Kind]lipgloss.Style{
		segment.KindNormal:      text,
		segment.KindLink:        lipgloss.NewStyle().Foreground(lipgloss.Color("#8FBCBB")).Underline(true),
		segment.KindMonsterbold: lipgloss.NewStyle().Foreground(lipgloss.Color("#E9D985")).Bold(true),
		segment.KindSpell:       lipgloss.NewStyle().Foreground(lipgloss.Color("#B48EAD")),
		segment.KindSpeech:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A8C686")),
	}

	return Theme{
		Name:       "moss",
		Text:       text,
		Border:     border,
		Title:      title,
		StatusBar:  status,
		Input:      input,
		Prompt:     prompt,
		KindStyles: kinds,
		PillGood:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10140E")).Background(lipgloss.Color("#A8C686")).Padding(0, 1),
		PillWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10140E")).Background(lipgloss.Color("#E9D985")).Padding(0, 1),
		PillBad:    lipgloss.NewStyle().Foreground(lipgloss.Color("#E8EDE6")).Background(lipgloss.Color("#A54242")).Padding(0, 1),
		Notify:     lipgloss.NewStyle().Foreground(lipgloss.Color("#E9D985")),
	}
}

func nextTheme(current string) string {
	order := []string{"ivory", "ember", "moss"}
	for i, theme := range order {
		if theme == strings.ToLower(current) {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
