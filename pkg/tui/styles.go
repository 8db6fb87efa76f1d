package tui

import "github.com/charmbracelet/lipgloss"

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#06B6D4")).
			Bold(true)
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94A3B8"))
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#475569"))

	mainStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#475569"))
	mainSelectedStyle = mainStyle.
				BorderForeground(lipgloss.Color("#10B981"))

	slotStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#475569"))
	slotSelectedStyle = slotStyle.
				BorderForeground(lipgloss.Color("#10B981"))
	slotCurrentStyle = lipgloss.NewStyle().
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color("#E2E8F0"))
	slotCurrentSelectedStyle = slotCurrentStyle.
					BorderForeground(lipgloss.Color("#10B981"))
)

func slotBorder(current, selected bool) lipgloss.Style {
	switch {
	case current && selected:
		return slotCurrentSelectedStyle
	case current:
		return slotCurrentStyle
	case selected:
		return slotSelectedStyle
	default:
		return slotStyle
	}
}
