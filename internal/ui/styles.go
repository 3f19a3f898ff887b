package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8C42")).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			MarginBottom(1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8C42")).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB84D")).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF8C42")).
			Padding(1, 2)
)

// groupColors are the row backgrounds of matched sheet groups, reused in
// order when there are more groups than colors.
var groupColors = []lipgloss.Color{
	"#C8E6C9", // light green
	"#E1BEE7", // lilac
	"#FFCCBC", // light orange
	"#B3E5FC", // light blue
	"#FFF9C4", // light yellow
	"#F8BBD0", // light pink
	"#D1C4E9", // light violet
	"#DCEDC8", // light lime
	"#FFECB3", // light amber
	"#CFD8DC", // light grey
}

// GroupStyle returns the row style of the 1-based group number.
func GroupStyle(number int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(groupColors[(number-1)%len(groupColors)]).
		Foreground(lipgloss.Color("#1F2937"))
}
