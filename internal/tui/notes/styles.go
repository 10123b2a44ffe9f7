package notes

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#0AF")).
			Background(lipgloss.Color("transparent")).
			Bold(true).
			Padding(0, 1)

	listStyle = lipgloss.NewStyle().
			Padding(0, 1)

	viewerStyle = lipgloss.NewStyle().
			Padding(0, 2)

	answerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#555")).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color("#0AF")).
				Foreground(lipgloss.Color("#0AF")).
				Padding(0, 0, 0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Render

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Render

	confidenceStyles = map[string]func(...string) string{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render,
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Render,
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Render,
	}

	citedMarkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454")).
			Bold(true).
			Render

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")).
			Render
)
