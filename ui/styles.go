package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/railscope/stationboard/model"
)

var (
	// Colors
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorOrange = lipgloss.Color("#FFB86C")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")
	colorPanel  = lipgloss.Color("#44475A")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	degradedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorRed).
				Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle    = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle     = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	orangeStyle   = lipgloss.NewStyle().Foreground(colorOrange)
	helpStyle     = lipgloss.NewStyle().Foreground(colorGray)
	selectedStyle = lipgloss.NewStyle().Background(colorPanel).Foreground(colorWhite)
	fallbackStyle = lipgloss.NewStyle().Foreground(colorOrange).Italic(true)
)

func levelStyle(l model.AlertLevel) lipgloss.Style {
	switch l {
	case model.LevelError:
		return critStyle
	case model.LevelWarning:
		return warnStyle
	case model.LevelInfo:
		return okStyle
	}
	return dimStyle
}

func statusStyle(s model.TrainStatus) lipgloss.Style {
	switch s {
	case model.StatusOnTime, model.StatusEarly:
		return okStyle
	case model.StatusDelayed:
		return warnStyle
	case model.StatusCancelled:
		return critStyle
	}
	return dimStyle
}

// statusLabel is the human form of a status bucket for the board.
func statusLabel(s model.TrainStatus) string {
	switch s {
	case model.StatusOnTime:
		return "On Time"
	case model.StatusDelayed:
		return "Delayed"
	case model.StatusCancelled:
		return "Cancelled"
	case model.StatusEarly:
		return "Early"
	}
	return "Unknown"
}
