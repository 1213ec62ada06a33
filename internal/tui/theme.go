package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorDim     = lipgloss.Color("#7f849c")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorSuccess = lipgloss.Color("#a6e3a1")
	colorFailure = lipgloss.Color("#f38ba8")

	titleStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	textStyle     = lipgloss.NewStyle().Foreground(colorText)
	dimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	selectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	successStyle  = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	failureStyle  = lipgloss.NewStyle().Foreground(colorFailure).Bold(true)
)
