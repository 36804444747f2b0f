package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successColor = lipgloss.Color("#10B981") // green
	warnColor    = lipgloss.Color("#F59E0B") // yellow
	dangerColor  = lipgloss.Color("#EF4444") // red
	infoColor    = lipgloss.Color("#7C3AED") // purple

	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(dangerColor).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
)

func ShowSuccess(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

func ShowError(msg string, err error) {
	if err != nil {
		fmt.Printf(" %s %s: %v\n", errorStyle.Render("✗"), msg, err)
	} else {
		fmt.Printf(" %s %s\n", errorStyle.Render("✗"), msg)
	}
}

func ShowWarning(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", warnStyle.Render("!"), fmt.Sprintf(format, args...))
}

func ShowInfo(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", infoStyle.Render("ℹ"), fmt.Sprintf(format, args...))
}
