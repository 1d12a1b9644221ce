package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Campus color palette - lawn greens with wayfinding amber
var (
	colorGreenBright = lipgloss.Color("#4ADE80") // Bright green - highlights, success
	colorGreenDeep   = lipgloss.Color("#16A34A") // Deep green - borders, accents
	colorAmber       = lipgloss.Color("#F4D03F") // Amber - the painted wayfinding arrows
	colorError       = lipgloss.Color("#E74C3C") // Red for errors
	colorSlate       = lipgloss.Color("#64748B") // Slate for muted text
)

// styles provides the pre-configured lipgloss styles used by the commands.
var styles = struct {
	Title     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Box       lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(colorGreenBright),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(colorAmber),
	Muted:     lipgloss.NewStyle().Foreground(colorSlate),
	Success:   lipgloss.NewStyle().Foreground(colorGreenBright),
	Error:     lipgloss.NewStyle().Foreground(colorError),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreenDeep).
		Padding(0, 1),
}

func printError(err error) {
	fmt.Println(styles.Error.Render("✗ " + err.Error()))
}
