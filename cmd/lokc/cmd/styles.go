package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/xyproto/env/v2"
)

// noColor disables all styling; useful when piping output.
var noColor = env.Bool("LOKC_NO_COLOR")

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	styleKeyword = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6"))
	styleLiteral = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func render(s lipgloss.Style, text string) string {
	if noColor {
		return text
	}
	return s.Render(text)
}
