package tui

import "github.com/charmbracelet/lipgloss"

// Theme groups the styles used by the dashboard.
type Theme struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Countdown lipgloss.Style
	Label     lipgloss.Style
	Card      lipgloss.Style
	Gold      lipgloss.Style
	Next      lipgloss.Style
	Dim       lipgloss.Style
	Friday    lipgloss.Style
	Today     lipgloss.Style
	Focused   lipgloss.Style
	On        lipgloss.Style
	Off       lipgloss.Style
	Error     lipgloss.Style
	Input     lipgloss.Style
}

// CurrentTheme is the emerald and gold palette of the dashboard.
var CurrentTheme = Theme{
	Base:      lipgloss.NewStyle().Margin(1, 2),
	Title:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
	ActiveTab: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("36")).Bold(true).Padding(0, 1),
	Countdown: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true),
	Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
	Card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("36")).Padding(0, 2),
	Gold:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	Next:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Friday:    lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
	Today:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Reverse(true),
	Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	On:        lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	Off:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("220")).Padding(0, 1).Width(30),
}
