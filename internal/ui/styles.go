package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for the dashboard
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - running state, served pages
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failed state, errors
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	ConnColor    = lipgloss.Color("#5FAFFF") // Blue - connection events
	MutedColor   = lipgloss.Color("#626262") // Gray - timestamps, secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

var (
	// TitleStyle is for the app title line
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// URLStyle is for the advertised URL while running
	URLStyle = lipgloss.NewStyle().
			Foreground(ConnColor).
			Underline(true)

	// LogBoxStyle frames the event log viewport
	LogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)

	// TimestampStyle is for log entry timestamps
	TimestampStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// HelpStyle is for the key hint footer
	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	stateStyles = map[string]lipgloss.Style{
		"stopped":  lipgloss.NewStyle().Foreground(MutedColor).Bold(true),
		"starting": lipgloss.NewStyle().Foreground(WarningColor).Bold(true),
		"running":  lipgloss.NewStyle().Foreground(SuccessColor).Bold(true),
		"failed":   lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
	}

	kindStyles = map[string]lipgloss.Style{
		"info":       lipgloss.NewStyle().Foreground(TextColor),
		"success":    lipgloss.NewStyle().Foreground(SuccessColor),
		"warning":    lipgloss.NewStyle().Foreground(WarningColor),
		"error":      lipgloss.NewStyle().Foreground(ErrorColor),
		"connection": lipgloss.NewStyle().Foreground(ConnColor),
	}
)

// StateStyle returns the style for a server state badge.
func StateStyle(state string) lipgloss.Style {
	if s, ok := stateStyles[state]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(TextColor)
}

// KindStyle returns the style for a log entry of the given event kind.
func KindStyle(kind string) lipgloss.Style {
	if s, ok := kindStyles[kind]; ok {
		return s
	}
	return lipgloss.NewStyle().Foreground(TextColor)
}
