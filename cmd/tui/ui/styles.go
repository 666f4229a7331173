package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Recycling-themed colors
	Primary   = lipgloss.Color("#2EB872") // Leaf green
	Secondary = lipgloss.Color("#A3DE83") // Light green
	Accent    = lipgloss.Color("#1B6CA8") // Municipal blue
	Success   = lipgloss.Color("#48C774") // Bright green
	Warning   = lipgloss.Color("#FFB84D") // Warm orange
	Error     = lipgloss.Color("#FF5A5F") // Red
	Muted     = lipgloss.Color("#6B7B8C") // Muted blue-gray
	Text      = lipgloss.Color("#F0F7EE") // Off white
	BgDark    = lipgloss.Color("#0F2417") // Deep green-black

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(Warning).
				Bold(true)

	StatusScheduledStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	StatusCompletedStyle = lipgloss.NewStyle().
				Foreground(Success).
				Bold(true)
)
