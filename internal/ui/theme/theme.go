package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — warm study-desk tones on a dark ground
var (
	Primary   = lipgloss.Color("#FFE066") // Warm Yellow
	Secondary = lipgloss.Color("#8CBED6") // Soft Blue
	Accent    = lipgloss.Color("#F4A261") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F5F0E6") // Cream
	TextDim   = lipgloss.Color("#8A8578") // Warm Grey
	BgDark    = lipgloss.Color("#1A1A1A") // Near Black
	BgCard    = lipgloss.Color("#262626") // Charcoal
	Border    = lipgloss.Color("#3D3A33") // Dim Olive
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	UserBubble = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Secondary).
			Padding(0, 1)

	ModelBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Padding(0, 1)
)
