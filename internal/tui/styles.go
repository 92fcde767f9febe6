package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen = lipgloss.Color("#10b981")
	colorGray  = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f8fafc")
	colorDark  = lipgloss.Color("#1e293b")
)

// StyleHeader — full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleTab styles the active report tab label.
var StyleTab = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)

// StyleTabInactive styles the remaining tab labels.
var StyleTabInactive = lipgloss.NewStyle().Foreground(colorGray)

// StyleDim — footer hints and timestamps.
var StyleDim = lipgloss.NewStyle().Foreground(colorGray)
