package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - borders, focus
	SuccessColor = lipgloss.Color("#43BF6D") // Green - report received
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failure text
	AccentColor  = lipgloss.Color("#00B7C3") // Cyan - spinner
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	// HeightMargin is the number of rows reserved for everything around the
	// failure text.
	HeightMargin = 20

	// DefaultHeight is assumed when the terminal size is unknown.
	DefaultHeight = 24

	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

var (
	// ErrorBannerStyle is the "unexpected error" banner
	ErrorBannerStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(ErrorColor).
				Bold(true).
				Padding(0, 1)

	// FailureTextStyle is for the captured failure message
	FailureTextStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	BoldStyle = lipgloss.NewStyle().Bold(true)

	MutedStyle = lipgloss.NewStyle().Foreground(MutedColor)

	// LinkStyle is for URLs
	LinkStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Underline(true)

	// SubmitBoxStyle frames the Yes/No options
	SubmitBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1).
			MarginTop(1)

	// OptionLabelStyle is for an unfocused option label
	OptionLabelStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Width(4)

	// FocusedOptionLabelStyle is for the focused option label
	FocusedOptionLabelStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Width(6)

	// DisabledOptionStyle is for an option that can no longer be selected
	DisabledOptionStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Strikethrough(true)

	// SpinnerStyle is for the in-flight indicator
	SpinnerStyle = lipgloss.NewStyle().Foreground(AccentColor)

	// SuccessTitleStyle is for "We successfully received the error report"
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// FailureTitleStyle is for "We could not send the error report"
	FailureTitleStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	ReportIDStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Markers
const (
	FocusMarker   = "❯"
	SuccessMarker = "✓"
	FailureMarker = "✗"
)

// GetTerminalSize returns the stdout terminal width and height, falling back
// to MinTerminalWidth x DefaultHeight when stdout is not a terminal.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, DefaultHeight
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}
