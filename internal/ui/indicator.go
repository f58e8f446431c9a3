package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Indicator is drawn in place of the Yes option while a report is being
// sent. Rendering is its only required capability.
type Indicator interface {
	View() string
}

// Animated indicators get Init and every message while the dialog is
// sending.
type Animated interface {
	Indicator
	Init() tea.Cmd
	Update(msg tea.Msg) (Indicator, tea.Cmd)
}

// StaticIndicator renders a fixed string.
type StaticIndicator string

func (s StaticIndicator) View() string { return string(s) }

type spinnerIndicator struct {
	spinner spinner.Model
}

// NewSpinnerIndicator returns the default animated dot spinner.
func NewSpinnerIndicator() Indicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return spinnerIndicator{spinner: s}
}

func (s spinnerIndicator) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s spinnerIndicator) Update(msg tea.Msg) (Indicator, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s spinnerIndicator) View() string {
	return s.spinner.View()
}
