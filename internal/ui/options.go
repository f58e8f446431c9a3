package ui

import (
	"strings"
)

// Option is a focusable, selectable line in the submit box.
type Option struct {
	Label       string
	Description string
	TabIndex    int
}

// Submit box options, focus-ordered Yes then No.
var (
	YesOption = Option{Label: "Yes", Description: "Send error report once", TabIndex: 0}
	NoOption  = Option{Label: "No", Description: "Don't send error report", TabIndex: 1}
)

const optionCount = 2

// renderOption draws an option row. Unfocused rows are indented to keep the
// labels aligned with the focus marker.
func renderOption(opt Option, focused, disabled bool) string {
	var b strings.Builder
	switch {
	case disabled:
		b.WriteString("  ")
		b.WriteString(DisabledOptionStyle.Render(opt.Label + "  " + opt.Description))
		return b.String()
	case focused:
		b.WriteString(FocusedOptionLabelStyle.Render(FocusMarker + " " + opt.Label))
	default:
		b.WriteString("  ")
		b.WriteString(OptionLabelStyle.Render(opt.Label))
	}
	b.WriteString(" ")
	b.WriteString(MutedStyle.Render(opt.Description))
	return b.String()
}
