package ui

import (
	"github.com/muesli/termenv"
)

// RenderLink shows url as literal text. When hyperlinks is set the text is
// additionally wrapped in an OSC 8 hyperlink for terminals that support it.
func RenderLink(url string, hyperlinks bool) string {
	text := LinkStyle.Render(url)
	if !hyperlinks {
		return text
	}
	return termenv.Hyperlink(url, text)
}
