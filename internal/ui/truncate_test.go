package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleLines(t *testing.T) {
	lines := strings.Split("a\nb\nc\nd\ne", "\n")

	tests := []struct {
		name string
		rows int
		want []string
	}{
		{"fits", 40, lines},
		{"cut", 22, []string{"a", "b"}},
		{"margin only", 20, []string{"a"}},
		{"tiny terminal", 3, []string{"a"}},
		{"unknown size", 0, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleLines(lines, tt.rows))
		})
	}
}

func TestVisibleLines_Empty(t *testing.T) {
	assert.Empty(t, VisibleLines(nil, 30))
}

func TestRenderLink(t *testing.T) {
	plain := RenderLink("https://example.com", false)
	assert.Contains(t, plain, "https://example.com")
	assert.NotContains(t, plain, "\x1b]8;;")

	linked := RenderLink("https://example.com", true)
	assert.Contains(t, linked, "\x1b]8;;https://example.com")
}
