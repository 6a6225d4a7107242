package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer wraps glamour so assistant replies render as terminal
// markdown. Rendering falls back to plain text when glamour cannot be
// initialised (e.g. no TTY).
type markdownRenderer struct {
	mu       sync.Mutex
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{}
}

func (r *markdownRenderer) Render(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	if width <= 0 {
		width = 80
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
