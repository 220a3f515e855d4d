// ABOUTME: Markdown renderer wrapper around glamour for assistant replies
// ABOUTME: Caches rendered results keyed by content hash + width; falls back to raw text

package interactive

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mauromedda/academic-assistant/internal/termfix"
)

// MarkdownRenderer wraps glamour to render markdown with caching.
type MarkdownRenderer struct {
	style string
	cache map[string]string // "hash:width" -> rendered
}

// NewMarkdownRenderer creates a renderer using a glamour standard style
// ("dark", "light", "notty", ...). An empty style follows the terminal background.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = termfix.GlamourStyle()
	}
	return &MarkdownRenderer{
		style: style,
		cache: make(map[string]string),
	}
}

// Render returns the terminal-styled rendering of the given markdown.
// Results are cached by content hash and width.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}

	// Glamour pads with blank lines and trailing spaces.
	rendered = strings.Trim(rendered, "\n")
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	rendered = strings.Join(lines, "\n")

	r.cache[key] = rendered
	return rendered
}

// cacheKey produces a string key from content hash and width.
func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}
