// ABOUTME: Rendering of assistant messages and the pending placeholder
// ABOUTME: Markdown via glamour behind a muted left border; placeholder gets a spinner frame

package interactive

import (
	"strings"
)

// renderAssistantMsg renders markdown content with a "│ " left border.
func renderAssistantMsg(content string, width int, md *MarkdownRenderer) string {
	s := Styles()
	border := s.AssistantBorder.Render("│")

	contentWidth := width - 2
	rendered := md.Render(content, contentWidth)
	if rendered == "" {
		rendered = s.Dim.Render("(empty reply)")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, line := range strings.Split(rendered, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(border + " " + line)
	}
	return b.String()
}

// renderPlaceholder renders the in-flight placeholder with a spinner frame.
func renderPlaceholder(text, frame string) string {
	s := Styles()
	border := s.AssistantBorder.Render("│")
	return "\n" + border + " " + s.Accent.Render(frame) + " " + s.Placeholder.Render(text)
}
