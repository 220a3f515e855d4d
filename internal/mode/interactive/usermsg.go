// ABOUTME: Rendering of user messages in the conversation log
// ABOUTME: UserBg style with bold "> " prefix, wrapped to the log width

package interactive

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderUserMsg renders a blank line followed by the user text with the
// UserBg style and a bold " > " prefix. Empty submissions still get a line.
func renderUserMsg(text string, width int) string {
	s := Styles()
	body := text
	if width > 4 {
		body = lipgloss.NewStyle().Width(width - 4).Render(text)
	}
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		prefix := "   "
		if i == 0 {
			prefix = " > "
		}
		lines[i] = s.UserBg.Render(s.Bold.Render(prefix) + strings.TrimRight(l, " ") + " ")
	}
	return "\n" + strings.Join(lines, "\n")
}
