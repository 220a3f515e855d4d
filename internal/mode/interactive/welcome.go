// ABOUTME: Startup banner shown while the conversation log is empty
// ABOUTME: Title, service address and the keyboard shortcuts for chat and transcript upload

package interactive

import (
	"fmt"
	"strings"
)

var shortcuts = []struct {
	key  string
	desc string
}{
	{"enter", "send message"},
	{"ctrl+f", "choose transcript PDF"},
	{"ctrl+u", "upload transcript"},
	{"pgup/pgdown", "scroll"},
	{"ctrl+c", "cancel request / exit"},
	{"/help", "commands"},
	{"//...", "send a message starting with /"},
}

// renderWelcome renders the banner with version and service details.
func renderWelcome(version, baseURL string) string {
	s := Styles()
	if version == "" {
		version = "dev"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", s.Bold.Render("Academic Assistant"), s.Dim.Render("v"+version)))
	b.WriteString(fmt.Sprintf("  %s\n\n", s.Muted.Render(baseURL)))
	b.WriteString("  Ask about courses and degree requirements. Upload a transcript\n")
	b.WriteString("  to get answers based on what you have already completed.\n\n")

	for _, sc := range shortcuts {
		b.WriteString(fmt.Sprintf("  %s %s\n", s.Accent.Render(fmt.Sprintf("%-12s", sc.key)), s.Dim.Render(sc.desc)))
	}
	return strings.TrimRight(b.String(), "\n")
}
