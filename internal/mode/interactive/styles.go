// ABOUTME: Lipgloss styles for the assistant TUI
// ABOUTME: Built once; role colors for messages plus footer, notice and alert styles

package interactive

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeStyles holds pre-built lipgloss styles.
type ThemeStyles struct {
	Title  lipgloss.Style
	Bold   lipgloss.Style
	Dim    lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style

	UserBg          lipgloss.Style
	AssistantBorder lipgloss.Style
	Placeholder     lipgloss.Style

	Notice lipgloss.Style
	Error  lipgloss.Style
	Border lipgloss.Style

	FooterOK   lipgloss.Style
	FooterBad  lipgloss.Style
	FooterText lipgloss.Style

	AlertBox   lipgloss.Style
	AlertTitle lipgloss.Style
}

var styles = sync.OnceValue(func() ThemeStyles {
	return ThemeStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Bold:   lipgloss.NewStyle().Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

		UserBg:          lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
		AssistantBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Placeholder:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),

		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("110")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

		FooterOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		FooterBad:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		FooterText: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1),
		AlertTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
})

// Styles returns the shared style set.
func Styles() ThemeStyles {
	return styles()
}
