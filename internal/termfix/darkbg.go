// ABOUTME: Declares the terminal background to lipgloss before bubbletea initializes
// ABOUTME: ACADEMIC_ASSISTANT_BACKGROUND picks light or dark; markdown styles follow the choice

package termfix

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/academic-assistant/internal/config"
)

// With the background already known, bubbletea's init skips the OSC 10/11
// query whose late reply would otherwise arrive as keystrokes in the input.
// Keep this package free of bubbletea imports so its init runs first.
func init() {
	lipgloss.SetHasDarkBackground(IsDark(os.Getenv(config.EnvBackground)))
}

// IsDark reports whether a background setting names a dark terminal.
// Only "light" (any case) selects a light background.
func IsDark(setting string) bool {
	return !strings.EqualFold(strings.TrimSpace(setting), "light")
}

// GlamourStyle returns the glamour standard style for the declared background.
func GlamourStyle() string {
	if lipgloss.HasDarkBackground() {
		return styles.DarkStyle
	}
	return styles.LightStyle
}
