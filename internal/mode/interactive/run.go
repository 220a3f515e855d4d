// ABOUTME: Entry point for the interactive assistant TUI
// ABOUTME: Creates the tea.Program on the alternate screen and blocks until exit

package interactive

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive app. Blocks until the user exits.
func Run(deps AppDeps) error {
	m := NewAppModel(deps)
	defer m.sh.cancel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}
