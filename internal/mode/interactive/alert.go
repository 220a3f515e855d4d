// ABOUTME: Blocking alert overlay for failed uploads
// ABOUTME: Shows the message in a red rounded box until enter or esc dismisses it

package interactive

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AlertModel is a modal message box.
type AlertModel struct {
	title string
	body  string
}

// NewAlertModel creates an alert with a title and body text.
func NewAlertModel(title, body string) AlertModel {
	return AlertModel{title: title, body: body}
}

// Update dismisses the alert on enter, esc, space or ctrl+c.
func (m AlertModel) Update(msg tea.Msg) (AlertModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeySpace, tea.KeyCtrlC:
		return m, func() tea.Msg { return DismissOverlayMsg{} }
	}
	return m, nil
}

// View renders the alert box.
func (m AlertModel) View() string {
	s := Styles()
	return s.AlertBox.Render(lipgloss.JoinVertical(lipgloss.Left,
		s.AlertTitle.Render(m.title),
		"",
		m.body,
		"",
		s.Dim.Render("press enter to dismiss"),
	))
}
