// ABOUTME: Transcript picker overlay built on the bubbles file picker
// ABOUTME: Browses directories, allows only .pdf files and emits PickerSelectMsg on choice

package interactive

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickerModel wraps filepicker.Model with dismissal and a title.
type PickerModel struct {
	fp    filepicker.Model
	width int
}

// NewPickerModel creates a picker rooted at dir ("" means the working directory).
func NewPickerModel(dir string, height int) PickerModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	fp.ShowHidden = false
	fp.AutoHeight = false
	if height < 5 {
		height = 5
	}
	fp.Height = height

	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	return PickerModel{fp: fp}
}

// Init starts reading the current directory.
func (m PickerModel) Init() tea.Cmd {
	return m.fp.Init()
}

// Update routes messages to the file picker. esc and ctrl+c dismiss the
// overlay; a chosen PDF is reported as PickerSelectMsg.
func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, func() tea.Msg { return DismissOverlayMsg{} }
		}
	}
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.fp.Height = max(5, ws.Height-8)
		return m, nil
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		return m, func() tea.Msg { return PickerSelectMsg{Path: path} }
	}
	return m, cmd
}

// View renders the picker inside a bordered box.
func (m PickerModel) View() string {
	s := Styles()
	title := s.Title.Render("Choose a transcript (PDF)")
	hint := s.Dim.Render("enter select · ← back · esc cancel")
	dir := s.Muted.Render(m.fp.CurrentDirectory)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(0, 1)
	if m.width > 10 {
		box = box.Width(m.width - 4)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, dir, "", m.fp.View(), "", hint))
}
