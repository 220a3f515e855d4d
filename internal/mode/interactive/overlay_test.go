// ABOUTME: Tests for the alert and transcript picker overlays
// ABOUTME: Dismissal keys, PDF-only filtering and rendering

package interactive

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestAlertModel_Dismiss(t *testing.T) {
	t.Parallel()

	for _, k := range []tea.KeyType{tea.KeyEnter, tea.KeyEsc, tea.KeySpace} {
		a := NewAlertModel("Upload failed", "boom")
		_, cmd := a.Update(tea.KeyMsg{Type: k})
		if cmd == nil {
			t.Fatalf("key %v: cmd = nil; want dismiss", k)
		}
		if _, ok := cmd().(DismissOverlayMsg); !ok {
			t.Errorf("key %v: did not dismiss", k)
		}
	}

	a := NewAlertModel("Upload failed", "boom")
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Error("other keys should not dismiss")
	}
}

func TestAlertModel_View(t *testing.T) {
	t.Parallel()

	v := NewAlertModel("Upload failed", "Could not upload transcript.pdf").View()
	for _, want := range []string{"Upload failed", "Could not upload transcript.pdf", "enter"} {
		if !strings.Contains(v, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestPickerModel_Config(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := NewPickerModel(dir, 2)

	if p.fp.CurrentDirectory != dir {
		t.Errorf("CurrentDirectory = %q; want %q", p.fp.CurrentDirectory, dir)
	}
	if len(p.fp.AllowedTypes) != 1 || p.fp.AllowedTypes[0] != ".pdf" {
		t.Errorf("AllowedTypes = %v; want [.pdf]", p.fp.AllowedTypes)
	}
	if p.fp.Height != 5 {
		t.Errorf("Height = %d; want minimum 5", p.fp.Height)
	}
	if p.Init() == nil {
		t.Error("Init() = nil; want directory read")
	}
	if !strings.Contains(p.View(), "Choose a transcript") {
		t.Error("picker title missing")
	}
}

func TestPickerModel_EscDismisses(t *testing.T) {
	t.Parallel()

	p := NewPickerModel(t.TempDir(), 10)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned nil cmd")
	}
	if _, ok := cmd().(DismissOverlayMsg); !ok {
		t.Error("esc did not dismiss the picker")
	}
}
