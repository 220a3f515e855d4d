// ABOUTME: FooterModel renders the two-line status bar under the input
// ABOUTME: Line 1: service health + base URL; line 2: transcript state + request state

package interactive

import (
	"path/filepath"

	"github.com/mauromedda/academic-assistant/internal/session"
	"github.com/mauromedda/academic-assistant/internal/upload"
	"github.com/mauromedda/academic-assistant/pkg/tui/width"
)

// Health probe states shown in the footer.
const (
	healthUnknown = iota
	healthOK
	healthDegraded
	healthDown
)

// FooterModel is a value-type leaf; the app rebuilds it with the With* setters.
type FooterModel struct {
	baseURL   string
	health    int
	upload    upload.State
	uploading bool
	file      string
	state     session.State
	width     int
}

// NewFooterModel creates a footer for the given service address.
func NewFooterModel(baseURL string) FooterModel {
	return FooterModel{baseURL: baseURL}
}

// WithHealth returns a FooterModel with the health indicator set.
func (m FooterModel) WithHealth(h int) FooterModel {
	m.health = h
	return m
}

// WithUpload returns a FooterModel with the transcript state set.
func (m FooterModel) WithUpload(state upload.State, uploading bool, path string) FooterModel {
	m.upload = state
	m.uploading = uploading
	m.file = path
	return m
}

// WithState returns a FooterModel with the conversation state set.
func (m FooterModel) WithState(st session.State) FooterModel {
	m.state = st
	return m
}

// WithWidth returns a FooterModel truncating to w columns.
func (m FooterModel) WithWidth(w int) FooterModel {
	m.width = w
	return m
}

// View renders both footer lines. Truncation happens on the plain text
// before styling so escape sequences are never cut.
func (m FooterModel) View() string {
	s := Styles()

	var dot, label string
	switch m.health {
	case healthOK:
		dot, label = s.FooterOK.Render("●"), "online"
	case healthDegraded:
		dot, label = s.Accent.Render("●"), "degraded"
	case healthDown:
		dot, label = s.FooterBad.Render("●"), "offline"
	default:
		dot, label = s.Dim.Render("○"), "checking"
	}

	url := m.baseURL
	if m.width > 0 {
		// dot, space, label, two spaces
		avail := m.width - 4 - len(label)
		if avail < 1 {
			avail = 1
		}
		url = width.TruncateLeft(url, avail, "…")
	}
	line1 := dot + " " + label + "  " + s.FooterText.Render(url)

	name := filepath.Base(m.file)
	var text string
	style := s.FooterText
	switch {
	case m.uploading:
		text, style = "uploading "+name, s.Accent
	case m.upload == upload.StateUploaded:
		text, style = "transcript: "+name, s.FooterOK
	case m.upload == upload.StateSelected:
		text = "selected: " + name + " (ctrl+u to upload)"
	default:
		text, style = "no transcript", s.Dim
	}

	var pending string
	if m.state == session.StateAwaitingResponse {
		pending = "waiting for reply"
	}

	if m.width > 0 {
		budget := m.width
		if pending != "" {
			budget -= width.Of(pending) + 5
		}
		if budget < 1 {
			budget = 1
		}
		text = width.Truncate(text, budget, "…")
	}

	line2 := style.Render(text)
	if pending != "" {
		line2 += s.Muted.Render("  ·  ") + s.Accent.Render(pending)
	}
	return line1 + "\n" + line2
}
