// ABOUTME: All custom tea.Msg types for the assistant TUI
// ABOUTME: Request results (chat, upload, health) and overlay lifecycle messages

package interactive

import (
	"github.com/mauromedda/academic-assistant/internal/transport"
	"github.com/mauromedda/academic-assistant/internal/upload"
)

// --- Request results (returned by tea.Cmd closures) ---

// ChatReplyMsg carries the assistant reply for a turn.
type ChatReplyMsg struct {
	Turn uint64
	Text string
}

// ChatFailedMsg reports a failed chat request for a turn.
type ChatFailedMsg struct {
	Turn uint64
	Err  error
}

// UploadDoneMsg carries the upload response; Doc is nil when the service
// returned no data.
type UploadDoneMsg struct {
	Ticket upload.Ticket
	Doc    *transport.Document
}

// UploadFailedMsg reports a failed upload.
type UploadFailedMsg struct {
	Ticket upload.Ticket
	Err    error
}

// HealthMsg carries the startup health probe result.
type HealthMsg struct {
	Status transport.HealthStatus
	Err    error
}

// --- Overlays ---

// PickerSelectMsg is sent when a file is chosen in the picker.
type PickerSelectMsg struct{ Path string }

// DismissOverlayMsg closes the active overlay.
type DismissOverlayMsg struct{}
