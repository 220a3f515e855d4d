// ABOUTME: Root AppModel wiring the conversation session, upload coordinator and widgets
// ABOUTME: Handles key dispatch, request lifecycle messages, overlays and layout

package interactive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mauromedda/academic-assistant/internal/commands"
	"github.com/mauromedda/academic-assistant/internal/log"
	"github.com/mauromedda/academic-assistant/internal/session"
	"github.com/mauromedda/academic-assistant/internal/upload"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	inputPlaceholder = "Ask about courses or degree requirements"
	maxNoticeLines   = 8
)

// shared holds mutable state that must survive AppModel value copies.
// Bubble Tea copies the model on each Update; pointer fields are shared
// across copies. Update is single-threaded so no mutex is needed.
type shared struct {
	ctx        context.Context
	cancel     context.CancelFunc
	cancelChat context.CancelFunc
}

// AppModel is the root Bubble Tea model for the interactive TUI.
type AppModel struct {
	sh *shared

	deps     AppDeps
	session  *session.Session
	uploads  *upload.Coordinator
	registry *commands.Registry

	input   textinput.Model
	log     viewport.Model
	spinner spinner.Model
	md      *MarkdownRenderer
	footer  FooterModel
	health  int

	// Overlays; at most one is non-nil.
	picker *PickerModel
	alert  *AlertModel

	notice    string
	noticeErr bool

	width, height int
}

// NewAppModel creates an AppModel wired with the given dependencies.
func NewAppModel(deps AppDeps) AppModel {
	ctx, cancel := context.WithCancel(context.Background())

	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = inputPlaceholder
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := AppModel{
		sh:       &shared{ctx: ctx, cancel: cancel},
		deps:     deps,
		session:  session.New(deps.Identity),
		uploads:  upload.New(),
		registry: commands.NewRegistry(),
		input:    ti,
		log:      viewport.New(defaultWidth, defaultHeight),
		spinner:  sp,
		md:       NewMarkdownRenderer(""),
		footer:   NewFooterModel(deps.BaseURL),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m = m.layout()
	m.refreshLog()
	return m
}

// Session exposes the conversation state machine.
func (m AppModel) Session() *session.Session { return m.session }

// Uploads exposes the upload coordinator.
func (m AppModel) Uploads() *upload.Coordinator { return m.uploads }

// Init probes the service health.
func (m AppModel) Init() tea.Cmd {
	svc := m.deps.Service
	ctx := m.sh.ctx
	return func() tea.Msg {
		st, err := svc.Health(ctx)
		return HealthMsg{Status: st, Err: err}
	}
}

// Update routes messages to overlays, request handlers and widgets.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m = m.layout()
		m.refreshLog()
		if m.picker != nil {
			p, cmd := m.picker.Update(msg)
			m.picker = &p
			return m, cmd
		}
		return m, nil

	case ChatReplyMsg:
		if err := m.session.Resolve(msg.Turn, msg.Text); err != nil {
			return m, nil
		}
		return m.afterResolve()

	case ChatFailedMsg:
		if err := m.session.ResolveError(msg.Turn, msg.Err); err != nil {
			return m, nil
		}
		return m.afterResolve()

	case UploadDoneMsg:
		switch m.uploads.Complete(msg.Ticket, msg.Doc) {
		case upload.OutcomeUploaded:
			doc := m.uploads.Document()
			m = m.setNotice(fmt.Sprintf("Transcript uploaded: %d completed courses, %d requirement groups.",
				len(doc.CompletedCourses), len(doc.Requirements)), false)
		case upload.OutcomeEmpty:
			m = m.setNotice("The service returned no data for "+filepath.Base(msg.Ticket.Path)+".", false)
		}
		return m, nil

	case UploadFailedMsg:
		if m.uploads.Fail(msg.Ticket, msg.Err) == upload.OutcomeFailed {
			a := NewAlertModel("Upload failed",
				fmt.Sprintf("Could not upload %s.\nSelect the file again or press ctrl+u to retry.", filepath.Base(msg.Ticket.Path)))
			m.alert = &a
			m.picker = nil
		}
		return m, nil

	case HealthMsg:
		switch {
		case msg.Err != nil:
			log.Warn("health probe: %v", msg.Err)
			m.health = healthDown
		case msg.Status.Healthy() && msg.Status.OpenAIConfigured:
			m.health = healthOK
		default:
			m.health = healthDegraded
		}
		return m, nil

	case PickerSelectMsg:
		m.picker = nil
		m.uploads.SelectFile(msg.Path)
		m = m.setNotice(fmt.Sprintf("Selected %s. Press ctrl+u to upload.", filepath.Base(msg.Path)), false)
		return m, nil

	case DismissOverlayMsg:
		m.picker = nil
		m.alert = nil
		return m, nil

	case spinner.TickMsg:
		if !m.session.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshLog()
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Directory listings and other internal picker messages.
	if m.picker != nil {
		p, cmd := m.picker.Update(msg)
		m.picker = &p
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.alert != nil {
		a, cmd := m.alert.Update(msg)
		m.alert = &a
		return m, cmd
	}
	if m.picker != nil {
		p, cmd := m.picker.Update(msg)
		m.picker = &p
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		if m.session.Pending() {
			m.cancelChat()
			return m, nil
		}
		m.sh.cancel()
		return m, tea.Quit

	case "ctrl+d":
		m.cancelChat()
		m.sh.cancel()
		return m, tea.Quit

	case "ctrl+f":
		return m.openPicker()

	case "ctrl+u":
		cmd, err := m.startUpload()
		if err != nil {
			m = m.setNotice(uploadErrText(err), true)
			return m, nil
		}
		m = m.setNotice("Uploading "+filepath.Base(m.uploads.Selection())+"...", false)
		return m, cmd

	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd

	case "tab":
		if m.session.Pending() {
			return m, nil
		}
		if ghost := m.ghost(); ghost != "" {
			m.input.SetValue("/" + ghost + " ")
			m.input.CursorEnd()
			m.session.UpdateDraft(m.input.Value())
		}
		return m, nil

	case "enter":
		if m.session.Pending() {
			return m, nil
		}
		text := m.input.Value()
		trimmed := strings.TrimSpace(text)
		if commands.IsCommand(trimmed) {
			return m.runCommand(trimmed)
		}
		if escaped := commands.Unescape(trimmed); escaped != trimmed {
			text = escaped
		}
		return m.submit(text)
	}

	// Input is disabled while a request is in flight.
	if m.session.Pending() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.UpdateDraft(m.input.Value())
	return m, cmd
}

// submit sends text as the next turn with whatever document is uploaded now.
func (m AppModel) submit(text string) (tea.Model, tea.Cmd) {
	m.session.UpdateDraft(text)
	out, err := m.session.Submit(m.uploads.Document())
	if err != nil {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.notice = ""
	m = m.layout()

	ctx, cancel := context.WithCancel(m.sh.ctx)
	m.sh.cancelChat = cancel
	m.refreshLog()

	svc := m.deps.Service
	chat := func() tea.Msg {
		defer cancel()
		reply, err := svc.PostChat(ctx, out.Request)
		if err != nil {
			return ChatFailedMsg{Turn: out.Turn, Err: err}
		}
		return ChatReplyMsg{Turn: out.Turn, Text: reply}
	}
	return m, tea.Batch(chat, m.spinner.Tick)
}

// afterResolve re-enables input once a turn has settled.
func (m AppModel) afterResolve() (tea.Model, tea.Cmd) {
	m.sh.cancelChat = nil
	m.refreshLog()
	return m, m.input.Focus()
}

// cancelChat aborts the in-flight chat request, if any.
func (m AppModel) cancelChat() {
	if m.sh.cancelChat != nil {
		m.sh.cancelChat()
		m.sh.cancelChat = nil
	}
}

// startUpload begins an upload of the current selection.
func (m AppModel) startUpload() (tea.Cmd, error) {
	t, err := m.uploads.Begin()
	if err != nil {
		return nil, err
	}
	svc := m.deps.Service
	ctx := m.sh.ctx
	return func() tea.Msg {
		doc, err := svc.PostUpload(ctx, t.Path)
		if err != nil {
			return UploadFailedMsg{Ticket: t, Err: err}
		}
		return UploadDoneMsg{Ticket: t, Doc: doc}
	}, nil
}

func (m AppModel) openPicker() (tea.Model, tea.Cmd) {
	p := NewPickerModel(m.deps.StartDir, m.height-8)
	p.width = m.width
	m.picker = &p
	m.alert = nil
	return m, p.Init()
}

// commandEffects collects what a slash command asked the app to do.
type commandEffects struct {
	openPicker bool
	upload     tea.Cmd
	cleared    bool
	quit       bool
}

func (m AppModel) runCommand(text string) (tea.Model, tea.Cmd) {
	var fx commandEffects
	ctx := &commands.CommandContext{
		Version: m.deps.Version,
		BaseURL: m.deps.BaseURL,
		Status:  m.statusText,
		Attach: func(path string) error {
			if err := upload.Validate(path); err != nil {
				return err
			}
			m.uploads.SelectFile(path)
			return nil
		},
		OpenPicker: func() { fx.openPicker = true },
		Upload: func() error {
			cmd, err := m.startUpload()
			if err != nil {
				return errors.New(uploadErrText(err))
			}
			fx.upload = cmd
			return nil
		},
		ClearHistory: func() {
			m.cancelChat()
			m.session.Reset()
			fx.cleared = true
		},
		ExitFn: func() { fx.quit = true },
	}

	out, err := m.registry.Dispatch(ctx, text)
	m.input.Reset()
	m.session.UpdateDraft("")

	if fx.quit {
		m.cancelChat()
		m.sh.cancel()
		return m, tea.Quit
	}
	if err != nil {
		m = m.setNotice(err.Error(), true)
	} else {
		m = m.setNotice(out, false)
	}
	if fx.cleared {
		m.refreshLog()
		m.input.Focus()
	}
	if fx.openPicker {
		return m.openPicker()
	}
	return m, fx.upload
}

func (m AppModel) statusText() string {
	var b strings.Builder
	switch {
	case m.uploads.Uploading():
		fmt.Fprintf(&b, "Transcript: uploading %s", m.uploads.Selection())
	case m.uploads.State() == upload.StateUploaded:
		doc := m.uploads.Document()
		fmt.Fprintf(&b, "Transcript: %s (%d completed courses, %d requirement groups)",
			m.uploads.Selection(), len(doc.CompletedCourses), len(doc.Requirements))
	case m.uploads.State() == upload.StateSelected:
		fmt.Fprintf(&b, "Transcript: %s (not uploaded)", m.uploads.Selection())
	default:
		b.WriteString("Transcript: none")
	}
	fmt.Fprintf(&b, "\nConversation: %s, %d messages", m.session.State(), m.session.Len())
	return b.String()
}

func uploadErrText(err error) string {
	switch {
	case errors.Is(err, upload.ErrNoSelection):
		return "No transcript selected. Press ctrl+f or use /attach <path>."
	case errors.Is(err, upload.ErrUploadInFlight):
		return "An upload is already in progress."
	case errors.Is(err, upload.ErrAlreadyUploaded):
		return "Transcript already uploaded. Select a file again to replace it."
	default:
		return err.Error()
	}
}

// ghost returns the command name tab would complete to, or "".
func (m AppModel) ghost() string {
	v := m.input.Value()
	if !commands.IsCommand(v) || strings.Contains(v, " ") {
		return ""
	}
	return m.registry.BestMatch(v[1:])
}

func (m AppModel) setNotice(text string, isErr bool) AppModel {
	m.notice = strings.TrimRight(text, "\n")
	m.noticeErr = isErr
	return m.layout()
}

// noticeLines returns the notice clipped to maxNoticeLines.
func (m AppModel) noticeLines() []string {
	if m.notice == "" {
		return nil
	}
	lines := strings.Split(m.notice, "\n")
	if len(lines) > maxNoticeLines {
		lines = append(lines[:maxNoticeLines-1], "…")
	}
	return lines
}

// layout sizes the widgets: log, separator, input, hint, notice, footer.
func (m AppModel) layout() AppModel {
	m.input.Width = max(10, m.width-4)
	m.log.Width = m.width
	m.log.Height = max(1, m.height-5-len(m.noticeLines()))
	return m
}

// refreshLog re-renders the conversation into the viewport and scrolls down.
func (m *AppModel) refreshLog() {
	m.log.SetContent(m.renderLog())
	m.log.GotoBottom()
}

func (m AppModel) renderLog() string {
	msgs := m.session.Messages()
	if len(msgs) == 0 {
		return renderWelcome(m.deps.Version, m.deps.BaseURL)
	}

	var b strings.Builder
	last := len(msgs) - 1
	for i, msg := range msgs {
		switch {
		case msg.Role == session.RoleUser:
			b.WriteString(renderUserMsg(msg.Content, m.width))
		case i == last && m.session.Pending():
			b.WriteString(renderPlaceholder(msg.Content, m.spinner.View()))
		default:
			b.WriteString(renderAssistantMsg(msg.Content, m.width, m.md))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the log, input, notice and footer, or the active overlay.
func (m AppModel) View() string {
	if m.alert != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.alert.View())
	}
	if m.picker != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}

	s := Styles()
	var b strings.Builder
	b.WriteString(m.log.View())
	b.WriteString("\n")
	b.WriteString(s.Border.Render(strings.Repeat("─", max(1, m.width))))
	b.WriteString("\n")

	if m.session.Pending() {
		b.WriteString(s.Dim.Render("  " + m.spinner.View() + " waiting for the assistant (ctrl+c to cancel)"))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")

	if g := m.ghost(); g != "" {
		b.WriteString(s.Dim.Render("  tab → /" + g))
	}
	b.WriteString("\n")

	for _, l := range m.noticeLines() {
		if m.noticeErr {
			b.WriteString(s.Error.Render(l))
		} else {
			b.WriteString(s.Notice.Render(l))
		}
		b.WriteString("\n")
	}

	footer := m.footer.
		WithHealth(m.health).
		WithUpload(m.uploads.State(), m.uploads.Uploading(), m.uploads.Selection()).
		WithState(m.session.State()).
		WithWidth(m.width)
	b.WriteString(footer.View())
	return b.String()
}
