// ABOUTME: Conversation state machine: ordered message log plus Idle/AwaitingResponse mode
// ABOUTME: Owns the placeholder swap and the at-most-one-in-flight rule for chat requests

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mauromedda/academic-assistant/internal/log"
	"github.com/mauromedda/academic-assistant/internal/transport"
)

// Fixed user-facing texts.
const (
	PlaceholderText = "Assistant is thinking..."
	FallbackText    = "Sorry, I've encountered an error. Please try again."
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the conversation log.
type Message struct {
	Role    Role
	Content string
}

// State is the request mode of the session.
type State int

const (
	// StateIdle means no chat request is in flight.
	StateIdle State = iota
	// StateAwaitingResponse means exactly one chat request is in flight.
	StateAwaitingResponse
)

// String returns the human-readable label for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingResponse:
		return "AwaitingResponse"
	default:
		return "Unknown"
	}
}

var (
	// ErrBusy is returned by Submit while a request is in flight.
	ErrBusy = errors.New("a chat request is already in flight")
	// ErrStaleTurn is returned when a resolution does not match the outstanding turn.
	ErrStaleTurn = errors.New("resolution for a stale turn")
)

// Identity holds the fixed identifiers sent with every request.
type Identity struct {
	UserID         string
	ConversationID string
}

// Outbound is the request produced by Submit. Turn must be passed back to
// Resolve or ResolveError.
type Outbound struct {
	Turn    uint64
	Request transport.ChatRequest
}

// Chatter sends one chat request. *transport.Client satisfies it.
type Chatter interface {
	PostChat(ctx context.Context, req transport.ChatRequest) (string, error)
}

// Session is the in-memory conversation. It is not safe for concurrent use:
// drive it from a single goroutine such as the Bubble Tea Update loop.
type Session struct {
	identity Identity
	messages []Message
	draft    string
	pending  bool
	turn     uint64
}

// New creates an idle session with an empty log and draft.
func New(id Identity) *Session {
	return &Session{identity: id}
}

// Identity returns the identifiers attached to requests.
func (s *Session) Identity() Identity {
	return s.identity
}

// UpdateDraft replaces the draft verbatim.
func (s *Session) UpdateDraft(text string) {
	s.draft = text
}

// Draft returns the current draft.
func (s *Session) Draft() string {
	return s.draft
}

// State returns Idle or AwaitingResponse.
func (s *Session) State() State {
	if s.pending {
		return StateAwaitingResponse
	}
	return StateIdle
}

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool {
	return s.pending
}

// Turn returns the number of the most recent submission.
func (s *Session) Turn() uint64 {
	return s.turn
}

// Len returns the number of messages in the log.
func (s *Session) Len() int {
	return len(s.messages)
}

// Messages returns a copy of the log.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Submit appends the draft as a user message followed by the placeholder,
// clears the draft and enters AwaitingResponse. doc is read now, so the
// request carries whatever document is current at submission time; nil
// yields an empty course list and an empty requirements mapping.
func (s *Session) Submit(doc *transport.Document) (Outbound, error) {
	if s.pending {
		return Outbound{}, ErrBusy
	}

	text := s.draft
	s.messages = append(s.messages,
		Message{Role: RoleUser, Content: text},
		Message{Role: RoleAssistant, Content: PlaceholderText},
	)
	s.draft = ""
	s.pending = true
	s.turn++

	req := transport.ChatRequest{
		Message:          text,
		UserID:           s.identity.UserID,
		ConversationID:   s.identity.ConversationID,
		CompletedCourses: []string{},
		Required:         map[string]json.RawMessage{},
	}
	if doc != nil {
		req.CompletedCourses = append(req.CompletedCourses, doc.CompletedCourses...)
		for k, v := range doc.Requirements {
			req.Required[k] = v
		}
	}

	log.Debug("session: turn %d submitted (%d courses, %d requirement groups)",
		s.turn, len(req.CompletedCourses), len(req.Required))
	return Outbound{Turn: s.turn, Request: req}, nil
}

// Resolve replaces the placeholder with the server reply and returns to Idle.
func (s *Session) Resolve(turn uint64, reply string) error {
	if err := s.checkTurn(turn); err != nil {
		return err
	}
	s.replacePlaceholder(reply)
	return nil
}

// ResolveError replaces the placeholder with FallbackText and returns to
// Idle. The cause is logged, never shown.
func (s *Session) ResolveError(turn uint64, cause error) error {
	if err := s.checkTurn(turn); err != nil {
		return err
	}
	log.Error("session: turn %d failed: %v", turn, cause)
	s.replacePlaceholder(FallbackText)
	return nil
}

// Reset clears the log and the draft. A request still in flight becomes stale.
func (s *Session) Reset() {
	s.messages = nil
	s.draft = ""
	s.pending = false
}

// Exchange runs one full round trip synchronously: Submit, send, resolve.
// It returns the final assistant message. A transport failure is recovered
// into FallbackText and also returned so callers can set an exit status.
func (s *Session) Exchange(ctx context.Context, c Chatter, doc *transport.Document) (Message, error) {
	out, err := s.Submit(doc)
	if err != nil {
		return Message{}, err
	}

	reply, sendErr := c.PostChat(ctx, out.Request)
	if sendErr != nil {
		if err := s.ResolveError(out.Turn, sendErr); err != nil {
			return Message{}, err
		}
		return s.messages[len(s.messages)-1], fmt.Errorf("chat request: %w", sendErr)
	}
	if err := s.Resolve(out.Turn, reply); err != nil {
		return Message{}, err
	}
	return s.messages[len(s.messages)-1], nil
}

func (s *Session) checkTurn(turn uint64) error {
	if !s.pending || turn != s.turn {
		log.Debug("session: ignoring resolution for turn %d (current %d, pending %v)", turn, s.turn, s.pending)
		return ErrStaleTurn
	}
	return nil
}

// replacePlaceholder swaps the trailing placeholder for content.
func (s *Session) replacePlaceholder(content string) {
	s.messages[len(s.messages)-1] = Message{Role: RoleAssistant, Content: content}
	s.pending = false
}
