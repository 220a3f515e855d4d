// ABOUTME: Tests for the conversation state machine: round trips, busy guard, fallback, stale turns
// ABOUTME: Table-driven where practical; a fake Chatter stands in for the transport

package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mauromedda/academic-assistant/internal/transport"
)

func newTestSession() *Session {
	return New(Identity{UserID: "1", ConversationID: "1"})
}

type fakeChatter struct {
	reply string
	err   error
	got   []transport.ChatRequest
}

func (f *fakeChatter) PostChat(_ context.Context, req transport.ChatRequest) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

func TestNew_InitialState(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	if s.State() != StateIdle {
		t.Errorf("State = %v, want Idle", s.State())
	}
	if s.Len() != 0 || s.Draft() != "" {
		t.Errorf("len=%d draft=%q, want empty", s.Len(), s.Draft())
	}
}

func TestSubmit_AppendsUserAndPlaceholder(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.UpdateDraft("  hello  ")

	out, err := s.Submit(nil)
	if err != nil {
		t.Fatal(err)
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0] != (Message{Role: RoleUser, Content: "  hello  "}) {
		t.Errorf("user message = %+v", msgs[0])
	}
	if msgs[1] != (Message{Role: RoleAssistant, Content: PlaceholderText}) {
		t.Errorf("placeholder = %+v", msgs[1])
	}
	if s.Draft() != "" {
		t.Errorf("draft = %q, want cleared", s.Draft())
	}
	if s.State() != StateAwaitingResponse {
		t.Errorf("State = %v", s.State())
	}
	if out.Request.Message != "  hello  " || out.Request.UserID != "1" || out.Request.ConversationID != "1" {
		t.Errorf("request = %+v", out.Request)
	}
	if out.Turn != s.Turn() {
		t.Errorf("turn = %d, session turn = %d", out.Turn, s.Turn())
	}
}

func TestSubmit_EmptyDraftAllowed(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	out, err := s.Submit(nil)
	if err != nil {
		t.Fatalf("empty draft should be submittable: %v", err)
	}
	if out.Request.Message != "" {
		t.Errorf("message = %q", out.Request.Message)
	}
}

func TestSubmit_BusyGuard(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.UpdateDraft("first")
	if _, err := s.Submit(nil); err != nil {
		t.Fatal(err)
	}
	s.UpdateDraft("second")

	_, err := s.Submit(nil)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2 (no second placeholder)", s.Len())
	}
	if s.Draft() != "second" {
		t.Errorf("draft = %q, rejected submit must keep it", s.Draft())
	}
}

func TestRoundTrips_LengthIsTwiceN(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	const n = 5
	for i := range n {
		s.UpdateDraft("q")
		out, err := s.Submit(nil)
		if err != nil {
			t.Fatal(err)
		}
		if i%2 == 0 {
			err = s.Resolve(out.Turn, "answer")
		} else {
			err = s.ResolveError(out.Turn, errors.New("boom"))
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	msgs := s.Messages()
	if len(msgs) != 2*n {
		t.Fatalf("len = %d, want %d", len(msgs), 2*n)
	}
	for i, m := range msgs {
		if m.Content == PlaceholderText {
			t.Errorf("message %d still holds the placeholder", i)
		}
		wantRole := RoleUser
		if i%2 == 1 {
			wantRole = RoleAssistant
		}
		if m.Role != wantRole {
			t.Errorf("message %d role = %s, want %s", i, m.Role, wantRole)
		}
	}
}

func TestResolveError_FixedFallback(t *testing.T) {
	t.Parallel()

	causes := []error{
		errors.New("dial tcp: connection refused"),
		&transport.StatusError{Method: "POST", Path: "/chat", StatusCode: 500, Body: "trace"},
		context.DeadlineExceeded,
	}
	for _, cause := range causes {
		s := newTestSession()
		out, _ := s.Submit(nil)
		if err := s.ResolveError(out.Turn, cause); err != nil {
			t.Fatal(err)
		}
		msgs := s.Messages()
		if got := msgs[len(msgs)-1].Content; got != FallbackText {
			t.Errorf("cause %v: last = %q, want fallback", cause, got)
		}
		if s.State() != StateIdle {
			t.Errorf("cause %v: state = %v, want Idle", cause, s.State())
		}
	}
}

func TestResolve_StaleTurns(t *testing.T) {
	t.Parallel()

	t.Run("idle session", func(t *testing.T) {
		t.Parallel()
		s := newTestSession()
		if err := s.Resolve(1, "late"); !errors.Is(err, ErrStaleTurn) {
			t.Errorf("err = %v, want ErrStaleTurn", err)
		}
	})

	t.Run("double resolution", func(t *testing.T) {
		t.Parallel()
		s := newTestSession()
		out, _ := s.Submit(nil)
		if err := s.Resolve(out.Turn, "one"); err != nil {
			t.Fatal(err)
		}
		if err := s.ResolveError(out.Turn, errors.New("late")); !errors.Is(err, ErrStaleTurn) {
			t.Errorf("err = %v, want ErrStaleTurn", err)
		}
		if last := s.Messages()[1].Content; last != "one" {
			t.Errorf("last = %q, second resolution must not overwrite", last)
		}
	})

	t.Run("after reset", func(t *testing.T) {
		t.Parallel()
		s := newTestSession()
		s.UpdateDraft("q")
		old, _ := s.Submit(nil)
		s.Reset()
		if s.Len() != 0 || s.State() != StateIdle {
			t.Fatalf("reset left len=%d state=%v", s.Len(), s.State())
		}

		s.UpdateDraft("new")
		cur, err := s.Submit(nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Resolve(old.Turn, "stale"); !errors.Is(err, ErrStaleTurn) {
			t.Errorf("err = %v, want ErrStaleTurn", err)
		}
		if err := s.Resolve(cur.Turn, "fresh"); err != nil {
			t.Fatal(err)
		}
		msgs := s.Messages()
		if len(msgs) != 2 || msgs[1].Content != "fresh" {
			t.Errorf("messages = %+v", msgs)
		}
	})
}

func TestSubmit_DocumentFields(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	out, _ := s.Submit(nil)
	if out.Request.CompletedCourses == nil || len(out.Request.CompletedCourses) != 0 {
		t.Errorf("completed_courses = %#v, want empty list", out.Request.CompletedCourses)
	}
	if out.Request.Required == nil || len(out.Request.Required) != 0 {
		t.Errorf("required = %#v, want empty mapping", out.Request.Required)
	}
	_ = s.Resolve(out.Turn, "ok")

	doc := &transport.Document{
		CompletedCourses: []string{"CS161"},
		Requirements:     map[string]json.RawMessage{"Core": json.RawMessage(`["CS178"]`)},
	}
	out, _ = s.Submit(doc)
	if len(out.Request.CompletedCourses) != 1 || out.Request.CompletedCourses[0] != "CS161" {
		t.Errorf("completed_courses = %v", out.Request.CompletedCourses)
	}
	if string(out.Request.Required["Core"]) != `["CS178"]` {
		t.Errorf("required = %v", out.Request.Required)
	}

	// Mutating the document later must not change the issued request.
	doc.CompletedCourses[0] = "MUTATED"
	if out.Request.CompletedCourses[0] != "CS161" {
		t.Error("request shares backing array with the document")
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.UpdateDraft("x")
	_, _ = s.Submit(nil)
	msgs := s.Messages()
	msgs[0].Content = "changed"
	if s.Messages()[0].Content != "x" {
		t.Error("Messages leaked internal slice")
	}
}

func TestExchange(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		s := newTestSession()
		s.UpdateDraft("What courses do I need for a CS degree?")
		c := &fakeChatter{reply: "You need CS 161, CS 178..."}

		msg, err := s.Exchange(context.Background(), c, nil)
		if err != nil {
			t.Fatal(err)
		}
		if msg.Content != "You need CS 161, CS 178..." || msg.Role != RoleAssistant {
			t.Errorf("msg = %+v", msg)
		}
		if s.State() != StateIdle {
			t.Errorf("state = %v", s.State())
		}
		if len(c.got) != 1 || len(c.got[0].CompletedCourses) != 0 {
			t.Errorf("requests = %+v", c.got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		t.Parallel()
		s := newTestSession()
		c := &fakeChatter{err: errors.New("network down")}

		msg, err := s.Exchange(context.Background(), c, nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if msg.Content != FallbackText {
			t.Errorf("msg = %+v", msg)
		}
		if s.State() != StateIdle {
			t.Errorf("state = %v, subsequent submit must be permitted", s.State())
		}
		if _, err := s.Submit(nil); err != nil {
			t.Errorf("submit after failure: %v", err)
		}
	})
}

func TestState_String(t *testing.T) {
	t.Parallel()

	if StateIdle.String() != "Idle" || StateAwaitingResponse.String() != "AwaitingResponse" {
		t.Error("unexpected state labels")
	}
	if State(9).String() != "Unknown" {
		t.Error("unknown state label")
	}
}
