// ABOUTME: Wire types for the assistant service: chat request/response, uploaded document, health
// ABOUTME: Hand-kept easyjson codecs (empty defaults, raw requirement values); json tags mirror the wire names

package transport

import (
	"encoding/json"
	"sort"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message          string                     `json:"message"`
	UserID           string                     `json:"user_id"`
	ConversationID   string                     `json:"conversation_id"`
	CompletedCourses []string                   `json:"completed_courses"`
	Required         map[string]json.RawMessage `json:"required"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// Document is the structured data the service extracts from an uploaded
// transcript. Requirement details are kept as raw JSON and forwarded verbatim.
type Document struct {
	CompletedCourses []string                   `json:"completed_courses"`
	Requirements     map[string]json.RawMessage `json:"requirements"`
}

// HealthStatus is the body returned by GET /health.
type HealthStatus struct {
	Status           string `json:"status"`
	OpenAIConfigured bool   `json:"openai_configured"`
}

// Healthy reports whether the service declared itself healthy.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

// MarshalEasyJSON writes the request with empty defaults for absent document fields.
func (r ChatRequest) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"message":`)
	out.String(r.Message)
	out.RawString(`,"user_id":`)
	out.String(r.UserID)
	out.RawString(`,"conversation_id":`)
	out.String(r.ConversationID)
	out.RawString(`,"completed_courses":`)
	writeStrings(out, r.CompletedCourses)
	out.RawString(`,"required":`)
	writeRawMap(out, r.Required)
	out.RawByte('}')
}

// UnmarshalEasyJSON reads a request body; used by test servers.
func (r *ChatRequest) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "message":
			r.Message = in.String()
		case "user_id":
			r.UserID = in.String()
		case "conversation_id":
			r.ConversationID = in.String()
		case "completed_courses":
			r.CompletedCourses = readStrings(in)
		case "required":
			r.Required = readRawMap(in)
		default:
			in.SkipRecursive()
		}
	})
}

// MarshalEasyJSON writes the response body; used by test servers.
func (r ChatResponse) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"response":`)
	out.String(r.Response)
	out.RawByte('}')
}

// UnmarshalEasyJSON reads a chat response.
func (r *ChatResponse) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "response":
			r.Response = in.String()
		default:
			in.SkipRecursive()
		}
	})
}

// MarshalEasyJSON writes the document in the upload response shape.
func (d Document) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"completed_courses":`)
	writeStrings(out, d.CompletedCourses)
	out.RawString(`,"requirements":`)
	writeRawMap(out, d.Requirements)
	out.RawByte('}')
}

// UnmarshalEasyJSON reads an upload response object.
func (d *Document) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "completed_courses":
			d.CompletedCourses = readStrings(in)
		case "requirements":
			d.Requirements = readRawMap(in)
		default:
			in.SkipRecursive()
		}
	})
}

// MarshalEasyJSON writes the health body; used by test servers.
func (h HealthStatus) MarshalEasyJSON(out *jwriter.Writer) {
	out.RawString(`{"status":`)
	out.String(h.Status)
	out.RawString(`,"openai_configured":`)
	out.Bool(h.OpenAIConfigured)
	out.RawByte('}')
}

// UnmarshalEasyJSON reads a health response.
func (h *HealthStatus) UnmarshalEasyJSON(in *jlexer.Lexer) {
	decodeObject(in, func(key string) {
		switch key {
		case "status":
			h.Status = in.String()
		case "openai_configured":
			h.OpenAIConfigured = in.Bool()
		default:
			in.SkipRecursive()
		}
	})
}

// decodeObject walks a JSON object, calling field for every non-null key.
// A top-level null leaves the target untouched.
func decodeObject(in *jlexer.Lexer, field func(key string)) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		field(key)
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func readStrings(in *jlexer.Lexer) []string {
	out := []string{}
	in.Delim('[')
	for !in.IsDelim(']') {
		out = append(out, in.String())
		in.WantComma()
	}
	in.Delim(']')
	return out
}

func readRawMap(in *jlexer.Lexer) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage)
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.String()
		in.WantColon()
		raw := in.Raw()
		if in.Ok() {
			out[key] = append(json.RawMessage(nil), raw...)
		}
		in.WantComma()
	}
	in.Delim('}')
	return out
}

func writeStrings(out *jwriter.Writer, ss []string) {
	out.RawByte('[')
	for i, s := range ss {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(s)
	}
	out.RawByte(']')
}

// writeRawMap writes m with sorted keys so bodies are deterministic.
func writeRawMap(out *jwriter.Writer, m map[string]json.RawMessage) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out.RawByte('{')
	for i, k := range keys {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(k)
		out.RawByte(':')
		out.Raw(m[k], nil)
	}
	out.RawByte('}')
}
