// Package chat holds the conversation state for one interactive session
// and the streaming abstraction the session loop consumes.
package chat

import "context"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation history. Messages are
// immutable once appended; insertion order is chronological.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is the conversation state for one run: the model identity and
// the ordered message history. It is exclusively owned by the session
// loop and needs no locking.
type Session struct {
	model    string
	messages []Message
}

// NewSession creates an empty session for the given model. The model
// identity never changes for the lifetime of the session.
func NewSession(model string) *Session {
	return &Session{model: model}
}

// Model returns the model identifier the session was created with.
func (s *Session) Model() string {
	return s.model
}

// Append adds a message to the end of the history.
func (s *Session) Append(msg Message) {
	s.messages = append(s.messages, msg)
}

// Clear empties the history. Calling it on an empty session is a no-op.
func (s *Session) Clear() {
	s.messages = s.messages[:0]
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	return len(s.messages)
}

// Messages returns a copy of the history so callers cannot mutate the
// session's backing slice.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Replace swaps the entire history for the given messages. Used when
// loading a saved chat. The model identity is untouched.
func (s *Session) Replace(messages []Message) {
	s.messages = append(s.messages[:0], messages...)
}

// FragmentStream is a lazy, finite, non-restartable sequence of text
// fragments making up one model response. Next returns io.EOF at the
// natural end of the stream. Close releases the underlying transport
// and must be safe to call before the stream is exhausted.
type FragmentStream interface {
	Next() (string, error)
	Close() error
}

// Backend produces a response stream for the conversation so far. It is
// the seam between the session core and a provider's API client; the
// target model is bound when the backend is created.
type Backend interface {
	Stream(ctx context.Context, messages []Message) (FragmentStream, error)
}
