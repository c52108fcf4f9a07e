package advice

import (
	"context"
	"sync"
	"time"
)

// Role identifies a transcript message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat entry. Transcripts are ephemeral: they live only for
// the session and are never part of the persisted aggregate.
type Message struct {
	Role Role
	Text string
	At   time.Time
}

// Transcript accumulates a chat session with an Assistant.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	now      func() time.Time
}

// NewTranscript returns an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{now: func() time.Time { return time.Now().UTC() }}
}

// Ask records the question, obtains the assistant's answer, records it, and
// returns it.
func (t *Transcript) Ask(ctx context.Context, assistant Assistant, question, contextJSON string) string {
	t.mu.Lock()
	t.messages = append(t.messages, Message{Role: RoleUser, Text: question, At: t.now()})
	t.mu.Unlock()

	answer := assistant.Advise(ctx, question, contextJSON)

	t.mu.Lock()
	t.messages = append(t.messages, Message{Role: RoleAssistant, Text: answer, At: t.now()})
	t.mu.Unlock()
	return answer
}

// Messages returns a copy of the transcript so far.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
