package api

import (
	"sync"

	"github.com/spuoss/aichat/internal/models"
)

// Transcript is the ordered conversation history sent with each request.
// It always begins with exactly one system message and is never empty.
// The controller owns it: appends happen on send and on a successful
// outcome, and Reset replaces everything with a fresh system message.
// Workers never see the live transcript, only the snapshot taken by
// Messages at submission time.
type Transcript struct {
	mu   sync.Mutex
	msgs []models.Message
}

// NewTranscript creates a transcript seeded with a single system message.
// An empty prompt falls back to the default system prompt.
func NewTranscript(systemPrompt string) *Transcript {
	if systemPrompt == "" {
		systemPrompt = models.DefaultSystemPrompt
	}
	return &Transcript{
		msgs: []models.Message{models.SystemMessage(systemPrompt)},
	}
}

// AppendUser appends a user turn.
func (t *Transcript) AppendUser(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, models.UserMessage(text))
}

// AppendAssistant appends an assistant turn.
func (t *Transcript) AppendAssistant(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = append(t.msgs, models.AssistantMessage(text))
}

// Reset replaces the history with a single system message. Calling it twice
// in a row yields the same shape as calling it once.
func (t *Transcript) Reset(systemPrompt string) {
	if systemPrompt == "" {
		systemPrompt = models.DefaultSystemPrompt
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.msgs = []models.Message{models.SystemMessage(systemPrompt)}
}

// Messages returns a snapshot copy of the history, safe to hand to a worker.
func (t *Transcript) Messages() []models.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Message, len(t.msgs))
	copy(out, t.msgs)
	return out
}

// Len returns the number of messages, including the system message.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}
