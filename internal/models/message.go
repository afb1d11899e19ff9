// Package models contains data types and constants shared across aichat.
package models

// Message roles, in conversation order significance.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn in a conversation transcript.
// Immutable once created; the JSON shape matches the OpenAI-compatible wire
// format, so transcripts marshal directly into OpenAI-style request bodies.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a system-role message with the given prompt.
func SystemMessage(prompt string) Message {
	return Message{Role: RoleSystem, Content: prompt}
}

// UserMessage returns a user-role message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage returns an assistant-role message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}
