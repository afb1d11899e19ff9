// Package providers defines the static table of chat-completion providers
// and the request-style families they follow.
package providers

import (
	"fmt"

	apierrors "github.com/spuoss/aichat/internal/errors"
)

// Style is the request/response shape family a provider follows. It selects
// which request builder and reply extractor are used for the provider.
type Style string

const (
	// StyleOpenAI: bearer-auth JSON POST, reply at choices[0].message.content.
	StyleOpenAI Style = "openai"
	// StyleGoogle: key as query parameter, contents/parts body, reply at
	// candidates[0].content.parts[0].text.
	StyleGoogle Style = "google"
)

// Config describes one provider. Immutable after registry construction.
type Config struct {
	ID       string
	Endpoint string
	Model    string
	Style    Style
}

// Registry is a static, ordered provider table. No mutation after startup.
type Registry struct {
	entries []Config
}

// NewRegistry builds a registry from the given configs, preserving order.
func NewRegistry(entries ...Config) *Registry {
	r := &Registry{entries: make([]Config, len(entries))}
	copy(r.entries, entries)
	return r
}

// Default returns the built-in provider table. OpenAI comes first and is
// the fallback default provider.
func Default() *Registry {
	return NewRegistry(
		Config{
			ID:       "OpenAI",
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
			Style:    StyleOpenAI,
		},
		Config{
			ID:       "Gemini (Google)",
			Endpoint: "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
			Model:    "gemini-2.5-flash",
			Style:    StyleGoogle,
		},
		Config{
			ID:       "DeepSeek",
			Endpoint: "https://api.deepseek.com/chat/completions",
			Model:    "deepseek-chat",
			Style:    StyleOpenAI,
		},
		Config{
			ID:       "Perplexity",
			Endpoint: "https://api.perplexity.ai/chat/completions",
			Model:    "llama-3.1-sonar-small-128k-online",
			Style:    StyleOpenAI,
		},
	)
}

// Lookup returns the config for id. Unknown ids yield an error wrapping
// ErrUnknownProvider; callers surface it as a failed outcome, never a crash.
func (r *Registry) Lookup(id string) (Config, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Config{}, fmt.Errorf("%w: %q", apierrors.ErrUnknownProvider, id)
}

// Has reports whether id is a known provider.
func (r *Registry) Has(id string) bool {
	_, err := r.Lookup(id)
	return err == nil
}

// IDs returns provider ids in declaration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// All returns a copy of every provider config, in declaration order.
func (r *Registry) All() []Config {
	out := make([]Config, len(r.entries))
	copy(out, r.entries)
	return out
}
