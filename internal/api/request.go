package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/spuoss/aichat/internal/errors"
	"github.com/spuoss/aichat/internal/models"
	"github.com/spuoss/aichat/internal/providers"
)

// gjson paths for reply extraction, one per style.
const (
	pathOpenAIReply = "choices.0.message.content"
	pathGoogleReply = "candidates.0.content.parts.0.text"
)

// codec pairs request construction with reply extraction for one request
// style. Adding a provider style means adding one entry to styleCodecs.
type codec struct {
	build   func(cfg providers.Config, apiKey string, transcript []models.Message) (*http.Request, error)
	extract func(body []byte) (string, error)
}

var styleCodecs = map[providers.Style]codec{
	providers.StyleOpenAI: {build: buildOpenAIRequest, extract: extractOpenAIReply},
	providers.StyleGoogle: {build: buildGoogleRequest, extract: extractGoogleReply},
}

// codecFor returns the codec for a provider's style.
func codecFor(style providers.Style) (codec, error) {
	c, ok := styleCodecs[style]
	if !ok {
		return codec{}, fmt.Errorf("no codec for style %q", style)
	}
	return c, nil
}

// BuildRequest constructs the provider-specific HTTP request for a
// transcript. The transcript is a snapshot; it is never read again after
// this returns.
func BuildRequest(cfg providers.Config, apiKey string, transcript []models.Message) (*http.Request, error) {
	c, err := codecFor(cfg.Style)
	if err != nil {
		return nil, err
	}
	return c.build(cfg, apiKey, transcript)
}

// ExtractReply pulls the assistant's reply text out of a 200-status
// response body according to the provider's style.
func ExtractReply(cfg providers.Config, body []byte) (string, error) {
	c, err := codecFor(cfg.Style)
	if err != nil {
		return "", err
	}
	return c.extract(body)
}

// openAIRequest is the OpenAI-compatible chat completion body.
type openAIRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
}

func buildOpenAIRequest(cfg providers.Config, apiKey string, transcript []models.Message) (*http.Request, error) {
	payload := openAIRequest{
		Model:       cfg.Model,
		Messages:    transcript,
		Temperature: models.DefaultTemperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return req, nil
}

func extractOpenAIReply(body []byte) (string, error) {
	reply := gjson.GetBytes(body, pathOpenAIReply)
	if !reply.Exists() {
		return "", apierrors.NewParseError("response missing choices[0].message.content", pathOpenAIReply)
	}
	return reply.String(), nil
}

// googleContent is one turn in a Google-compatible generateContent body.
type googleContent struct {
	Role  string       `json:"role"`
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleRequest struct {
	Contents []googleContent `json:"contents"`
}

func buildGoogleRequest(cfg providers.Config, apiKey string, transcript []models.Message) (*http.Request, error) {
	// The Google shape has no system role: system turns are dropped,
	// assistant turns become "model", everything else becomes "user".
	var contents []googleContent
	for _, msg := range transcript {
		if msg.Role == models.RoleSystem {
			continue
		}
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, googleContent{
			Role:  role,
			Parts: []googlePart{{Text: msg.Content}},
		})
	}

	// The API rejects an empty contents array, so substitute a synthetic
	// user turn.
	if len(contents) == 0 {
		contents = append(contents, googleContent{
			Role:  "user",
			Parts: []googlePart{{Text: "Hello"}},
		})
	}

	body, err := json.Marshal(googleRequest{Contents: contents})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	// The key travels as a query parameter, not a header.
	url := cfg.Endpoint + "?key=" + apiKey

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func extractGoogleReply(body []byte) (string, error) {
	reply := gjson.GetBytes(body, pathGoogleReply)
	if !reply.Exists() {
		// Soft failure for this style only: a shape mismatch yields a
		// placeholder reply instead of an error. Intentional asymmetry
		// with the OpenAI style, preserved for compatibility.
		return models.NoTextPlaceholder, nil
	}
	return reply.String(), nil
}
