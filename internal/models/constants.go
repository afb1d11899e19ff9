package models

import "time"

// DefaultSystemPrompt seeds every fresh transcript.
const DefaultSystemPrompt = "You are a helpful assistant."

// DefaultTemperature is sent with every OpenAI-style request.
const DefaultTemperature = 0.7

// NoTextPlaceholder is returned for Google-style responses whose shape does
// not match the expected candidates structure. This soft failure applies to
// the Google style only; OpenAI-style shape mismatches are hard errors.
const NoTextPlaceholder = "(No text returned)"

// RequestTimeout bounds every outbound HTTP request. Fixed, not
// configurable; there is no user-triggered cancellation of an in-flight
// request.
const RequestTimeout = 30 * time.Second
