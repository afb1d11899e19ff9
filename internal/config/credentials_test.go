package config

import (
	"testing"
)

func TestAPIKeyName(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"OpenAI", "api_key_OpenAI"},
		{"Gemini (Google)", "api_key_Gemini (Google)"},
		{"DeepSeek", "api_key_DeepSeek"},
	}

	for _, tt := range tests {
		if got := APIKeyName(tt.provider); got != tt.want {
			t.Errorf("APIKeyName(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestEnvKeyName(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"OpenAI", "AICHAT_API_KEY_OPENAI"},
		{"Gemini (Google)", "AICHAT_API_KEY_GEMINI_GOOGLE"},
		{"DeepSeek", "AICHAT_API_KEY_DEEPSEEK"},
		{"Perplexity", "AICHAT_API_KEY_PERPLEXITY"},
	}

	for _, tt := range tests {
		if got := EnvKeyName(tt.provider); got != tt.want {
			t.Errorf("EnvKeyName(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}

func TestSetAndGetAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SetAPIKey("OpenAI", "sk-test-123"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	key, err := APIKey("OpenAI")
	if err != nil {
		t.Fatalf("APIKey failed: %v", err)
	}
	if key != "sk-test-123" {
		t.Errorf("key = %q, want sk-test-123", key)
	}
}

func TestAPIKeyMissingIsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	key, err := APIKey("DeepSeek")
	if err != nil {
		t.Fatalf("APIKey failed: %v", err)
	}
	if key != "" {
		t.Errorf("key = %q, want empty", key)
	}
}

func TestEnvOverridesStoredKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SetAPIKey("OpenAI", "stored-key"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	t.Setenv("AICHAT_API_KEY_OPENAI", "env-key")

	key, err := APIKey("OpenAI")
	if err != nil {
		t.Fatalf("APIKey failed: %v", err)
	}
	if key != "env-key" {
		t.Errorf("key = %q, want env-key (env must win)", key)
	}
}

func TestDeleteAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SetAPIKey("OpenAI", "sk-test"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := DeleteAPIKey("OpenAI"); err != nil {
		t.Fatalf("DeleteAPIKey failed: %v", err)
	}

	key, err := APIKey("OpenAI")
	if err != nil {
		t.Fatalf("APIKey failed: %v", err)
	}
	if key != "" {
		t.Errorf("key = %q, want empty after delete", key)
	}

	// Deleting again reports the missing key
	if err := DeleteAPIKey("OpenAI"); err == nil {
		t.Error("Expected error deleting a key that is not stored")
	}
}

func TestStoredKeyNamesSorted(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	for _, p := range []string{"Perplexity", "DeepSeek", "OpenAI"} {
		if err := SetAPIKey(p, "k"); err != nil {
			t.Fatalf("SetAPIKey(%s) failed: %v", p, err)
		}
	}

	names, err := StoredKeyNames()
	if err != nil {
		t.Fatalf("StoredKeyNames failed: %v", err)
	}

	want := []string{"api_key_DeepSeek", "api_key_OpenAI", "api_key_Perplexity"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "*****"},
		{"sk-abcdefghijkl", "sk-a*******ijkl"},
	}

	for _, tt := range tests {
		if got := MaskKey(tt.key); got != tt.want {
			t.Errorf("MaskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
