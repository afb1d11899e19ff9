package models

import (
	"encoding/json"
	"testing"
)

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		msg      Message
		wantRole string
	}{
		{SystemMessage("be brief"), RoleSystem},
		{UserMessage("hi"), RoleUser},
		{AssistantMessage("hello"), RoleAssistant},
	}

	for _, tt := range tests {
		if tt.msg.Role != tt.wantRole {
			t.Errorf("Role = %s, want %s", tt.msg.Role, tt.wantRole)
		}
	}
}

func TestMessageJSONShape(t *testing.T) {
	data, err := json.Marshal(UserMessage("hi"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"role":"user","content":"hi"}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}
}

func TestDefaults(t *testing.T) {
	if DefaultSystemPrompt != "You are a helpful assistant." {
		t.Errorf("DefaultSystemPrompt = %q", DefaultSystemPrompt)
	}
	if DefaultTemperature != 0.7 {
		t.Errorf("DefaultTemperature = %v, want 0.7", DefaultTemperature)
	}
	if NoTextPlaceholder != "(No text returned)" {
		t.Errorf("NoTextPlaceholder = %q", NoTextPlaceholder)
	}
	if RequestTimeout.Seconds() != 30 {
		t.Errorf("RequestTimeout = %v, want 30s", RequestTimeout)
	}
}
