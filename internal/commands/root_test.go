package commands

import (
	"testing"
)

func TestRootCommandWiring(t *testing.T) {
	if rootCmd.Use != "aichat [prompt]" {
		t.Errorf("Use = %q", rootCmd.Use)
	}

	wantSubs := []string{"chat", "providers", "keys", "config", "history"}
	for _, name := range wantSubs {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"provider", "system"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag %q", name)
		}
	}
	for _, name := range []string{"output", "file", "raw", "version"} {
		if rootCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag %q", name)
		}
	}
}

func TestGetProviderPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	providerFlag = ""
	if got := getProvider(); got != "OpenAI" {
		t.Errorf("getProvider() = %s, want OpenAI default", got)
	}

	providerFlag = "DeepSeek"
	defer func() { providerFlag = "" }()
	if got := getProvider(); got != "DeepSeek" {
		t.Errorf("getProvider() = %s, want flag value DeepSeek", got)
	}
}

func TestGetSystemPromptPrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	systemFlag = ""
	if got := getSystemPrompt(); got != "You are a helpful assistant." {
		t.Errorf("getSystemPrompt() = %q, want config default", got)
	}

	systemFlag = "Answer in French."
	defer func() { systemFlag = "" }()
	if got := getSystemPrompt(); got != "Answer in French." {
		t.Errorf("getSystemPrompt() = %q, want flag value", got)
	}
}
