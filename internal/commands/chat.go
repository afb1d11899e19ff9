package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spuoss/aichat/internal/api"
	"github.com/spuoss/aichat/internal/config"
	"github.com/spuoss/aichat/internal/history"
	"github.com/spuoss/aichat/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the configured provider.

The chat maintains conversation context across messages. Use /provider to
switch providers (which starts a new conversation), /new to reset, and
'exit', 'quit', or Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if providerFlag != "" {
		cfg.DefaultProvider = providerFlag
	}
	if systemFlag != "" {
		cfg.SystemPrompt = systemFlag
	}

	client, err := api.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if !client.Registry().Has(cfg.DefaultProvider) {
		return fmt.Errorf("unknown provider %q; run 'aichat providers' to list them", cfg.DefaultProvider)
	}

	// History persistence is best effort; chat works without it
	var store *history.Store
	if configDir, err := config.EnsureConfigDir(); err == nil {
		store, _ = history.NewStore(configDir)
	}

	runner := api.NewRunner(client)
	return tui.RunChat(runner, cfg, store)
}
