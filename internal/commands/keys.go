package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spuoss/aichat/internal/config"
	"github.com/spuoss/aichat/internal/providers"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage provider API keys",
	Long: `Manage the per-provider API keys stored in ~/.aichat/keys.json.

Environment variables override stored keys: AICHAT_API_KEY_OPENAI,
AICHAT_API_KEY_GEMINI_GOOGLE, and so on (a .env file in the working
directory is also honored).`,
}

var keysSetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Set the API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeysSet(args[0])
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKeysList()
	},
}

var keysRemoveCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove the stored API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.DeleteAPIKey(args[0])
	},
}

func init() {
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysRemoveCmd)
}

func runKeysSet(providerID string) error {
	registry := providers.Default()
	if !registry.Has(providerID) {
		return fmt.Errorf("unknown provider %q; run 'aichat providers' to list them", providerID)
	}

	fmt.Printf("API key for %s: ", providerID)

	var key string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		// Read without echo
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		key = string(raw)
	} else {
		if _, err := fmt.Scanln(&key); err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := config.SetAPIKey(providerID, key); err != nil {
		return err
	}

	fmt.Printf("Saved key for %s\n", providerID)
	return nil
}

func runKeysList() error {
	keys, err := config.LoadKeys()
	if err != nil {
		return err
	}

	if len(keys) == 0 {
		fmt.Println("No API keys stored. Add one with 'aichat keys set <provider>'.")
		return nil
	}

	names, err := config.StoredKeyNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Printf("%-30s %s\n", name, config.MaskKey(keys[name]))
	}
	return nil
}
