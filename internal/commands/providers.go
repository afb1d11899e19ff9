package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spuoss/aichat/internal/config"
	"github.com/spuoss/aichat/internal/providers"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProviders()
	},
}

func runProviders() error {
	cfg, _ := config.LoadConfig()
	registry := providers.Default()

	for _, p := range registry.All() {
		marker := "  "
		if p.ID == cfg.DefaultProvider {
			marker = "* "
		}

		key, _ := config.APIKey(p.ID)
		keyStatus := "no key"
		if key != "" {
			keyStatus = "key configured"
		}

		fmt.Printf("%s%-18s %-36s %s (%s)\n", marker, p.ID, p.Model, keyStatus, p.Style)
	}

	fmt.Println("\n* current default; change it with 'aichat config set provider <id>'")
	return nil
}
