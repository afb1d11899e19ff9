package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spuoss/aichat/internal/config"
	"github.com/spuoss/aichat/internal/providers"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Supported keys:

  provider          default provider id (e.g. OpenAI, DeepSeek)
  system-prompt     system prompt used for new conversations
  markdown-style    glamour style for rendered replies (e.g. dark, light)
  copy-to-clipboard copy replies to the clipboard (true/false)
  verbose           print timing and provider details (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSet(args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func runConfigShow() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	configDir, _ := config.GetConfigDir()

	fmt.Printf("Config directory:  %s\n", configDir)
	fmt.Printf("provider:          %s\n", cfg.DefaultProvider)
	fmt.Printf("system-prompt:     %s\n", cfg.SystemPrompt)
	fmt.Printf("markdown-style:    %s\n", cfg.Markdown.Style)
	fmt.Printf("copy-to-clipboard: %t\n", cfg.CopyToClipboard)
	fmt.Printf("verbose:           %t\n", cfg.Verbose)
	return nil
}

func runConfigSet(key, value string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "provider":
		if !providers.Default().Has(value) {
			return fmt.Errorf("unknown provider %q; run 'aichat providers' to list them", value)
		}
		cfg.DefaultProvider = value
	case "system-prompt":
		cfg.SystemPrompt = value
	case "markdown-style":
		cfg.Markdown.Style = value
	case "copy-to-clipboard":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		cfg.CopyToClipboard = b
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		cfg.Verbose = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}
