// Package commands provides CLI commands for aichat.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spuoss/aichat/internal/config"
)

var (
	// Global flags
	providerFlag string
	systemFlag   string
	outputFlag   string
	fileFlag     string
	rawFlag      bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aichat [prompt]",
	Short: "Terminal chat client for LLM provider APIs",
	Long: `aichat is a terminal chat client that talks to third-party LLM
HTTP APIs (OpenAI, Gemini, DeepSeek, Perplexity) and renders replies as
formatted chat bubbles.

Examples:
  aichat chat                          Start interactive chat
  aichat "What is Go?"                 Send a single query
  aichat -p DeepSeek "Hello"           Query a specific provider
  aichat -f prompt.md                  Read prompt from file
  cat prompt.md | aichat               Read prompt from stdin
  aichat "Hello" -o response.md        Save response to file
  aichat keys set OpenAI               Configure an API key`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("aichat %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data), rawFlag)
		}

		if len(args) > 0 {
			return runQuery(args[0], rawFlag)
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&providerFlag, "provider", "p", "", "Provider to use (e.g., OpenAI, DeepSeek)")
	rootCmd.PersistentFlags().StringVarP(&systemFlag, "system", "s", "", "System prompt override")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw reply without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}

// getProvider returns the provider to use (from flag or config)
func getProvider() string {
	if providerFlag != "" {
		return providerFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return "OpenAI"
	}

	return cfg.DefaultProvider
}

// getSystemPrompt returns the system prompt to use (from flag or config)
func getSystemPrompt() string {
	if systemFlag != "" {
		return systemFlag
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return ""
	}

	return cfg.SystemPrompt
}
