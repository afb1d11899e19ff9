package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spuoss/aichat/internal/config"
	"github.com/spuoss/aichat/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryShow(args[0])
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistoryStore()
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted conversation %s\n", args[0])
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

func openHistoryStore() (*history.Store, error) {
	configDir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare config directory: %w", err)
	}
	return history.NewStore(configDir)
}

func runHistoryList() error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}

	conversations, err := store.List()
	if err != nil {
		return err
	}

	if len(conversations) == 0 {
		fmt.Println("No saved conversations. Start one with 'aichat chat'.")
		return nil
	}

	for _, conv := range conversations {
		fmt.Printf("%s  %-24s %-12s %d messages  (%s)\n",
			conv.ID,
			truncate(conv.Title, 24),
			conv.Provider,
			len(conv.Messages),
			conv.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryShow(id string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}

	conv, err := store.Get(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s (%s)\n\n", conv.Title, conv.Provider, conv.CreatedAt.Format("2006-01-02 15:04"))
	for _, msg := range conv.Messages {
		label := strings.ToUpper(msg.Role[:1]) + msg.Role[1:]
		fmt.Printf("[%s] %s\n%s\n\n", msg.Timestamp.Format("15:04"), label, msg.Content)
	}
	return nil
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
