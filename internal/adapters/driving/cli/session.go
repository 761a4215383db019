package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage sessions",
	Long:  `Create, inspect, summarise and clear document sessions.`,
}

var sessionNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new session",
	RunE:  runSessionNew,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session's documents and turns",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionSummaryCmd = &cobra.Command{
	Use:   "summary [session-id]",
	Short: "Summarise a session's conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionSummary,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear [session-id]",
	Short: "Evict a session and all its documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionClear,
}

var sessionHistoryCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "Show the persisted conversation history",
	Long: `Show the conversation history persisted for a session. History
survives session eviction; it records what was asked and answered, not
the documents themselves.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionHistory,
}

func init() {
	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionSummaryCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.AddCommand(sessionHistoryCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Create(cmd.Context())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	cmd.Println(session.ID)
	return nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	session, err := sessionService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Session %s\n", session.ID)
	cmd.Printf("  Created:     %s\n", session.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Last active: %s\n", session.LastActive.Format("2006-01-02 15:04:05"))
	cmd.Printf("  Documents:   %d\n", len(session.DocumentIDs))
	for i, id := range session.DocumentIDs {
		cmd.Printf("    [%d] %s\n", i+1, id)
	}
	cmd.Printf("  Turns:       %d\n", len(session.Turns))
	return nil
}

func runSessionSummary(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	summary, err := sessionService.Summarise(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("summarise failed: %w", err)
	}
	cmd.Println(summary)
	return nil
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	if err := pipelineService.Clear(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	cmd.Printf("Session %s cleared.\n", args[0])
	return nil
}

func runSessionHistory(cmd *cobra.Command, args []string) error {
	if historyStore == nil {
		return errors.New("history persistence not configured")
	}

	turns, err := historyStore.Turns(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(turns) == 0 {
		cmd.Println("No history for this session.")
		return nil
	}

	for _, turn := range turns {
		cmd.Printf("[%s] %s\n", turn.Feature, turn.At.Format("2006-01-02 15:04"))
		cmd.Printf("  Q: %s\n", turn.Query)
		cmd.Printf("  A: %s\n\n", turn.Response)
	}
	return nil
}
