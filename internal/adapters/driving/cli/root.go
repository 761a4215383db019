// Package cli implements the cobra command tree. Commands talk to the
// core exclusively through the driving ports, wired in by main via
// SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by the composition root.
var (
	pipelineService driving.PipelineService
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	historyStore    driven.HistoryStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "juribot",
	Short: "Legal document assistant for Indian law",
	Long: `JuriBot ingests legal documents (PDF, DOCX, scans) and answers
questions about them: contextual chat, relevant case law, and
litigation cost estimates.

Documents live in a session. Upload documents into a session, then ask
questions against it; the session's context is evicted after a period
of inactivity.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the commands need.
type Services struct {
	Pipeline driving.PipelineService
	Session  driving.SessionService
	Settings driving.SettingsService
	History  driven.HistoryStore
}

// SetServices wires the core services into the command tree.
func SetServices(s *Services) {
	if s == nil {
		return
	}
	pipelineService = s.Pipeline
	sessionService = s.Session
	settingsService = s.Settings
	historyStore = s.History
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context, so
// long-running commands stop on signal cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}
