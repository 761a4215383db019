package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

var watchSession string

// watchSettle is how long a new file must be quiet before ingestion.
// Copies into the watched folder arrive as a create followed by writes.
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Watch a folder and ingest new documents",
	Long: `Watch a folder and upload every new supported document into the
session as it appears. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSession, "session", "s", "", "session id (required)")
	_ = watchCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	folder := args[0]
	info, err := os.Stat(folder)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", folder)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(folder); err != nil {
		return fmt.Errorf("watch %s: %w", folder, err)
	}

	cmd.Printf("Watching %s (session %s). Ctrl-C to stop.\n", folder, watchSession)

	// Pending files and the time their last write was seen.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(watchSettle)
	defer ticker.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if domain.FormatForFilename(event.Name) == domain.FormatUnknown {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < watchSettle {
					continue
				}
				delete(pending, path)
				ingestFile(cmd.Context(), cmd, path)
			}
		}
	}
}

func ingestFile(ctx context.Context, cmd *cobra.Command, path string) {
	payload, err := os.ReadFile(path)
	if err != nil {
		cmd.Printf("  %s: FAILED: %v\n", path, err)
		return
	}

	status, err := pipelineService.Upload(ctx, watchSession, filepath.Base(path), payload)
	if err != nil {
		cmd.Printf("  %s: FAILED: %v\n", path, err)
		return
	}
	cmd.Printf("  %s: %s (%d chunks)\n", path, status.Status, status.Chunks)
}
