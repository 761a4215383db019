package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var uploadSession string

var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload documents into a session",
	Long: `Upload one or more documents into a session. Supported formats:
PDF (native or scanned), DOCX, and images (PNG, JPG, TIFF).

A failed document is reported and skipped; the remaining documents are
still ingested.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadSession, "session", "s", "", "session id (required)")
	_ = uploadCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	var failed int
	for _, path := range args {
		payload, err := os.ReadFile(path)
		if err != nil {
			cmd.Printf("  %s: FAILED: %v\n", path, err)
			failed++
			continue
		}

		status, err := pipelineService.Upload(cmd.Context(), uploadSession, filepath.Base(path), payload)
		if err != nil {
			cmd.Printf("  %s: FAILED: %v\n", path, err)
			failed++
			continue
		}

		note := ""
		if status.Translated {
			note = ", translated from Hindi"
		}
		cmd.Printf("  %s: %s (%d chunks, %d words, %d sentences%s)\n",
			path, status.Status, status.Chunks, status.Stats.Words, status.Stats.Sentences, note)
		if len(status.KeyPhrases) > 0 {
			cmd.Printf("    key phrases: %s\n", strings.Join(status.KeyPhrases, "; "))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(args))
	}
	return nil
}
