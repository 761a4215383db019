package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

var (
	askSession string
	askFeature string
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against a session's documents",
	Long: `Ask a question against the documents uploaded into a session.

Features:
  chat    - Conversational answer grounded in the documents (default)
  caselaw - Relevant judgments for the matter
  cost    - Litigation cost estimate with a rule-based baseline`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "session id (required)")
	askCmd.Flags().StringVarP(&askFeature, "feature", "f", "chat", "feature: chat, caselaw or cost")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	_ = askCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	feature, err := domain.ParseFeature(askFeature)
	if err != nil {
		return err
	}

	answer, err := pipelineService.Ask(cmd.Context(), askSession, args[0], feature)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAnswer(cmd, answer)
	return nil
}

func printAnswer(cmd *cobra.Command, answer *domain.Answer) {
	if answer.LastResortContext {
		cmd.Println("Note: no document passage matched the question closely; the answer")
		cmd.Println("is grounded in the first passages of the uploaded documents.")
		cmd.Println()
	}

	cmd.Println(answer.Text)

	switch answer.Feature {
	case domain.FeatureCaseLaw:
		if len(answer.Cases) > 0 {
			cmd.Println()
			cmd.Println("Citations:")
			for i, c := range answer.Cases {
				cmd.Printf("  [%d] %s", i+1, c.Title)
				if c.Year != "" {
					cmd.Printf(" (%s", c.Year)
					if c.Court != "" {
						cmd.Printf(", %s", c.Court)
					}
					cmd.Print(")")
				}
				cmd.Println()
			}
		}
	case domain.FeatureCost:
		if answer.Cost != nil && len(answer.Cost.LineItems) > 0 {
			cmd.Println()
			cmd.Printf("Baseline: ₹%.0f\n", answer.Cost.BaselineINR)
			for _, item := range answer.Cost.LineItems {
				cmd.Printf("  %-20s %s\n", item.Label+":", item.Amount)
			}
		}
	}
}
