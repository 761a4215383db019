package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the model provider and pipeline options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the model provider.`,
	RunE:  runSettingsWizard,
}

// llmProviders are the selectable providers with their default models.
var llmProviders = []struct {
	tag         string
	description string
	model       string
}{
	{domain.ProviderGemini, "Google Gemini (cloud API)", "gemini-1.5-flash-latest"},
	{domain.ProviderAnthropic, "Anthropic Claude (cloud API)", "claude-sonnet-4-5"},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	llm := settingsService.LLM()
	pipeline := settingsService.Pipeline()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Model]")
	if llm.Provider != "" {
		cmd.Printf("  Provider: %s\n", llm.Provider)
		cmd.Printf("  Model: %s\n", llm.Model)
		if llm.BaseURL != "" {
			cmd.Printf("  Base URL: %s\n", llm.BaseURL)
		}
		if llm.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(llm.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !llm.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Pipeline]")
	cmd.Printf("  Chunk tokens: %d (overlap %d)\n", pipeline.MaxChunkTokens, pipeline.OverlapTokens)
	cmd.Printf("  Context budget: %d tokens (history %d)\n",
		pipeline.Budget.MaxContextTokens, pipeline.Budget.MaxHistoryTokens)
	cmd.Printf("  OCR language: %s\n", pipeline.OCRLanguage)
	cmd.Printf("  Session idle timeout: %s\n", pipeline.SessionIdleTimeout)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'juribot settings wizard' to fix configuration issues.")
	} else if llm.IsConfigured() {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("JuriBot Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Model Provider")
	for i, p := range llmProviders {
		cmd.Printf("  %d. %s\n", i+1, p.description)
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(llmProviders), 1)
	selected := llmProviders[idx-1]

	cmd.Printf("Enter model name [%s]: ", selected.model)
	model := readLine(reader)
	if model == "" {
		model = selected.model
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required for this provider")
	}

	if err := settingsService.SetLLMProvider(selected.tag, model, apiKey, ""); err != nil {
		return fmt.Errorf("failed to configure provider: %w", err)
	}

	// Validate by pinging the provider so bad credentials fail now, not
	// on the first question.
	cmd.Print("Validating configuration... ")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("provider validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Model provider configured: %s (%s)\n", selected.description, model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
