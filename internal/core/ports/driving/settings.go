package driving

import "github.com/custodia-labs/juribot-cli/internal/core/domain"

// SettingsService manages persisted application settings.
type SettingsService interface {
	// LLM returns the configured model settings. Unconfigured fields
	// stay zero; callers check IsConfigured.
	LLM() *domain.LLMSettings

	// Pipeline returns the pipeline settings with defaults applied for
	// anything not configured.
	Pipeline() domain.PipelineSettings

	// SetLLMProvider configures the model provider and persists it.
	// An empty model selects the provider default.
	SetLLMProvider(provider, model, apiKey, baseURL string) error

	// Validate checks the persisted model settings by pinging the
	// provider.
	Validate() error
}
