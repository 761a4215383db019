package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider = "llm.provider"
	keyLLMModel    = "llm.model"
	keyLLMBaseURL  = "llm.base_url"
	keyLLMAPIKey   = "llm.api_key"
	keyLLMTimeout  = "llm.timeout"

	keyChunkTokens     = "pipeline.max_chunk_tokens"
	keyOverlapTokens   = "pipeline.overlap_tokens"
	keyContextTokens   = "pipeline.max_context_tokens"
	keyHistoryTokens   = "pipeline.max_history_tokens"
	keyOCRLanguage     = "pipeline.ocr_language"
	keyMinCharsPerPage = "pipeline.min_chars_per_page"
	keyOCRTimeout      = "pipeline.ocr_timeout"
	keyIdleTimeout     = "pipeline.idle_timeout"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validator   driven.LLMConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, validator driven.LLMConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validator:   validator,
	}
}

// LLM returns the configured model settings.
func (s *SettingsService) LLM() *domain.LLMSettings {
	return &domain.LLMSettings{
		Provider: s.configStore.GetString(keyLLMProvider),
		Model:    s.configStore.GetString(keyLLMModel),
		BaseURL:  s.configStore.GetString(keyLLMBaseURL),
		APIKey:   s.configStore.GetString(keyLLMAPIKey),
		Timeout:  s.getDuration(keyLLMTimeout, 0),
	}
}

// Pipeline returns the pipeline settings with defaults applied.
func (s *SettingsService) Pipeline() domain.PipelineSettings {
	defaults := domain.DefaultPipelineSettings()

	return domain.PipelineSettings{
		MaxChunkTokens: s.getInt(keyChunkTokens, defaults.MaxChunkTokens),
		OverlapTokens:  s.getInt(keyOverlapTokens, defaults.OverlapTokens),
		Budget: domain.ContextBudget{
			MaxContextTokens: s.getInt(keyContextTokens, defaults.Budget.MaxContextTokens),
			MaxHistoryTokens: s.getInt(keyHistoryTokens, defaults.Budget.MaxHistoryTokens),
		},
		OCRLanguage:        s.getString(keyOCRLanguage, defaults.OCRLanguage),
		MinCharsPerPage:    s.getInt(keyMinCharsPerPage, defaults.MinCharsPerPage),
		OCRTimeout:         s.getDuration(keyOCRTimeout, defaults.OCRTimeout),
		SessionIdleTimeout: s.getDuration(keyIdleTimeout, defaults.SessionIdleTimeout),
	}
}

// SetLLMProvider configures the model provider and persists it.
func (s *SettingsService) SetLLMProvider(provider, model, apiKey, baseURL string) error {
	switch provider {
	case domain.ProviderGemini, domain.ProviderAnthropic:
	default:
		return fmt.Errorf("%w: unknown provider %q", domain.ErrInvalidInput, provider)
	}
	if apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	if err := s.configStore.Set(keyLLMProvider, provider); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMAPIKey, apiKey); err != nil {
		return fmt.Errorf("save llm api_key: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, baseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	return nil
}

// Validate checks the persisted model settings against the provider.
func (s *SettingsService) Validate() error {
	if s.validator == nil {
		return nil
	}
	return s.validator.ValidateLLM(s.LLM())
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	str := s.configStore.GetString(key)
	if str == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return defaultVal
	}
	return d
}
