package domain

import "time"

// LLM provider tags.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// LLMSettings configures the external language-model service.
type LLMSettings struct {
	// Provider is one of the provider tags above.
	Provider string

	// APIKey authenticates against the provider.
	APIKey string

	// Model overrides the provider default model.
	Model string

	// BaseURL overrides the provider endpoint (anthropic only).
	BaseURL string

	// Timeout bounds one model call. Zero means the provider default.
	Timeout time.Duration
}

// IsConfigured reports whether the settings are usable.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// PipelineSettings configures the ingestion and context pipeline.
type PipelineSettings struct {
	// MaxChunkTokens is the chunker token budget per chunk.
	MaxChunkTokens int

	// OverlapTokens is the chunker sliding-window overlap.
	OverlapTokens int

	// Budget bounds retrieval and assembly.
	Budget ContextBudget

	// OCRLanguage is the language hint passed to the OCR engine.
	OCRLanguage string

	// MinCharsPerPage is the native-PDF density threshold: fewer
	// alphabetic characters per page than this triggers OCR fallback.
	MinCharsPerPage int

	// OCRTimeout bounds one OCR invocation.
	OCRTimeout time.Duration

	// SessionIdleTimeout evicts sessions idle longer than this.
	SessionIdleTimeout time.Duration
}

// DefaultPipelineSettings returns the pipeline defaults.
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		MaxChunkTokens: 200,
		OverlapTokens:  20,
		Budget: ContextBudget{
			MaxContextTokens: 1500,
			MaxHistoryTokens: 1000,
		},
		OCRLanguage:        "eng+hin",
		MinCharsPerPage:    50,
		OCRTimeout:         60 * time.Second,
		SessionIdleTimeout: 30 * time.Minute,
	}
}
