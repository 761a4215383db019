package driven

import (
	"context"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// LLMService is the external language-model API, treated as a black-box
// text-completion service.
//
// Implementations map provider failures onto the domain taxonomy:
// domain.ErrRateLimited, domain.ErrAuthFailed, domain.ErrTimeout,
// domain.ErrModelError. The caller decides retry policy from those.
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// LLMConfigValidator validates model settings by pinging the provider.
// Used by the settings flow so credentials fail at configuration time,
// not on the first question.
type LLMConfigValidator interface {
	ValidateLLM(config *domain.LLMSettings) error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// System is the system instruction, when the provider supports one.
	System string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
