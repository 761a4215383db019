package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// translateMaxTokens is generous: a translation is roughly as long as
// its source and must not be truncated mid-document.
const translateMaxTokens = 4096

const translateSystem = "You are a legal translator. Translate the given Hindi legal text " +
	"into English. Preserve clause numbering, section references, party names, dates and " +
	"amounts exactly as they appear. Output only the translation, nothing else."

// Translator renders Hindi documents in English before chunking so
// retrieval and prompt assembly operate on one language.
type Translator struct {
	llm driven.LLMService
}

// NewTranslator creates a translator over the given model service.
func NewTranslator(llm driven.LLMService) *Translator {
	return &Translator{llm: llm}
}

// TranslateToEnglish translates Hindi text to English via the model.
func (t *Translator) TranslateToEnglish(ctx context.Context, text string) (string, error) {
	if t == nil || t.llm == nil {
		return "", fmt.Errorf("%w: translation needs a configured provider", domain.ErrLLMUnavailable)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}

	logger.Debug("Translating %d bytes of Hindi text (%s)", len(text), t.llm.ModelName())
	out, err := t.llm.Generate(ctx, text, driven.GenerateOptions{
		System:      translateSystem,
		MaxTokens:   translateMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty translation", domain.ErrModelError)
	}
	return out, nil
}
