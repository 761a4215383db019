package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Per-feature generation parameters.
const (
	answerMaxTokens = 1024

	chatTemperature     = 0.7
	analysisTemperature = 0.2
)

// Feature system instructions.
const (
	chatSystem = "You are JuriBot, a legal assistant for Indian law. Answer strictly " +
		"from the provided document context. When the context does not contain the " +
		"answer, say so plainly instead of speculating. Cite the clause or section " +
		"you rely on. This is legal information, not legal advice."

	caselawSystem = "You are JuriBot, a legal research assistant for Indian law. " +
		"Identify judgments relevant to the user's matter and the provided context. " +
		"Present each case as a numbered item: title, year, court, and a one-line " +
		"key finding. Only cite real, well-known cases; never invent citations."

	costSystem = "You are JuriBot, a legal cost estimator for proceedings in India. " +
		"Starting from the rule-based baseline provided, break the estimate into " +
		"labelled components (court fees, lawyer fees, documentation, incidental) " +
		"with amounts in INR, then give a realistic total range. State clearly that " +
		"actual costs vary by forum and counsel."
)

// Assembler builds budget-bounded prompts from retrieved context,
// trimmed history and the query.
type Assembler struct {
	budget domain.ContextBudget
}

// NewAssembler creates a new prompt assembler.
func NewAssembler(budget domain.ContextBudget) *Assembler {
	return &Assembler{budget: budget}
}

// Assemble builds the feature prompt. The retrieved context is already
// within the context budget; history is trimmed oldest-first to the
// history budget. extra carries feature-specific preamble lines (the
// cost baseline) and may be empty.
//
// Returns domain.ErrBudgetExceeded when context exists but even a
// single retrieved chunk plus the query cannot fit, which indicates
// misconfigured budgets rather than a bad query.
func (a *Assembler) Assemble(
	feature domain.Feature,
	retrieval *domain.RetrievalResult,
	session *domain.Session,
	extra string,
) (*domain.Prompt, error) {
	logger.Section("Prompt Assembly")

	if retrieval == nil || strings.TrimSpace(retrieval.Query) == "" {
		return nil, fmt.Errorf("%w: empty retrieval", domain.ErrInvalidInput)
	}
	query := retrieval.Query

	if len(retrieval.Chunks) > 0 {
		smallest := retrieval.Chunks[0].Chunk.TokenEstimate
		for _, c := range retrieval.Chunks[1:] {
			if c.Chunk.TokenEstimate < smallest {
				smallest = c.Chunk.TokenEstimate
			}
		}
		if domain.EstimateTokens(query)+smallest > a.budget.MaxContextTokens+a.budget.MaxHistoryTokens {
			return nil, fmt.Errorf("%w: query %d tokens, smallest chunk %d tokens",
				domain.ErrBudgetExceeded, domain.EstimateTokens(query), smallest)
		}
	}

	var b strings.Builder
	if extra != "" {
		b.WriteString(extra)
		b.WriteString("\n\n")
	}
	if ctx := retrieval.ContextText(); ctx != "" {
		b.WriteString("Document context:\n")
		b.WriteString(ctx)
		b.WriteString("\n\n")
	}
	if history := a.trimmedHistory(session); history != "" {
		b.WriteString("Conversation so far:\n")
		b.WriteString(history)
		b.WriteString("\n\n")
	}
	b.WriteString("Question:\n")
	b.WriteString(query)

	prompt := &domain.Prompt{
		Feature:     feature,
		System:      systemFor(feature),
		Text:        b.String(),
		MaxTokens:   answerMaxTokens,
		Temperature: temperatureFor(feature),
	}
	logger.Debug("Assembled %s prompt: %d tokens estimated",
		feature, domain.EstimateTokens(prompt.Text))
	return prompt, nil
}

// trimmedHistory renders the session's turns newest-last, dropping the
// oldest turns until the rendering fits the history budget. The newest
// turn survives trimming whole or not at all; truncating mid-turn would
// misquote the conversation.
func (a *Assembler) trimmedHistory(session *domain.Session) string {
	if session == nil || len(session.Turns) == 0 {
		return ""
	}

	var kept []string
	total := 0
	for i := len(session.Turns) - 1; i >= 0; i-- {
		turn := session.Turns[i]
		rendered := fmt.Sprintf("User: %s\nAssistant: %s", turn.Query, turn.Response)
		tokens := domain.EstimateTokens(rendered)
		if total+tokens > a.budget.MaxHistoryTokens {
			break
		}
		kept = append([]string{rendered}, kept...)
		total += tokens
	}

	if dropped := len(session.Turns) - len(kept); dropped > 0 {
		logger.Debug("History trimmed: dropped %d oldest turns", dropped)
	}
	return strings.Join(kept, "\n\n")
}

// systemFor returns the feature's system instruction.
func systemFor(feature domain.Feature) string {
	switch feature {
	case domain.FeatureCaseLaw:
		return caselawSystem
	case domain.FeatureCost:
		return costSystem
	default:
		return chatSystem
	}
}

// temperatureFor returns the feature's sampling temperature. Research
// and cost answers stay near-deterministic; chat is conversational.
func temperatureFor(feature domain.Feature) float64 {
	if feature == domain.FeatureChat {
		return chatTemperature
	}
	return analysisTemperature
}
