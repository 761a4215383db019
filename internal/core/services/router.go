package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Dispatch policy.
const (
	// maxAttempts bounds model call attempts per dispatch.
	maxAttempts = 3

	// backoffBase doubles per retry: 500ms, 1s.
	backoffBase = 500 * time.Millisecond

	// Rate limiting across all features of one process.
	requestsPerSecond = 1
	requestBurst      = 2
)

// Router dispatches assembled prompts to the model service with rate
// limiting and bounded retries, then shapes the raw response into the
// feature's answer structure.
type Router struct {
	llm     driven.LLMService
	limiter *rate.Limiter

	// sleep is swappable so retry tests run without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRouter creates a new response router over the given model service.
// llm may be nil when no provider is configured; Dispatch then fails
// with domain.ErrLLMUnavailable.
func NewRouter(llm driven.LLMService) *Router {
	return &Router{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		sleep:   sleepCtx,
	}
}

// Dispatch sends the prompt to the model and routes the response.
// Transient failures (timeout, rate limit, network fault) are retried
// with exponential backoff up to the attempt ceiling; auth and budget
// failures surface immediately. The returned answer records how many attempts were made.
func (r *Router) Dispatch(ctx context.Context, prompt *domain.Prompt) (*domain.Answer, error) {
	logger.Section("Dispatch")

	if r.llm == nil {
		return nil, fmt.Errorf("%w: configure a provider first", domain.ErrLLMUnavailable)
	}
	if prompt == nil || prompt.Text == "" {
		return nil, fmt.Errorf("%w: empty prompt", domain.ErrInvalidInput)
	}

	opts := driven.GenerateOptions{
		System:      prompt.System,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
	}

	var text string
	attempts := 0
	for {
		attempts++

		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		logger.Debug("Model call attempt %d/%d (%s)", attempts, maxAttempts, r.llm.ModelName())
		var err error
		text, err = r.llm.Generate(ctx, prompt.Text, opts)
		if err == nil {
			break
		}

		if !domain.Transient(err) || attempts == maxAttempts {
			logger.Warn("Dispatch failed after %d attempts: %v", attempts, err)
			return nil, fmt.Errorf("dispatch %s: %w", prompt.Feature, err)
		}

		backoff := backoffBase << (attempts - 1)
		logger.Warn("Transient model failure (attempt %d): %v, retrying in %s", attempts, err, backoff)
		if err := r.sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	answer := &domain.Answer{
		Feature:  prompt.Feature,
		Text:     strings.TrimSpace(text),
		Attempts: attempts,
	}

	switch prompt.Feature {
	case domain.FeatureCaseLaw:
		answer.Cases = parseCases(answer.Text)
	case domain.FeatureCost:
		answer.Cost = &domain.CostEstimate{
			LineItems: parseCostItems(answer.Text),
			Narrative: answer.Text,
		}
	}
	return answer, nil
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var (
	// caseItem matches a numbered case line: "1. Title (Year, Court): finding".
	caseItem = regexp.MustCompile(`(?m)^\s*\d+\.\s*(.+)$`)

	// caseMeta pulls "(1973)" or "(1973, Supreme Court)" out of a title.
	caseMeta = regexp.MustCompile(`\((\d{4})(?:,\s*([^)]+))?\)`)

	// costItem matches a labelled amount line: "Court fees: ₹5,000 - ₹10,000".
	costItem = regexp.MustCompile(`(?m)^\s*[-*]?\s*([A-Za-z][A-Za-z /]+?)\s*:\s*((?:₹|INR|Rs\.?)\s*[\d,]+.*)$`)
)

// parseCases extracts structured citations from a case-law response.
// The model's formatting varies, so parsing is tolerant: unparseable
// lines are skipped and the full text remains in Answer.Text.
func parseCases(text string) []domain.CaseReference {
	var cases []domain.CaseReference
	for _, m := range caseItem.FindAllStringSubmatch(text, -1) {
		line := strings.TrimSpace(m[1])
		if line == "" {
			continue
		}

		ref := domain.CaseReference{Title: line}
		if meta := caseMeta.FindStringSubmatchIndex(line); meta != nil {
			ref.Title = strings.TrimSpace(line[:meta[0]])
			ref.Year = line[meta[2]:meta[3]]
			if meta[4] >= 0 {
				ref.Court = strings.TrimSpace(line[meta[4]:meta[5]])
			}
			rest := strings.TrimLeft(line[meta[1]:], " -:–")
			ref.Summary = strings.TrimSpace(rest)
		} else if title, summary, ok := strings.Cut(line, ":"); ok {
			ref.Title = strings.TrimSpace(title)
			ref.Summary = strings.TrimSpace(summary)
		}
		if ref.Title != "" {
			cases = append(cases, ref)
		}
	}
	return cases
}

// parseCostItems extracts labelled INR amounts from a cost response.
func parseCostItems(text string) []domain.CostLineItem {
	var items []domain.CostLineItem
	for _, m := range costItem.FindAllStringSubmatch(text, -1) {
		items = append(items, domain.CostLineItem{
			Label:  strings.TrimSpace(m[1]),
			Amount: strings.TrimSpace(m[2]),
		})
	}
	return items
}
