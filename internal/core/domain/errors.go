package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion errors. Each aborts processing of one document only and
	// is surfaced with the document id and the failing stage.

	// ErrUnsupportedFormat indicates the declared format is not one of
	// the supported tags.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument indicates the payload could not be parsed.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrOCRUnavailable indicates the OCR engine is missing or errored.
	ErrOCRUnavailable = errors.New("OCR engine unavailable")

	// ErrNoTextExtracted indicates all strategies were exhausted with no
	// extractable text.
	ErrNoTextExtracted = errors.New("no text extracted")

	// Assembly errors.

	// ErrBudgetExceeded indicates even a single retrieved chunk plus the
	// current query cannot fit the budget. Misconfiguration; never retried.
	ErrBudgetExceeded = errors.New("context budget exceeded")

	// External call errors. Timeout, RateLimited and Network are
	// transient and retried with bounded backoff; AuthFailed is fatal
	// and surfaced immediately.

	// ErrTimeout indicates an external call exceeded its deadline.
	ErrTimeout = errors.New("timeout")

	// ErrRateLimited indicates the model API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrNetwork indicates a transport-level fault reaching the model
	// API: connection refused or reset, DNS failure.
	ErrNetwork = errors.New("network failure")

	// ErrAuthFailed indicates authentication or configuration failure.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrModelError indicates a malformed request or model-side failure.
	ErrModelError = errors.New("model error")

	// ErrLLMUnavailable indicates no model service is configured or the
	// configured one is unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)

// Transient reports whether an external-call error may be retried.
// AuthFailed and BudgetExceeded are never transient.
func Transient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNetwork)
}
