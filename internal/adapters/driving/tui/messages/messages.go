// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// AnswerReceived carries one routed answer back to the model.
type AnswerReceived struct {
	Answer *domain.Answer
	Err    error
}

// SessionCreated carries the id of a freshly created session.
type SessionCreated struct {
	SessionID string
	Err       error
}
