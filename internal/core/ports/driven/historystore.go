package driven

import (
	"context"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// HistoryStore durably records sessions and turns for later review.
// Persistence is an optional collaborator: the pipeline itself keeps
// all state it needs in memory for the session lifetime.
type HistoryStore interface {
	// SaveSession records a session's existence.
	SaveSession(ctx context.Context, sessionID string) error

	// SaveTurn appends one completed turn.
	SaveTurn(ctx context.Context, sessionID string, turn domain.Turn) error

	// Turns returns a session's recorded turns in insertion order.
	Turns(ctx context.Context, sessionID string) ([]domain.Turn, error)

	// Close releases resources.
	Close() error
}
