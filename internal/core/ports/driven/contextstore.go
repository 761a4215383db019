package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// ContextStore owns documents and their chunk sequences for the
// lifetime of a session. Retrieval and assembly only read this state.
//
// Put is atomic: a concurrent read during an in-flight Put never
// observes a partial chunk set for that document. An abandoned
// ingestion either completes the Put fully or leaves no trace.
type ContextStore interface {
	// Put stores a document and its full chunk sequence atomically and
	// updates the entity index.
	Put(ctx context.Context, sessionID string, doc *domain.Document, chunks []domain.Chunk) error

	// Chunks returns chunks for a session in document-then-sequence
	// order. documentID filters to one document when non-empty.
	Chunks(ctx context.Context, sessionID, documentID string) ([]domain.Chunk, error)

	// Documents returns the session's documents in upload order.
	Documents(ctx context.Context, sessionID string) ([]domain.Document, error)

	// ChunkIDsForEntity returns the ids of chunks tagged with the given
	// entity, from the derived entity index.
	ChunkIDsForEntity(ctx context.Context, sessionID, entity string) ([]string, error)

	// RemoveSession drops a session's documents, chunks and index.
	RemoveSession(ctx context.Context, sessionID string) error

	// RemoveIdle drops every session whose last Put or read is older
	// than the cutoff, and returns the ids removed.
	RemoveIdle(ctx context.Context, cutoff time.Time) ([]string, error)
}

// SessionStore holds session records (turns, attached document ids).
type SessionStore interface {
	// Save stores or updates a session.
	Save(ctx context.Context, s *domain.Session) error

	// Get retrieves a session by id. Returns domain.ErrNotFound when
	// the session does not exist.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// IdleBefore returns ids of sessions last active before the cutoff.
	IdleBefore(ctx context.Context, cutoff time.Time) ([]string, error)
}
