// Package driving provides interfaces for primary (inbound) adapters.
package driving

import (
	"context"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// UploadStatus reports the outcome of one document upload.
type UploadStatus struct {
	// DocumentID is the id assigned to the uploaded document.
	DocumentID string

	// Status is the final extraction status.
	Status domain.ExtractionStatus

	// Chunks is the number of chunks stored.
	Chunks int

	// Stats summarises the normalised text.
	Stats domain.Stats

	// KeyPhrases are the most frequent content phrases of the text.
	KeyPhrases []string

	// Language is the language detected in the extracted text before
	// any translation ("en" or "hi").
	Language string

	// Translated reports whether the stored text is an English
	// translation of a Hindi source.
	Translated bool
}

// PipelineService is the pipeline surface consumed by the presentation
// layer: upload a document, ask a question, clear a session.
type PipelineService interface {
	// Upload ingests one document into the session: extraction,
	// normalisation, chunking, storage. Ingestion errors abort this
	// document only and leave other session documents usable.
	Upload(ctx context.Context, sessionID, filename string, payload []byte) (*UploadStatus, error)

	// Ask retrieves context, assembles the feature prompt, dispatches it
	// to the model and routes the response.
	Ask(ctx context.Context, sessionID, query string, feature domain.Feature) (*domain.Answer, error)

	// Clear evicts the session and all its documents and chunks.
	Clear(ctx context.Context, sessionID string) error
}

// SessionService manages session lifecycle.
type SessionService interface {
	// Create starts a new session and returns it.
	Create(ctx context.Context) (*domain.Session, error)

	// Get retrieves a session by id.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Summarise produces a model-written summary of the session's turns.
	Summarise(ctx context.Context, id string) (string, error)

	// Sweep evicts sessions idle past the configured timeout and
	// returns the ids evicted.
	Sweep(ctx context.Context) ([]string, error)
}
