package driven

import (
	"context"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// Normaliser cleans extracted text and segments it into sentences with
// entity tags. It never fails on well-formed input; severely malformed
// input yields an empty-but-valid result, since the upstream extraction
// failure is the authoritative failure signal.
type Normaliser interface {
	Normalise(ctx context.Context, raw string) (*domain.NormalisedText, error)
}

// EntityTagger extracts legal entity tags (acts, sections, dates,
// clause markers) from a piece of text. Retrieval uses it on queries so
// query and chunk tags come from the same vocabulary.
type EntityTagger interface {
	Tag(text string) []string
}

// Chunker splits normalised text into overlapping, bounded-size chunks.
// Deterministic: identical input and parameters always yield an
// identical chunk sequence.
type Chunker interface {
	Chunk(text *domain.NormalisedText, documentID string, maxTokens, overlapTokens int) ([]domain.Chunk, error)
}
