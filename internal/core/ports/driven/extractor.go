// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// Extractor converts one document format into plain text.
// Each extractor handles exactly one DocumentFormat.
type Extractor interface {
	// Format returns the document format this extractor handles.
	Format() domain.DocumentFormat

	// Extract converts the document's raw payload into plain text.
	// It returns the resulting extraction status alongside the text so
	// the caller can record whether the OCR fallback was taken.
	//
	// Failure modes: domain.ErrCorruptDocument for unparseable payloads,
	// domain.ErrOCRUnavailable when the OCR engine is missing or errors,
	// domain.ErrNoTextExtracted when every strategy produced nothing.
	Extract(ctx context.Context, doc *domain.Document) (string, domain.ExtractionStatus, error)
}

// ExtractorRegistry selects the extractor for a document's declared
// format. Unknown formats fail with domain.ErrUnsupportedFormat.
type ExtractorRegistry interface {
	// Extract routes the document to its format's extractor.
	Extract(ctx context.Context, doc *domain.Document) (string, domain.ExtractionStatus, error)

	// Supported returns the registered formats.
	Supported() []domain.DocumentFormat
}
