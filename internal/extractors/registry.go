// Package extractors converts uploaded documents into plain text, with
// one extractor per document format and an OCR fallback for scanned
// material.
package extractors

import (
	"context"
	"fmt"
	"sort"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry routes documents to the extractor registered for their
// declared format.
type Registry struct {
	byFormat map[domain.DocumentFormat]driven.Extractor
}

// NewRegistry creates a registry over the given extractors. A later
// extractor for an already-registered format replaces the earlier one.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	byFormat := make(map[domain.DocumentFormat]driven.Extractor, len(extractors))
	for _, e := range extractors {
		byFormat[e.Format()] = e
	}
	return &Registry{byFormat: byFormat}
}

// Extract routes the document to its format's extractor.
func (r *Registry) Extract(ctx context.Context, doc *domain.Document) (string, domain.ExtractionStatus, error) {
	if doc == nil {
		return "", domain.ExtractionFailed, domain.ErrInvalidInput
	}

	extractor, ok := r.byFormat[doc.Format]
	if !ok {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, doc.Format)
	}

	logger.Debug("Extracting %s (%s, %d bytes)", doc.Filename, doc.Format, len(doc.Raw))
	return extractor.Extract(ctx, doc)
}

// Supported returns the registered formats in stable order.
func (r *Registry) Supported() []domain.DocumentFormat {
	formats := make([]domain.DocumentFormat, 0, len(r.byFormat))
	for f := range r.byFormat {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
