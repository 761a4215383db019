package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure Image implements the interface.
var _ driven.Extractor = (*Image)(nil)

// Image extracts text from raster images (JPEG, PNG, TIFF) via OCR.
// There is no native path, so OCR availability is a hard requirement.
type Image struct {
	ocr      driven.OCRService
	settings domain.PipelineSettings
}

// NewImage creates an image extractor.
func NewImage(ocr driven.OCRService, settings domain.PipelineSettings) *Image {
	return &Image{ocr: ocr, settings: settings}
}

// Format returns the handled format.
func (e *Image) Format() domain.DocumentFormat {
	return domain.FormatImage
}

// Extract runs OCR over the image payload.
func (e *Image) Extract(ctx context.Context, doc *domain.Document) (string, domain.ExtractionStatus, error) {
	if doc == nil || len(doc.Raw) == 0 {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: empty image payload", domain.ErrCorruptDocument)
	}

	if err := e.ocr.Available(ctx); err != nil {
		return "", domain.ExtractionFailed, err
	}

	octx := ctx
	if e.settings.OCRTimeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, e.settings.OCRTimeout)
		defer cancel()
	}

	text, err := e.ocr.Recognize(octx, doc.Raw, e.settings.OCRLanguage)
	if err != nil {
		return "", domain.ExtractionFailed, err
	}

	text = strings.TrimSpace(text)
	if letterCount(text) == 0 {
		return "", domain.ExtractionFailed, domain.ErrNoTextExtracted
	}
	doc.PageCount = 1

	return text, domain.ExtractionOCRFallback, nil
}
