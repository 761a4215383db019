package extractors

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Ensure PDF implements the interface.
var _ driven.Extractor = (*PDF)(nil)

// PDF extracts text from PDF documents. It reads the native text layer
// first, then falls back to rasterize-and-OCR for pages whose native
// text is too sparse to be a real text layer (scanned pages).
type PDF struct {
	text       driven.PDFTextExtractor
	rasterizer driven.PDFRasterizer
	ocr        driven.OCRService
	settings   domain.PipelineSettings
}

// NewPDF creates a PDF extractor.
func NewPDF(
	text driven.PDFTextExtractor,
	rasterizer driven.PDFRasterizer,
	ocr driven.OCRService,
	settings domain.PipelineSettings,
) *PDF {
	return &PDF{
		text:       text,
		rasterizer: rasterizer,
		ocr:        ocr,
		settings:   settings,
	}
}

// Format returns the handled format.
func (e *PDF) Format() domain.DocumentFormat {
	return domain.FormatPDF
}

// Extract pulls text out of the PDF. Pages below the density threshold
// are re-read through OCR; native text is kept for pages where OCR is
// unavailable or fails, so partial engines degrade rather than abort.
func (e *PDF) Extract(ctx context.Context, doc *domain.Document) (string, domain.ExtractionStatus, error) {
	if doc == nil || len(doc.Raw) == 0 {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: empty pdf payload", domain.ErrCorruptDocument)
	}

	count, err := e.text.PageCount(ctx, doc.Raw)
	if err != nil {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	doc.PageCount = count

	pages, err := e.text.PageTexts(ctx, doc.Raw)
	if err != nil {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}

	status := domain.ExtractionSucceeded
	var ocrErr error
	ocrChecked := false

	for i, page := range pages {
		if ctx.Err() != nil {
			return "", domain.ExtractionFailed, ctx.Err()
		}
		if letterCount(page) >= e.settings.MinCharsPerPage {
			continue
		}

		// Sparse page: the native layer is missing or junk.
		if !ocrChecked {
			ocrChecked = true
			ocrErr = e.ocr.Available(ctx)
			if ocrErr != nil {
				logger.Warn("OCR engine unavailable, keeping native text only: %v", ocrErr)
			}
		}
		if ocrErr != nil {
			continue
		}

		status = domain.ExtractionOCRFallback
		recognised, err := e.recognizePage(ctx, doc.Raw, i+1)
		if err != nil {
			logger.Warn("OCR failed on page %d of %s: %v", i+1, doc.Filename, err)
			continue
		}
		if letterCount(recognised) > letterCount(page) {
			pages[i] = recognised
		}
	}

	text := strings.TrimSpace(strings.Join(pages, "\n\n"))
	if letterCount(text) == 0 {
		if ocrErr != nil {
			return "", domain.ExtractionFailed,
				fmt.Errorf("%w: no native text layer and %v", domain.ErrOCRUnavailable, ocrErr)
		}
		return "", domain.ExtractionFailed, domain.ErrNoTextExtracted
	}

	return text, status, nil
}

// recognizePage renders one page and runs OCR over it under the
// configured per-page timeout.
func (e *PDF) recognizePage(ctx context.Context, pdf []byte, page int) (string, error) {
	image, err := e.rasterizer.Rasterize(ctx, pdf, page)
	if err != nil {
		return "", err
	}

	octx := ctx
	if e.settings.OCRTimeout > 0 {
		var cancel context.CancelFunc
		octx, cancel = context.WithTimeout(ctx, e.settings.OCRTimeout)
		defer cancel()
	}
	return e.ocr.Recognize(octx, image, e.settings.OCRLanguage)
}

// letterCount counts alphabetic characters, the density signal that
// distinguishes a real text layer from scanner junk.
func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
