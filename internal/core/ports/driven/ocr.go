package driven

import "context"

// OCRService converts a page image into plain text.
// Treated as a black box with no guaranteed latency bound: callers pass
// a deadline context and the implementation must honour cancellation.
type OCRService interface {
	// Recognize runs OCR over one page image.
	// lang is the engine language hint (e.g. "eng+hin").
	Recognize(ctx context.Context, image []byte, lang string) (string, error)

	// Available checks that the engine can be invoked at all.
	// Returns domain.ErrOCRUnavailable when it cannot.
	Available(ctx context.Context) error
}

// PDFRasterizer renders PDF pages to images for the OCR fallback path.
type PDFRasterizer interface {
	// Rasterize renders the given 1-indexed page to an image.
	Rasterize(ctx context.Context, pdf []byte, page int) ([]byte, error)
}

// PDFTextExtractor reads the native text layer of a PDF.
type PDFTextExtractor interface {
	// PageCount returns the number of pages.
	// Returns domain.ErrCorruptDocument for unparseable payloads.
	PageCount(ctx context.Context, pdf []byte) (int, error)

	// PageTexts returns the native text of each page, in page order.
	// Pages without a text layer yield empty strings, not errors.
	PageTexts(ctx context.Context, pdf []byte) ([]string, error)
}

// CommandRunner executes an external command and returns its standard
// output. Extracted as an interface so adapters that shell out (OCR,
// rasterization) can be tested without the binaries installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
