// Package domain contains the core types and business rules of the
// ingestion and context-management pipeline.
package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentFormat identifies the declared format of an uploaded document.
type DocumentFormat int

const (
	// FormatUnknown is an unrecognised format. Extraction fails with
	// ErrUnsupportedFormat.
	FormatUnknown DocumentFormat = iota

	// FormatPDF is a PDF document, native or scanned.
	FormatPDF

	// FormatImage is a raster image (JPEG, PNG, TIFF) processed via OCR.
	FormatImage

	// FormatDocx is a Word document (OOXML).
	FormatDocx
)

// String returns the format tag.
func (f DocumentFormat) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	case FormatDocx:
		return "docx"
	default:
		return "unknown"
	}
}

// FormatForFilename infers the document format from a filename extension.
// Returns FormatUnknown for unsupported extensions.
func FormatForFilename(name string) DocumentFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF
	case ".jpg", ".jpeg", ".png", ".tif", ".tiff":
		return FormatImage
	case ".docx":
		return FormatDocx
	default:
		return FormatUnknown
	}
}

// ExtractionStatus tracks a document's progress through extraction.
type ExtractionStatus int

const (
	// ExtractionPending means extraction has not completed yet.
	ExtractionPending ExtractionStatus = iota

	// ExtractionOCRFallback means native extraction yielded nothing usable
	// and the OCR path is being (or was) taken.
	ExtractionOCRFallback

	// ExtractionSucceeded means text was produced and the document is
	// immutable from this point on.
	ExtractionSucceeded

	// ExtractionFailed means all strategies were exhausted. The failure is
	// surfaced to the caller, never swallowed.
	ExtractionFailed
)

// String returns the status tag.
func (s ExtractionStatus) String() string {
	switch s {
	case ExtractionOCRFallback:
		return "ocr_fallback"
	case ExtractionSucceeded:
		return "succeeded"
	case ExtractionFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Document represents one uploaded legal document.
// The raw payload is owned transiently and dropped once extraction
// succeeds; the document is immutable after that point.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// SessionID links to the owning session.
	SessionID string

	// Filename is the source filename as uploaded.
	Filename string

	// Format is the declared document format.
	Format DocumentFormat

	// Raw is the raw byte payload. Cleared after successful extraction.
	Raw []byte

	// Status is the extraction status.
	Status ExtractionStatus

	// Text is the normalised extracted text, populated once extraction
	// and normalisation complete.
	Text string

	// PageCount is the number of pages, when the format has pages.
	PageCount int

	// UploadedAt is when the document entered the pipeline.
	UploadedAt time.Time
}

// Stats summarises document structure after normalisation.
// Recovered behaviour: the original surfaced these counts after upload.
type Stats struct {
	Characters        int
	Words             int
	Sentences         int
	AvgSentenceLength float64
}

// StatsFor computes structure statistics for a normalised text.
func StatsFor(n *NormalisedText) Stats {
	if n == nil || n.Text == "" {
		return Stats{}
	}
	words := len(strings.Fields(n.Text))
	st := Stats{
		Characters: len(n.Text),
		Words:      words,
		Sentences:  len(n.Sentences),
	}
	if st.Sentences > 0 {
		st.AvgSentenceLength = float64(words) / float64(st.Sentences)
	}
	return st
}
