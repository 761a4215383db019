package extractors

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure Docx implements the interface.
var _ driven.Extractor = (*Docx)(nil)

// Docx extracts text from Word (OOXML) documents by reading the
// paragraph runs of word/document.xml inside the ZIP container.
type Docx struct{}

// NewDocx creates a DOCX extractor.
func NewDocx() *Docx {
	return &Docx{}
}

// Format returns the handled format.
func (e *Docx) Format() domain.DocumentFormat {
	return domain.FormatDocx
}

// Extract reads the document text. DOCX always carries a real text
// layer, so there is no OCR path for this format.
func (e *Docx) Extract(_ context.Context, doc *domain.Document) (string, domain.ExtractionStatus, error) {
	if doc == nil || len(doc.Raw) == 0 {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: empty docx payload", domain.ErrCorruptDocument)
	}

	reader, err := zip.NewReader(bytes.NewReader(doc.Raw), int64(len(doc.Raw)))
	if err != nil {
		return "", domain.ExtractionFailed,
			fmt.Errorf("%w: not a zip container: %v", domain.ErrCorruptDocument, err)
	}

	text, err := extractDocumentText(reader)
	if err != nil {
		return "", domain.ExtractionFailed, err
	}

	text = strings.TrimSpace(text)
	if letterCount(text) == 0 {
		return "", domain.ExtractionFailed, domain.ErrNoTextExtracted
	}

	return text, domain.ExtractionSucceeded, nil
}

// extractDocumentText pulls text from word/document.xml.
func extractDocumentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
		}

		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("%w: missing word/document.xml", domain.ErrCorruptDocument)
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts paragraph text from the document XML.
func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("%w: malformed document xml: %v", domain.ErrCorruptDocument, err)
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}
	return result.String(), nil
}
