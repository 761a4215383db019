// Package pdf reads PDF payloads: native text via pdfcpu and page
// rasterization via poppler for the OCR fallback path.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.PDFTextExtractor = (*Extractor)(nil)

// Extractor reads the native text layer of a PDF with pdfcpu.
// pdfcpu works on files, so payloads round-trip through a temp dir.
type Extractor struct {
	tempDir string
}

// NewExtractor creates a PDF text extractor. When the dedicated temp
// directory cannot be created, temp files land in os.TempDir directly.
func NewExtractor() *Extractor {
	tempDir := filepath.Join(os.TempDir(), "juribot-pdf")
	if err := os.MkdirAll(tempDir, 0o700); err != nil {
		tempDir = os.TempDir()
	}
	return &Extractor{tempDir: tempDir}
}

// PageCount returns the number of pages.
func (e *Extractor) PageCount(_ context.Context, pdf []byte) (int, error) {
	path, cleanup, err := e.tempFile(pdf)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	return pdfCtx.PageCount, nil
}

// PageTexts extracts per-page content streams and decodes their text
// operators. Pages without a text layer yield empty strings.
func (e *Extractor) PageTexts(_ context.Context, pdf []byte) ([]string, error) {
	path, cleanup, err := e.tempFile(pdf)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}

	outDir := filepath.Join(e.tempDir, "content-"+uuid.New().String())
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("create extraction dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	pages := make([]string, pdfCtx.PageCount)
	if err := api.ExtractContentFile(path, outDir, nil, model.NewDefaultConfiguration()); err != nil {
		// No extractable content streams. Report empty pages so the
		// caller takes the OCR path rather than failing outright.
		return pages, nil
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("read extraction dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pageNum, ok := pageNumber(entry.Name())
		if !ok || pageNum < 1 || pageNum > len(pages) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		pages[pageNum-1] = textFromContent(content)
	}

	return pages, nil
}

// tempFile writes the payload to a uniquely named file.
func (e *Extractor) tempFile(pdf []byte) (string, func(), error) {
	path := filepath.Join(e.tempDir, uuid.New().String()+".pdf")
	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		return "", nil, fmt.Errorf("write pdf temp file: %w", err)
	}
	return path, func() { os.Remove(path) }, nil
}

// pageNumber parses the page index out of pdfcpu's extraction filenames
// ("Content_page_3.txt", "page_3.txt").
func pageNumber(name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.LastIndexByte(base, '_')
	if idx < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

var (
	// showText matches the string-showing operators Tj, ', and ".
	showText = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)\s*(?:Tj|'|")`)

	// showArray matches TJ array operands.
	showArray = regexp.MustCompile(`\[((?:[^\[\]\\]|\\.)*)\]\s*TJ`)

	// arrayString matches the string elements inside a TJ array.
	arrayString = regexp.MustCompile(`\(((?:\\.|[^\\()])*)\)`)
)

// textFromContent decodes the text-showing operators of a content
// stream into plain text, one line per text object.
func textFromContent(content []byte) string {
	s := string(content)

	var b strings.Builder
	for _, m := range showText.FindAllStringSubmatch(s, -1) {
		writeDecoded(&b, m[1])
	}
	for _, m := range showArray.FindAllStringSubmatch(s, -1) {
		for _, inner := range arrayString.FindAllStringSubmatch(m[1], -1) {
			writeDecoded(&b, inner[1])
		}
	}
	return strings.TrimSpace(b.String())
}

// writeDecoded unescapes a PDF literal string and appends it.
func writeDecoded(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r', 'f', 'b':
			b.WriteByte(' ')
		case '(', ')', '\\':
			b.WriteByte(s[i])
		default:
			// Octal escape.
			if s[i] >= '0' && s[i] <= '7' {
				end := i + 1
				for end < len(s) && end < i+3 && s[end] >= '0' && s[end] <= '7' {
					end++
				}
				if v, err := strconv.ParseUint(s[i:end], 8, 16); err == nil && v < 256 {
					b.WriteByte(byte(v))
				}
				i = end - 1
			}
		}
	}
	b.WriteByte(' ')
}
