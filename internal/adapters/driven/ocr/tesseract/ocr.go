// Package tesseract shells out to the Tesseract OCR engine.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Ensure OCR implements the interface.
var _ driven.OCRService = (*OCR)(nil)

// binary is the tesseract executable name, resolved via PATH.
const binary = "tesseract"

// OCR recognises text in page images via the tesseract binary.
type OCR struct {
	runner  driven.CommandRunner
	tempDir string
}

// New creates a tesseract OCR service using the given runner.
func New(runner driven.CommandRunner) *OCR {
	return &OCR{
		runner:  runner,
		tempDir: os.TempDir(),
	}
}

// Recognize writes the image to a temp file and runs tesseract over it,
// reading the recognised text from stdout.
func (o *OCR) Recognize(ctx context.Context, image []byte, lang string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}

	path := filepath.Join(o.tempDir, "juribot-ocr-"+uuid.New().String()+".png")
	if err := os.WriteFile(path, image, 0o600); err != nil {
		return "", fmt.Errorf("write ocr temp file: %w", err)
	}
	defer os.Remove(path)

	args := []string{path, "stdout"}
	if lang != "" {
		args = append(args, "-l", lang)
	}

	out, err := o.runner.Run(ctx, binary, args...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: ocr", domain.ErrTimeout)
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// Available probes the engine with --version.
func (o *OCR) Available(ctx context.Context) error {
	out, err := o.runner.Run(ctx, binary, "--version")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOCRUnavailable, err)
	}
	logger.Debug("OCR engine: %s", firstLine(string(out)))
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
