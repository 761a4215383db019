package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure Rasterizer implements the interface.
var _ driven.PDFRasterizer = (*Rasterizer)(nil)

// rasterBinary is the poppler renderer, resolved via PATH.
const rasterBinary = "pdftoppm"

// rasterDPI is the render resolution. 300 DPI is the floor below which
// OCR accuracy on legal print degrades noticeably.
const rasterDPI = 300

// Rasterizer renders PDF pages to PNG images with poppler's pdftoppm.
type Rasterizer struct {
	runner  driven.CommandRunner
	tempDir string
}

// NewRasterizer creates a rasterizer using the given runner.
func NewRasterizer(runner driven.CommandRunner) *Rasterizer {
	return &Rasterizer{
		runner:  runner,
		tempDir: os.TempDir(),
	}
}

// Rasterize renders the given 1-indexed page to a PNG. pdftoppm writes
// the image to stdout when a single page is selected.
func (r *Rasterizer) Rasterize(ctx context.Context, pdf []byte, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", domain.ErrInvalidInput, page)
	}

	path := filepath.Join(r.tempDir, "juribot-raster-"+uuid.New().String()+".pdf")
	if err := os.WriteFile(path, pdf, 0o600); err != nil {
		return nil, fmt.Errorf("write pdf temp file: %w", err)
	}
	defer os.Remove(path)

	pageArg := strconv.Itoa(page)
	out, err := r.runner.Run(ctx, rasterBinary,
		"-png", "-r", strconv.Itoa(rasterDPI), "-f", pageArg, "-l", pageArg, path, "-")
	if err != nil {
		return nil, fmt.Errorf("rasterize page %d: %w", page, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("rasterize page %d: empty image", page)
	}
	return out, nil
}
