package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestNewExtractor_FallsBackWhenTempDirBlocked(t *testing.T) {
	// A regular file squatting on the juribot-pdf path makes MkdirAll fail.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "juribot-pdf"), []byte("x"), 0o600))
	t.Setenv("TMPDIR", dir)

	e := NewExtractor()
	assert.Equal(t, os.TempDir(), e.tempDir)

	// The fallback directory is still usable for temp files.
	path, cleanup, err := e.tempFile([]byte("%PDF-1.4"))
	require.NoError(t, err)
	defer cleanup()
	assert.FileExists(t, path)
}

func TestTextFromContent(t *testing.T) {
	content := []byte(`BT /F1 12 Tf (The lease stands terminated.) Tj ET
BT [(Possession) -250 (reverts) -250 (forthwith.)] TJ ET`)

	text := textFromContent(content)

	assert.Contains(t, text, "The lease stands terminated.")
	assert.Contains(t, text, "Possession")
	assert.Contains(t, text, "forthwith.")
}

func TestTextFromContent_Escapes(t *testing.T) {
	content := []byte(`(Clause \(ii\) of the deed\n) Tj (Octal\055dash) Tj`)

	text := textFromContent(content)

	assert.Contains(t, text, "Clause (ii) of the deed")
	assert.Contains(t, text, "Octal-dash")
}

func TestTextFromContent_NoTextOperators(t *testing.T) {
	assert.Empty(t, textFromContent([]byte("0 0 612 792 re f")))
}

func TestPageNumber(t *testing.T) {
	tests := []struct {
		name string
		num  int
		ok   bool
	}{
		{"Content_page_3.txt", 3, true},
		{"page_12.txt", 12, true},
		{"readme.txt", 0, false},
		{"page_x.txt", 0, false},
	}
	for _, tt := range tests {
		num, ok := pageNumber(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.num, num, tt.name)
	}
}

func TestRasterize(t *testing.T) {
	runner := &mockRunner{output: []byte("\x89PNG fake image")}
	r := NewRasterizer(runner)
	r.tempDir = t.TempDir()

	image, err := r.Rasterize(context.Background(), []byte("%PDF-1.7"), 3)

	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG fake image"), image)
	assert.Equal(t, "pdftoppm", runner.name)
	require.Len(t, runner.args, 9)
	assert.Equal(t, "-png", runner.args[0])
	assert.Equal(t, []string{"-f", "3", "-l", "3"}, runner.args[3:7])
	assert.Equal(t, "-", runner.args[8])
}

func TestRasterize_InvalidPage(t *testing.T) {
	r := NewRasterizer(&mockRunner{})
	_, err := r.Rasterize(context.Background(), []byte("%PDF"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRasterize_RendererFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	r := NewRasterizer(runner)
	r.tempDir = t.TempDir()

	_, err := r.Rasterize(context.Background(), []byte("%PDF"), 1)
	assert.Error(t, err)
}

func TestRasterize_EmptyOutput(t *testing.T) {
	runner := &mockRunner{}
	r := NewRasterizer(runner)
	r.tempDir = t.TempDir()

	_, err := r.Rasterize(context.Background(), []byte("%PDF"), 1)
	assert.ErrorContains(t, err, "empty image")
}
