package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/normaliser"
)

// normalise is a test helper producing segmented text.
func normalise(t *testing.T, raw string) *domain.NormalisedText {
	t.Helper()
	n, err := normaliser.New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	return n
}

// legalText builds a document of numbered sentences.
func legalText(sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&b, "The tribunal recorded finding number %d against the respondent party. ", i)
	}
	return b.String()
}

// reconstruct concatenates chunks minus their declared overlap.
func reconstruct(chunks []domain.Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Content[c.OverlapPrev:])
	}
	return b.String()
}

func TestChunk_ReconstructsText(t *testing.T) {
	text := normalise(t, legalText(40))

	for _, params := range []struct{ max, overlap int }{
		{200, 20}, {50, 10}, {30, 0}, {100, 50},
	} {
		chunks, err := New().Chunk(text, "doc-1", params.max, params.overlap)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		assert.Equal(t, text.Text, reconstruct(chunks),
			"max=%d overlap=%d", params.max, params.overlap)
	}
}

func TestChunk_NoGapsBeyondOverlap(t *testing.T) {
	text := normalise(t, legalText(30))

	chunks, err := New().Chunk(text, "doc-1", 60, 15)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		// No gap: each chunk starts at or before the previous end.
		assert.LessOrEqual(t, chunks[i].Start, chunks[i-1].End)
		// Overlap is bounded by the declared window.
		overlap := chunks[i-1].End - chunks[i].Start
		assert.LessOrEqual(t, domain.EstimateTokens(text.Text[chunks[i].Start:chunks[i-1].End]), 15)
		assert.Equal(t, overlap, chunks[i].OverlapPrev)
	}
}

func TestChunk_RespectsTokenBudget(t *testing.T) {
	text := normalise(t, legalText(50))

	chunks, err := New().Chunk(text, "doc-1", 80, 10)
	require.NoError(t, err)
	for _, c := range chunks {
		assert.LessOrEqual(t, c.TokenEstimate, 80)
		assert.Equal(t, text.Text[c.Start:c.End], c.Content)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	text := normalise(t, legalText(25))

	first, err := New().Chunk(text, "doc-1", 70, 12)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := New().Chunk(text, "doc-1", 70, 12)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	chunks, err := New().Chunk(&domain.NormalisedText{}, "doc-1", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = New().Chunk(nil, "doc-1", 100, 10)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunk_LongSentenceHardSplit(t *testing.T) {
	// One sentence far beyond the budget must be split, not looped on.
	raw := strings.Repeat("covenant ", 200) + "ends."
	text := normalise(t, raw)

	chunks, err := New().Chunk(text, "doc-1", 50, 5)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for _, c := range chunks {
		assert.LessOrEqual(t, c.TokenEstimate, 50)
	}
	assert.Equal(t, text.Text, reconstruct(chunks))
}

func TestChunk_InvalidBudget(t *testing.T) {
	text := normalise(t, "One sentence.")
	_, err := New().Chunk(text, "doc-1", 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChunk_DeterministicIDs(t *testing.T) {
	text := normalise(t, legalText(10))
	chunks, err := New().Chunk(text, "doc-7", 60, 10)
	require.NoError(t, err)

	for i, c := range chunks {
		assert.Equal(t, fmt.Sprintf("doc-7:%d", i), c.ID)
		assert.Equal(t, i, c.Index)
		assert.Equal(t, "doc-7", c.DocumentID)
	}
}

func TestChunk_ScannedPDFScenario(t *testing.T) {
	// Three OCR'd pages of text, chunked at 200/20, must cover the
	// whole blob with bounded overlaps between consecutive chunks.
	var pages []string
	for p := 0; p < 3; p++ {
		pages = append(pages, legalText(30))
	}
	text := normalise(t, strings.Join(pages, "\n\n"))

	chunks, err := New().Chunk(text, "doc-1", 200, 20)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	assert.Equal(t, text.Text, reconstruct(chunks))
	for i := 1; i < len(chunks); i++ {
		overlapSpan := text.Text[chunks[i].Start:chunks[i-1].End]
		assert.LessOrEqual(t, domain.EstimateTokens(overlapSpan), 20)
	}
}
