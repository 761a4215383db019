// Package chunker splits normalised text into overlapping,
// bounded-size chunks sized to the model's context budget.
package chunker

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure Chunker implements the interface.
var _ driven.Chunker = (*Chunker)(nil)

// DefaultMaxTokens is the default chunk token budget.
const DefaultMaxTokens = 200

// DefaultOverlapTokens is the default sliding-window overlap.
const DefaultOverlapTokens = 20

// Chunker is a sentence-greedy sliding-window chunker. It is entirely
// deterministic: chunk ids derive from the document id and index, so
// identical input and parameters yield a byte-identical sequence.
type Chunker struct{}

// New creates a new chunker.
func New() *Chunker {
	return &Chunker{}
}

// unit is a span of text that is never split further: a sentence, or a
// hard-split piece of a sentence longer than the chunk budget.
type unit struct {
	start, end int
	entities   []string
}

// Chunk splits the normalised text at sentence boundaries, greedily
// packing sentences until the next one would exceed maxTokens, then
// starting the next chunk overlapTokens worth of trailing content back
// from the boundary. A single sentence longer than maxTokens is
// hard-split at the token boundary. Empty input yields an empty
// sequence, not an error.
func (c *Chunker) Chunk(
	text *domain.NormalisedText, documentID string, maxTokens, overlapTokens int,
) ([]domain.Chunk, error) {
	if maxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive", domain.ErrInvalidInput)
	}
	if overlapTokens < 0 {
		overlapTokens = 0
	}
	// Overlap must leave room for new content in every chunk.
	if overlapTokens >= maxTokens {
		overlapTokens = maxTokens / 4
	}

	if text == nil || text.Text == "" {
		return nil, nil
	}

	units := buildUnits(text, maxTokens)
	if len(units) == 0 {
		return nil, nil
	}

	var chunks []domain.Chunk
	start := 0 // index of the first unit of the current chunk

	for start < len(units) {
		end := start + 1
		for end < len(units) {
			span := text.Text[units[start].start:units[end].end]
			if domain.EstimateTokens(span) > maxTokens {
				break
			}
			end++
		}

		chunks = append(chunks, newChunk(text.Text, documentID, len(chunks), units[start:end]))

		if end == len(units) {
			break
		}

		// Slide the window back over trailing units worth at most
		// overlapTokens, but always past the previous chunk's first
		// unit so the sequence makes progress.
		next := end
		for next > start+1 {
			span := text.Text[units[next-1].start:units[end-1].end]
			if domain.EstimateTokens(span) > overlapTokens {
				break
			}
			next--
		}
		start = next
	}

	// Record the byte overlap between consecutive chunks.
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start < chunks[i-1].End {
			chunks[i].OverlapPrev = chunks[i-1].End - chunks[i].Start
		}
	}

	return chunks, nil
}

// buildUnits converts sentence spans into chunking units, hard-splitting
// any sentence whose token estimate exceeds the chunk budget.
func buildUnits(text *domain.NormalisedText, maxTokens int) []unit {
	maxBytes := domain.TokensToChars(maxTokens)

	var units []unit
	for _, s := range text.Sentences {
		if domain.EstimateTokens(text.Text[s.Start:s.End]) <= maxTokens {
			units = append(units, unit{start: s.Start, end: s.End, entities: s.Entities})
			continue
		}

		// Hard split at the token boundary, backing up to a rune
		// boundary so spans stay valid UTF-8.
		for start := s.Start; start < s.End; {
			end := start + maxBytes
			if end >= s.End {
				end = s.End
			} else {
				for end > start && !utf8.RuneStart(text.Text[end]) {
					end--
				}
				if end == start {
					end = start + maxBytes // degenerate, force progress
				}
			}
			units = append(units, unit{start: start, end: end, entities: s.Entities})
			start = end
		}
	}
	return units
}

// newChunk builds a chunk covering the given units.
func newChunk(text, documentID string, index int, units []unit) domain.Chunk {
	start := units[0].start
	end := units[len(units)-1].end
	content := text[start:end]

	return domain.Chunk{
		ID:            fmt.Sprintf("%s:%d", documentID, index),
		DocumentID:    documentID,
		Index:         index,
		Start:         start,
		End:           end,
		Content:       content,
		TokenEstimate: domain.EstimateTokens(content),
		Entities:      mergeEntities(units),
	}
}

// mergeEntities unions unit entity tags, sorted and deduplicated.
func mergeEntities(units []unit) []string {
	seen := make(map[string]struct{})
	for _, u := range units {
		for _, e := range u.entities {
			seen[e] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
