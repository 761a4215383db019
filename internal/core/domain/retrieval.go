package domain

// ScoredChunk pairs a chunk with its relevance score for one query.
type ScoredChunk struct {
	// Chunk is the retrieved chunk, always whole, never a fragment.
	Chunk Chunk

	// Score is the combined lexical + entity relevance score.
	Score float64
}

// RetrievalResult is the ephemeral output of one retrieval. It is
// recomputed per query, never persisted, and never exceeds the budget.
type RetrievalResult struct {
	// Query is the query the result was computed for.
	Query string

	// Chunks are the selected chunks in rank order.
	Chunks []ScoredChunk

	// TokenTotal is the summed token estimate of the selected chunks.
	// Invariant: TokenTotal <= budget.MaxContextTokens.
	TokenTotal int

	// LastResort is true when no chunk cleared the relevance floor and
	// the result is the document-order context-of-last-resort.
	LastResort bool
}

// ContextText concatenates the selected chunk contents in rank order,
// separated by blank lines, for prompt assembly.
func (r *RetrievalResult) ContextText() string {
	var out string
	for i := range r.Chunks {
		if i > 0 {
			out += "\n\n"
		}
		out += r.Chunks[i].Chunk.Content
	}
	return out
}
