package domain

// Sentence is a span of normalised text with derived entity tags.
// Spans partition the text: each sentence runs from its first character
// to the start of the next sentence, so concatenating spans in order
// reconstructs the text exactly.
type Sentence struct {
	// Start is the byte offset of the sentence in the normalised text.
	Start int

	// End is the byte offset one past the sentence (including trailing
	// whitespace up to the next sentence).
	End int

	// Entities are tags detected in this sentence (acts, sections,
	// dates, clause keywords).
	Entities []string
}

// NormalisedText is cleaned text plus its sentence segmentation.
type NormalisedText struct {
	// Text is the cleaned, Unicode-normalised text.
	Text string

	// Sentences are the sentence spans, in document order.
	Sentences []Sentence

	// KeyPhrases are the most frequent content phrases of the text,
	// most frequent first.
	KeyPhrases []string
}

// Chunk is a bounded, ordered slice of a document's normalised text
// sized for model context limits. Chunks of a document, ordered by
// Index, reconstruct the normalised text with bounded overlap and no
// gaps beyond the declared overlap window.
type Chunk struct {
	// ID is deterministic: "<documentID>:<index>". Chunking the same
	// input with the same parameters yields byte-identical chunks.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the ordinal position within the document.
	Index int

	// Start is the byte offset of the chunk in the normalised text.
	Start int

	// End is the byte offset one past the chunk.
	End int

	// Content is the chunk text, always equal to text[Start:End].
	Content string

	// TokenEstimate is the estimated token count of Content.
	TokenEstimate int

	// Entities are the union of entity tags of the sentences in the chunk.
	Entities []string

	// OverlapPrev is the number of bytes shared with the previous chunk.
	// Zero for the first chunk.
	OverlapPrev int
}

// HasEntity reports whether the chunk carries the given entity tag.
func (c *Chunk) HasEntity(tag string) bool {
	for _, e := range c.Entities {
		if e == tag {
			return true
		}
	}
	return false
}
