package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Relevance scoring parameters.
const (
	// lexicalWeight and entityWeight combine the two relevance signals.
	lexicalWeight = 0.7
	entityWeight  = 0.3

	// relevanceFloor is the minimum combined score a chunk must clear.
	// Below it for every chunk, retrieval falls back to the
	// context-of-last-resort.
	relevanceFloor = 0.05

	// lastResortChunks is how many document-order chunks the fallback
	// context carries.
	lastResortChunks = 3
)

// Retriever selects the most relevant chunks for a query, within the
// context token budget. Results are ephemeral and recomputed per query.
type Retriever struct {
	store  driven.ContextStore
	tagger driven.EntityTagger
	budget domain.ContextBudget
}

// NewRetriever creates a new retriever.
func NewRetriever(store driven.ContextStore, tagger driven.EntityTagger, budget domain.ContextBudget) *Retriever {
	return &Retriever{
		store:  store,
		tagger: tagger,
		budget: budget,
	}
}

// Retrieve scores the session's chunks against the query and packs the
// best ones under the budget. When no chunk clears the relevance floor
// it falls back to the first chunks in document order, flagged as the
// last-resort context. An empty session yields an empty result.
func (r *Retriever) Retrieve(ctx context.Context, sessionID, query string) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	chunks, err := r.store.Chunks(ctx, sessionID, "")
	if err != nil {
		return nil, fmt.Errorf("load session chunks: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("Session has no chunks, retrieval is empty")
		return &domain.RetrievalResult{Query: query}, nil
	}

	terms := queryTerms(query)
	entities := r.tagger.Tag(query)
	logger.Debug("Query terms: %v, entities: %v", terms, entities)

	var candidates []domain.ScoredChunk
	for _, c := range chunks {
		score := lexicalWeight*lexicalScore(terms, c.Content) +
			entityWeight*entityScore(entities, c.Entities)
		if score >= relevanceFloor {
			candidates = append(candidates, domain.ScoredChunk{Chunk: c, Score: score})
		}
	}
	logger.Debug("Candidates above floor: %d of %d", len(candidates), len(chunks))

	if len(candidates) == 0 {
		return r.lastResort(query, chunks), nil
	}

	// Rank by score; stable sort keeps document-then-sequence order as
	// the tie-break since the input arrives in that order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	result := &domain.RetrievalResult{Query: query}
	for _, c := range candidates {
		if result.TokenTotal+c.Chunk.TokenEstimate > r.budget.MaxContextTokens {
			continue
		}
		result.Chunks = append(result.Chunks, c)
		result.TokenTotal += c.Chunk.TokenEstimate
	}

	logger.Info("Retrieved %d chunks, %d tokens", len(result.Chunks), result.TokenTotal)
	return result, nil
}

// lastResort packs the first chunks in document order. A model answer
// grounded in some document context beats one grounded in none.
func (r *Retriever) lastResort(query string, chunks []domain.Chunk) *domain.RetrievalResult {
	logger.Warn("No chunk cleared the relevance floor, using document-order context")

	result := &domain.RetrievalResult{Query: query, LastResort: true}
	for _, c := range chunks {
		if len(result.Chunks) == lastResortChunks {
			break
		}
		if result.TokenTotal+c.TokenEstimate > r.budget.MaxContextTokens {
			continue
		}
		result.Chunks = append(result.Chunks, domain.ScoredChunk{Chunk: c})
		result.TokenTotal += c.TokenEstimate
	}
	return result
}

// queryTerms lowercases the query and keeps unique terms of three or
// more characters, which filters articles and stray punctuation.
func queryTerms(query string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, f := range strings.Fields(strings.ToLower(query)) {
		term := strings.Trim(f, ".,;:!?\"'()[]")
		if len(term) < 3 {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}

// lexicalScore is the fraction of query terms present in the content.
func lexicalScore(terms []string, content string) float64 {
	if len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(content)
	matched := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// entityScore is the fraction of query entities carried by the chunk.
func entityScore(queryEntities, chunkEntities []string) float64 {
	if len(queryEntities) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(chunkEntities))
	for _, e := range chunkEntities {
		set[e] = struct{}{}
	}
	matched := 0
	for _, e := range queryEntities {
		if _, ok := set[e]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryEntities))
}
