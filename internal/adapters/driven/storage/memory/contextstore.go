package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Ensure ContextStore implements the interface.
var _ driven.ContextStore = (*ContextStore)(nil)

// sessionContext holds one session's documents, chunks and entity index.
type sessionContext struct {
	docOrder []string
	docs     map[string]domain.Document
	chunks   map[string][]domain.Chunk

	// entities maps an entity tag to chunk ids in document-then-sequence
	// order. Rebuilt on every Put.
	entities map[string][]string

	lastUsed time.Time
}

// ContextStore is the in-memory implementation of driven.ContextStore.
// A single mutex keeps Put atomic with respect to readers: no read ever
// observes a document with a partial chunk set.
type ContextStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionContext

	// now is swappable for idle-expiry tests.
	now func() time.Time
}

// NewContextStore creates a new in-memory context store.
func NewContextStore() *ContextStore {
	return &ContextStore{
		sessions: make(map[string]*sessionContext),
		now:      time.Now,
	}
}

// Put stores a document and its full chunk sequence atomically.
// Re-putting a document id replaces its previous chunks. The raw
// payload is not retained.
func (s *ContextStore) Put(_ context.Context, sessionID string, doc *domain.Document, chunks []domain.Chunk) error {
	if sessionID == "" || doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.sessions[sessionID]
	if !ok {
		sc = &sessionContext{
			docs:   make(map[string]domain.Document),
			chunks: make(map[string][]domain.Chunk),
		}
		s.sessions[sessionID] = sc
	}

	stored := *doc
	stored.Raw = nil
	if _, exists := sc.docs[doc.ID]; !exists {
		sc.docOrder = append(sc.docOrder, doc.ID)
	}
	sc.docs[doc.ID] = stored
	sc.chunks[doc.ID] = append([]domain.Chunk(nil), chunks...)

	sc.rebuildEntityIndex()
	sc.lastUsed = s.now()
	return nil
}

// Chunks returns a session's chunks in document-then-sequence order.
// An unknown session yields an empty result, not an error: retrieval
// over an empty context is a legitimate state.
func (s *ContextStore) Chunks(_ context.Context, sessionID, documentID string) ([]domain.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	sc.lastUsed = s.now()

	var out []domain.Chunk
	for _, docID := range sc.docOrder {
		if documentID != "" && docID != documentID {
			continue
		}
		out = append(out, sc.chunks[docID]...)
	}
	return out, nil
}

// Documents returns the session's documents in upload order.
func (s *ContextStore) Documents(_ context.Context, sessionID string) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	sc.lastUsed = s.now()

	out := make([]domain.Document, 0, len(sc.docOrder))
	for _, docID := range sc.docOrder {
		out = append(out, sc.docs[docID])
	}
	return out, nil
}

// ChunkIDsForEntity returns chunk ids carrying the given entity tag.
func (s *ContextStore) ChunkIDsForEntity(_ context.Context, sessionID, entity string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	sc.lastUsed = s.now()

	return append([]string(nil), sc.entities[entity]...), nil
}

// RemoveSession drops a session's documents, chunks and index.
// Removing an unknown session is a no-op.
func (s *ContextStore) RemoveSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// RemoveIdle drops sessions unused since the cutoff and returns their ids.
func (s *ContextStore) RemoveIdle(_ context.Context, cutoff time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, sc := range s.sessions {
		if sc.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)
	return removed, nil
}

// rebuildEntityIndex derives the entity index from the chunk sequences.
func (sc *sessionContext) rebuildEntityIndex() {
	index := make(map[string][]string)
	for _, docID := range sc.docOrder {
		for _, c := range sc.chunks[docID] {
			for _, e := range c.Entities {
				index[e] = append(index[e], c.ID)
			}
		}
	}
	sc.entities = index
}
