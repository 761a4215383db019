package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

func chunksFor(docID string, n int, entities ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:         fmt.Sprintf("%s:%d", docID, i),
			DocumentID: docID,
			Index:      i,
			Content:    fmt.Sprintf("chunk %d of %s", i, docID),
			Entities:   entities,
		}
	}
	return chunks
}

func TestContextStore_PutAndChunks(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	doc := &domain.Document{ID: "doc-1", Raw: []byte("payload")}
	require.NoError(t, store.Put(ctx, "s1", doc, chunksFor("doc-1", 3)))

	chunks, err := store.Chunks(ctx, "s1", "")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "doc-1:0", chunks[0].ID)
	assert.Equal(t, "doc-1:2", chunks[2].ID)
}

func TestContextStore_DocumentThenSequenceOrder(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-a"}, chunksFor("doc-a", 2)))
	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-b"}, chunksFor("doc-b", 2)))

	chunks, err := store.Chunks(ctx, "s1", "")
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, []string{"doc-a:0", "doc-a:1", "doc-b:0", "doc-b:1"},
		[]string{chunks[0].ID, chunks[1].ID, chunks[2].ID, chunks[3].ID})

	// Filter to one document.
	chunks, err = store.Chunks(ctx, "s1", "doc-b")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "doc-b:0", chunks[0].ID)
}

func TestContextStore_DropsRawPayload(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1",
		&domain.Document{ID: "doc-1", Raw: []byte("large payload")}, nil))

	docs, err := store.Documents(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].Raw)
}

func TestContextStore_ReplacesOnRePut(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-1"}, chunksFor("doc-1", 5)))
	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-1"}, chunksFor("doc-1", 2)))

	chunks, err := store.Chunks(ctx, "s1", "")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	docs, err := store.Documents(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestContextStore_EntityIndex(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1",
		&domain.Document{ID: "doc-1"}, chunksFor("doc-1", 2, "act:indian penal code")))
	require.NoError(t, store.Put(ctx, "s1",
		&domain.Document{ID: "doc-2"}, chunksFor("doc-2", 1, "section:section 420")))

	ids, err := store.ChunkIDsForEntity(ctx, "s1", "act:indian penal code")
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-1:0", "doc-1:1"}, ids)

	ids, err = store.ChunkIDsForEntity(ctx, "s1", "clause:whereas")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestContextStore_SessionIsolation(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-1"}, chunksFor("doc-1", 1)))

	chunks, err := store.Chunks(ctx, "s2", "")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestContextStore_RemoveSession(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-1"}, chunksFor("doc-1", 1)))
	require.NoError(t, store.RemoveSession(ctx, "s1"))

	chunks, err := store.Chunks(ctx, "s1", "")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	// Unknown session is a no-op.
	assert.NoError(t, store.RemoveSession(ctx, "missing"))
}

func TestContextStore_RemoveIdle(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	clock := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.Put(ctx, "stale", &domain.Document{ID: "doc-1"}, nil))

	clock = clock.Add(45 * time.Minute)
	require.NoError(t, store.Put(ctx, "fresh", &domain.Document{ID: "doc-2"}, nil))

	removed, err := store.RemoveIdle(ctx, clock.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, removed)

	docs, err := store.Documents(ctx, "fresh")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestContextStore_ReadsKeepSessionAlive(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	clock := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.Put(ctx, "s1", &domain.Document{ID: "doc-1"}, nil))

	// A read inside the idle window refreshes the session.
	clock = clock.Add(20 * time.Minute)
	_, err := store.Chunks(ctx, "s1", "")
	require.NoError(t, err)

	clock = clock.Add(20 * time.Minute)
	removed, err := store.RemoveIdle(ctx, clock.Add(-30*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestContextStore_InvalidInput(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "", &domain.Document{ID: "d"}, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, "s1", nil, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Put(ctx, "s1", &domain.Document{}, nil), domain.ErrInvalidInput)
}

func TestContextStore_AtomicPut(t *testing.T) {
	store := NewContextStore()
	ctx := context.Background()

	const chunkCount = 64
	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Writers keep replacing the document's full chunk set.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			_ = store.Put(ctx, "s1", &domain.Document{ID: "doc-1"}, chunksFor("doc-1", chunkCount))
		}
	}()

	// Readers must only ever observe the full set or nothing.
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				chunks, err := store.Chunks(ctx, "s1", "")
				assert.NoError(t, err)
				if len(chunks) != 0 && len(chunks) != chunkCount {
					t.Errorf("observed partial chunk set: %d chunks", len(chunks))
					return
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	close(stop)
	wg.Wait()
}
