package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

func newTestPipeline(
	registry *stubRegistry,
	contextStore *stubContextStore,
	sessionStore *stubSessionStore,
	history *stubHistory,
	llm *stubLLM,
) *Pipeline {
	budget := testBudget()
	router, _ := fastRouter(llm)
	var historyStore driven.HistoryStore
	if history != nil {
		historyStore = history
	}
	return NewPipeline(
		registry,
		passNormaliser{},
		wholeChunker{},
		contextStore,
		sessionStore,
		historyStore,
		NewRetriever(contextStore, &stubTagger{}, budget),
		NewAssembler(budget),
		router,
		NewTranslator(llm),
		domain.DefaultPipelineSettings(),
	)
}

func TestUpload_HappyPath(t *testing.T) {
	registry := &stubRegistry{
		text:   "The lessee shall pay rent monthly in advance.",
		status: domain.ExtractionSucceeded,
	}
	contextStore := &stubContextStore{}
	sessionStore := newStubSessionStore()
	history := &stubHistory{}
	p := newTestPipeline(registry, contextStore, sessionStore, history, &stubLLM{responses: []stubResponse{{text: "ok"}}})

	status, err := p.Upload(context.Background(), "s1", "lease.pdf", []byte("%PDF-"))
	require.NoError(t, err)

	assert.NotEmpty(t, status.DocumentID)
	assert.Equal(t, domain.ExtractionSucceeded, status.Status)
	assert.Equal(t, 1, status.Chunks)
	assert.Equal(t, 8, status.Stats.Words)

	require.Len(t, contextStore.puts, 1)
	assert.Equal(t, status.DocumentID, contextStore.puts[0])

	session, err := sessionStore.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{status.DocumentID}, session.DocumentIDs)
	assert.False(t, session.LastActive.IsZero())

	assert.Equal(t, []string{"s1"}, history.sessions)
}

func TestUpload_UnsupportedFormat(t *testing.T) {
	p := newTestPipeline(&stubRegistry{}, &stubContextStore{}, newStubSessionStore(), nil, &stubLLM{responses: []stubResponse{{text: "ok"}}})

	_, err := p.Upload(context.Background(), "s1", "notes.xlsx", []byte("data"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestUpload_ExtractionFailureStoresNothing(t *testing.T) {
	registry := &stubRegistry{err: domain.ErrCorruptDocument}
	contextStore := &stubContextStore{}
	sessionStore := newStubSessionStore()
	p := newTestPipeline(registry, contextStore, sessionStore, nil, &stubLLM{responses: []stubResponse{{text: "ok"}}})

	_, err := p.Upload(context.Background(), "s1", "broken.pdf", []byte("x"))
	require.ErrorIs(t, err, domain.ErrCorruptDocument)

	// The failed document leaves no trace: no chunks, no session record.
	assert.Empty(t, contextStore.puts)
	_, err = sessionStore.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpload_FailureDoesNotDisturbEarlierDocuments(t *testing.T) {
	registry := &stubRegistry{text: "Good contract text here.", status: domain.ExtractionSucceeded}
	contextStore := &stubContextStore{}
	sessionStore := newStubSessionStore()
	p := newTestPipeline(registry, contextStore, sessionStore, nil, &stubLLM{responses: []stubResponse{{text: "ok"}}})

	first, err := p.Upload(context.Background(), "s1", "good.pdf", []byte("x"))
	require.NoError(t, err)

	registry.err = domain.ErrNoTextExtracted
	_, err = p.Upload(context.Background(), "s1", "bad.pdf", []byte("x"))
	require.ErrorIs(t, err, domain.ErrNoTextExtracted)

	session, err := sessionStore.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{first.DocumentID}, session.DocumentIDs)
	chunks, err := contextStore.Chunks(context.Background(), "s1", "")
	require.NoError(t, err)
	assert.Len(t, chunks, 1)
}

func TestUpload_HindiTranslatedBeforeChunking(t *testing.T) {
	registry := &stubRegistry{
		text:   "यह पट्टा विलेख दोनों पक्षों के बीच निष्पादित किया गया है।",
		status: domain.ExtractionSucceeded,
	}
	contextStore := &stubContextStore{}
	llm := &stubLLM{responses: []stubResponse{{text: "This lease deed is executed between both parties."}}}
	p := newTestPipeline(registry, contextStore, newStubSessionStore(), nil, llm)

	status, err := p.Upload(context.Background(), "s1", "deed.pdf", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageHindi, status.Language)
	assert.True(t, status.Translated)

	// Stored chunks carry the English translation, not the Hindi source.
	chunks, err := contextStore.Chunks(context.Background(), "s1", "")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Content, "lease deed")

	require.Len(t, llm.systems, 1)
	assert.Equal(t, translateSystem, llm.systems[0])
}

func TestUpload_TranslationFailureKeepsHindiText(t *testing.T) {
	hindi := "यह पट्टा विलेख दोनों पक्षों के बीच निष्पादित किया गया है।"
	registry := &stubRegistry{text: hindi, status: domain.ExtractionSucceeded}
	contextStore := &stubContextStore{}
	llm := &stubLLM{responses: []stubResponse{{err: domain.ErrModelError}}}
	p := newTestPipeline(registry, contextStore, newStubSessionStore(), nil, llm)

	status, err := p.Upload(context.Background(), "s1", "deed.pdf", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageHindi, status.Language)
	assert.False(t, status.Translated)
	chunks, err := contextStore.Chunks(context.Background(), "s1", "")
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, hindi, chunks[0].Content)
}

func TestUpload_EnglishSkipsTranslation(t *testing.T) {
	registry := &stubRegistry{
		text:   "The lessee shall pay rent monthly in advance.",
		status: domain.ExtractionSucceeded,
	}
	llm := &stubLLM{responses: []stubResponse{{text: "should never be called"}}}
	p := newTestPipeline(registry, &stubContextStore{}, newStubSessionStore(), nil, llm)

	status, err := p.Upload(context.Background(), "s1", "lease.pdf", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageEnglish, status.Language)
	assert.False(t, status.Translated)
	assert.Zero(t, llm.calls)
}

func TestUpload_ValidatesInput(t *testing.T) {
	p := newTestPipeline(&stubRegistry{}, &stubContextStore{}, newStubSessionStore(), nil, &stubLLM{responses: []stubResponse{{text: "ok"}}})

	_, err := p.Upload(context.Background(), "", "lease.pdf", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.Upload(context.Background(), "s1", "lease.pdf", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAsk_AnswersFromContext(t *testing.T) {
	registry := &stubRegistry{
		text:   "Termination requires ninety days written notice.",
		status: domain.ExtractionSucceeded,
	}
	contextStore := &stubContextStore{}
	sessionStore := newStubSessionStore()
	history := &stubHistory{}
	llm := &stubLLM{responses: []stubResponse{{text: "Ninety days, per the termination clause."}}}
	p := newTestPipeline(registry, contextStore, sessionStore, history, llm)

	_, err := p.Upload(context.Background(), "s1", "lease.pdf", []byte("x"))
	require.NoError(t, err)

	answer, err := p.Ask(context.Background(), "s1", "What notice does termination require?", domain.FeatureChat)
	require.NoError(t, err)

	assert.Equal(t, "Ninety days, per the termination clause.", answer.Text)
	assert.False(t, answer.LastResortContext)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "ninety days written notice")

	session, err := sessionStore.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, session.Turns, 1)
	assert.Equal(t, domain.FeatureChat, session.Turns[0].Feature)
	assert.Equal(t, answer.Text, session.Turns[0].Response)

	require.Len(t, history.turns, 1)
	assert.Equal(t, answer.Text, history.turns[0].Response)
}

func TestAsk_CostCarriesBaseline(t *testing.T) {
	contextStore := &stubContextStore{chunks: []domain.Chunk{
		chunkWith("d1:0", "d1", "The cheque for ₹2,00,000 was dishonoured."),
	}}
	llm := &stubLLM{responses: []stubResponse{{text: "Court fees: ₹5,000\nLawyer fees: ₹40,000"}}}
	p := newTestPipeline(&stubRegistry{}, contextStore, newStubSessionStore(), nil, llm)

	answer, err := p.Ask(context.Background(), "s1", "What will my cheque dishonour case cost?", domain.FeatureCost)
	require.NoError(t, err)

	require.NotNil(t, answer.Cost)
	assert.Equal(t, float64(50000), answer.Cost.BaselineINR)
	assert.Len(t, answer.Cost.LineItems, 2)

	// The rule-based baseline seeds the prompt ahead of the context.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "cheque dishonour")
	assert.Contains(t, llm.prompts[0], "₹50000")
}

func TestAsk_EmptySessionStillAnswers(t *testing.T) {
	llm := &stubLLM{responses: []stubResponse{{text: "General information only."}}}
	p := newTestPipeline(&stubRegistry{}, &stubContextStore{}, newStubSessionStore(), nil, llm)

	answer, err := p.Ask(context.Background(), "s1", "Is a verbal agreement binding in India?", domain.FeatureChat)
	require.NoError(t, err)

	assert.Equal(t, "General information only.", answer.Text)
	require.Len(t, llm.prompts, 1)
	assert.NotContains(t, llm.prompts[0], "Document context:")
}

func TestClear_RemovesContextAndSession(t *testing.T) {
	contextStore := &stubContextStore{}
	sessionStore := newStubSessionStore()
	sessionStore.sessions["s1"] = &domain.Session{ID: "s1"}
	p := newTestPipeline(&stubRegistry{}, contextStore, sessionStore, nil, &stubLLM{responses: []stubResponse{{text: "ok"}}})

	require.NoError(t, p.Clear(context.Background(), "s1"))

	assert.Equal(t, []string{"s1"}, contextStore.removed)
	_, err := sessionStore.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
