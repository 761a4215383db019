package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineService = (*Pipeline)(nil)

/// Pipeline orchestrates the document pipeline end to end: extraction,
// normalisation, chunking and storage on upload; retrieval, assembly
// and dispatch on ask.
type Pipeline struct {
	extractors   driven.ExtractorRegistry
	normaliser   driven.Normaliser
	chunker      driven.Chunker
	contextStore driven.ContextStore
	sessionStore driven.SessionStore
	history      driven.HistoryStore // optional

	retriever  *Retriever
	assembler  *Assembler
	router     *Router
	translator *Translator // optional

	settings domain.PipelineSettings
	now      func() time.Time
}

// NewPipeline creates the pipeline service. history may be nil when
// persistence is disabled; translator may be nil when no model service
// is configured, in which case Hindi documents are ingested untranslated.
func NewPipeline(
	extractors driven.ExtractorRegistry,
	normaliser driven.Normaliser,
	chunker driven.Chunker,
	contextStore driven.ContextStore,
	sessionStore driven.SessionStore,
	history driven.HistoryStore,
	retriever *Retriever,
	assembler *Assembler,
	router *Router,
	translator *Translator,
	settings domain.PipelineSettings,
) *Pipeline {
	return &Pipeline{
		extractors:   extractors,
		normaliser:   normaliser,
		chunker:      chunker,
		contextStore: contextStore,
		sessionStore: sessionStore,
		history:      history,
		retriever:    retriever,
		assembler:    assembler,
		router:       router,
		translator:   translator,
		settings:     settings,
		now:          time.Now,
	}
}

// Upload ingests one document into the session. A failure at any stage
// aborts this document only: nothing is stored, other session documents
// stay usable, and the error names the document and failing stage.
func (p *Pipeline) Upload(ctx context.Context, sessionID, filename string, payload []byte) (*driving.UploadStatus, error) {
	logger.Section("Upload")
	logger.Info("Ingesting %s into session %s (%d bytes)", filename, sessionID, len(payload))

	if sessionID == "" || filename == "" {
		return nil, fmt.Errorf("%w: session id and filename are required", domain.ErrInvalidInput)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidInput)
	}

	format := domain.FormatForFilename(filename)
	if format == domain.FormatUnknown {
		return nil, fmt.Errorf("document %q: %w", filename, domain.ErrUnsupportedFormat)
	}

	doc := &domain.Document{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Filename:   filename,
		Format:     format,
		Raw:        payload,
		Status:     domain.ExtractionPending,
		UploadedAt: p.now(),
	}

	text, status, err := p.extractors.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("document %s: extract: %w", doc.ID, err)
	}

	normalised, err := p.normaliser.Normalise(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("document %s: normalise: %w", doc.ID, err)
	}
	if normalised.Text == "" {
		return nil, fmt.Errorf("document %s: normalise: %w", doc.ID, domain.ErrNoTextExtracted)
	}

	language := domain.DetectLanguage(normalised.Text)
	translated := false
	if language == domain.LanguageHindi && p.translator != nil {
		// Translation is best-effort: the Hindi text is still usable
		// context, so a failed translation keeps the original.
		english, err := p.translator.TranslateToEnglish(ctx, normalised.Text)
		if err != nil {
			logger.Warn("Translation failed for %s, keeping Hindi text: %v", doc.ID, err)
		} else if renorm, err := p.normaliser.Normalise(ctx, english); err == nil && renorm.Text != "" {
			normalised = renorm
			translated = true
		}
	}

	chunks, err := p.chunker.Chunk(normalised, doc.ID, p.settings.MaxChunkTokens, p.settings.OverlapTokens)
	if err != nil {
		return nil, fmt.Errorf("document %s: chunk: %w", doc.ID, err)
	}

	// The document is immutable from here: text fixed, raw payload dropped.
	doc.Text = normalised.Text
	doc.Status = status
	doc.Raw = nil

	if err := p.contextStore.Put(ctx, sessionID, doc, chunks); err != nil {
		return nil, fmt.Errorf("document %s: store: %w", doc.ID, err)
	}

	if err := p.touchSession(ctx, sessionID, doc.ID); err != nil {
		return nil, fmt.Errorf("document %s: session: %w", doc.ID, err)
	}

	stats := domain.StatsFor(normalised)
	logger.Info("Stored %s: %d chunks, %d words, status %s",
		doc.ID, len(chunks), stats.Words, status)

	return &driving.UploadStatus{
		DocumentID: doc.ID,
		Status:     status,
		Chunks:     len(chunks),
		Stats:      stats,
		KeyPhrases: normalised.KeyPhrases,
		Language:   language,
		Translated: translated,
	}, nil
}

// Ask answers one query against the session's context.
func (p *Pipeline) Ask(ctx context.Context, sessionID, query string, feature domain.Feature) (*domain.Answer, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}

	session, err := p.sessionStore.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		// First interaction creates the session.
		session = &domain.Session{ID: sessionID, CreatedAt: p.now()}
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	retrieval, err := p.retriever.Retrieve(ctx, sessionID, query)
	if err != nil {
		return nil, err
	}

	var extra string
	var baseline float64
	if feature == domain.FeatureCost {
		var label string
		label, baseline = costBaseline(query)
		extra = costPreamble(label, baseline)
	}

	prompt, err := p.assembler.Assemble(feature, retrieval, session, extra)
	if err != nil {
		return nil, err
	}

	answer, err := p.router.Dispatch(ctx, prompt)
	if err != nil {
		return nil, err
	}
	answer.LastResortContext = retrieval.LastResort
	if answer.Cost != nil {
		answer.Cost.BaselineINR = baseline
	}

	session.Turns = append(session.Turns, domain.Turn{
		Feature:  feature,
		Query:    retrieval.Query,
		Response: answer.Text,
		At:       p.now(),
	})
	session.LastActive = p.now()
	if err := p.sessionStore.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	p.record(ctx, sessionID, session.Turns[len(session.Turns)-1])
	return answer, nil
}

// Clear evicts the session and all its documents and chunks.
func (p *Pipeline) Clear(ctx context.Context, sessionID string) error {
	if err := p.contextStore.RemoveSession(ctx, sessionID); err != nil {
		return fmt.Errorf("clear context: %w", err)
	}
	if err := p.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	logger.Info("Cleared session %s", sessionID)
	return nil
}

// touchSession attaches the document and bumps activity, creating the
// session record on first upload.
func (p *Pipeline) touchSession(ctx context.Context, sessionID, documentID string) error {
	session, err := p.sessionStore.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		session = &domain.Session{ID: sessionID, CreatedAt: p.now()}
	} else if err != nil {
		return err
	}

	if session.DocumentOrder(documentID) < 0 {
		session.DocumentIDs = append(session.DocumentIDs, documentID)
	}
	session.LastActive = p.now()

	if err := p.sessionStore.Save(ctx, session); err != nil {
		return err
	}
	if p.history != nil {
		if err := p.history.SaveSession(ctx, sessionID); err != nil {
			logger.Warn("History persistence failed: %v", err)
		}
	}
	return nil
}

// record persists the turn when history is enabled. Persistence is
// best-effort: a history failure never fails the answer.
func (p *Pipeline) record(ctx context.Context, sessionID string, turn domain.Turn) {
	if p.history == nil {
		return
	}
	if err := p.history.SaveTurn(ctx, sessionID, turn); err != nil {
		logger.Warn("History persistence failed: %v", err)
	}
}
