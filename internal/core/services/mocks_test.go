package services

import (
	"context"
	"time"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
)

// Test doubles for the driven ports, in one place since most service
// tests share them.

// stubTagger returns canned entity tags per input.
type stubTagger struct {
	tags map[string][]string
}

func (s *stubTagger) Tag(text string) []string {
	if s == nil || s.tags == nil {
		return nil
	}
	return s.tags[text]
}

// stubContextStore serves a fixed chunk slice.
type stubContextStore struct {
	chunks  []domain.Chunk
	puts    []string // document ids in Put order
	removed []string
	idle    []string
	err     error
}

func (s *stubContextStore) Put(_ context.Context, _ string, doc *domain.Document, chunks []domain.Chunk) error {
	if s.err != nil {
		return s.err
	}
	s.puts = append(s.puts, doc.ID)
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *stubContextStore) Chunks(_ context.Context, _, documentID string) ([]domain.Chunk, error) {
	if s.err != nil {
		return nil, s.err
	}
	if documentID == "" {
		return s.chunks, nil
	}
	var out []domain.Chunk
	for _, c := range s.chunks {
		if c.DocumentID == documentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubContextStore) Documents(_ context.Context, _ string) ([]domain.Document, error) {
	return nil, nil
}

func (s *stubContextStore) ChunkIDsForEntity(_ context.Context, _, entity string) ([]string, error) {
	var ids []string
	for _, c := range s.chunks {
		if c.HasEntity(entity) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (s *stubContextStore) RemoveSession(_ context.Context, sessionID string) error {
	s.removed = append(s.removed, sessionID)
	return nil
}

func (s *stubContextStore) RemoveIdle(_ context.Context, _ time.Time) ([]string, error) {
	return s.idle, nil
}

// stubSessionStore keeps sessions in a map.
type stubSessionStore struct {
	sessions map[string]*domain.Session
	idle     []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	copied := *sess
	copied.Turns = append([]domain.Turn(nil), sess.Turns...)
	copied.DocumentIDs = append([]string(nil), sess.DocumentIDs...)
	s.sessions[sess.ID] = &copied
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionStore) IdleBefore(_ context.Context, _ time.Time) ([]string, error) {
	return s.idle, nil
}

// stubLLM replays scripted responses, one per Generate call. When the
// script runs out the last response repeats.
type stubLLM struct {
	responses []stubResponse
	calls     int
	prompts   []string
	systems   []string
}

type stubResponse struct {
	text string
	err  error
}

func (s *stubLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.systems = append(s.systems, opts.System)
	idx := s.calls
	s.calls++
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	r := s.responses[idx]
	return r.text, r.err
}

func (s *stubLLM) ModelName() string { return "stub-model" }

func (s *stubLLM) Ping(context.Context) error { return nil }

func (s *stubLLM) Close() error { return nil }

// stubHistory records persisted sessions and turns.
type stubHistory struct {
	sessions []string
	turns    []domain.Turn
	err      error
}

func (s *stubHistory) SaveSession(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.sessions = append(s.sessions, id)
	return nil
}

func (s *stubHistory) SaveTurn(_ context.Context, _ string, turn domain.Turn) error {
	if s.err != nil {
		return s.err
	}
	s.turns = append(s.turns, turn)
	return nil
}

func (s *stubHistory) Turns(_ context.Context, _ string) ([]domain.Turn, error) {
	return s.turns, nil
}

func (s *stubHistory) Close() error { return nil }

// stubRegistry is an extractor registry returning canned text.
type stubRegistry struct {
	text   string
	status domain.ExtractionStatus
	err    error
}

func (s *stubRegistry) Extract(_ context.Context, _ *domain.Document) (string, domain.ExtractionStatus, error) {
	return s.text, s.status, s.err
}

func (s *stubRegistry) Supported() []domain.DocumentFormat {
	return []domain.DocumentFormat{domain.FormatPDF, domain.FormatImage, domain.FormatDocx}
}

// passNormaliser passes text through as a single sentence span.
type passNormaliser struct{}

func (passNormaliser) Normalise(_ context.Context, raw string) (*domain.NormalisedText, error) {
	if raw == "" {
		return &domain.NormalisedText{}, nil
	}
	return &domain.NormalisedText{
		Text:      raw,
		Sentences: []domain.Sentence{{Start: 0, End: len(raw)}},
	}, nil
}

// wholeChunker emits the text as one chunk.
type wholeChunker struct{}

func (wholeChunker) Chunk(text *domain.NormalisedText, documentID string, _, _ int) ([]domain.Chunk, error) {
	if text == nil || text.Text == "" {
		return nil, nil
	}
	return []domain.Chunk{{
		ID:            documentID + ":0",
		DocumentID:    documentID,
		Content:       text.Text,
		End:           len(text.Text),
		TokenEstimate: domain.EstimateTokens(text.Text),
	}}, nil
}
