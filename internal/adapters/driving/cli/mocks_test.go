package cli

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
)

// mockPipelineService is a configurable test double for
// driving.PipelineService.
type mockPipelineService struct {
	uploadStatus *driving.UploadStatus
	uploadErr    error
	answer       *domain.Answer
	askErr       error
	clearErr     error

	uploads []string
	asks    []string
	clears  []string
}

func (m *mockPipelineService) Upload(_ context.Context, sessionID, filename string, _ []byte) (*driving.UploadStatus, error) {
	m.uploads = append(m.uploads, sessionID+"/"+filename)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	if m.uploadStatus != nil {
		return m.uploadStatus, nil
	}
	return &driving.UploadStatus{
		DocumentID: "doc-1",
		Status:     domain.ExtractionSucceeded,
		Chunks:     2,
		Stats:      domain.Stats{Words: 40, Sentences: 4},
	}, nil
}

func (m *mockPipelineService) Ask(_ context.Context, sessionID, query string, feature domain.Feature) (*domain.Answer, error) {
	m.asks = append(m.asks, sessionID+"/"+feature.String()+"/"+query)
	if m.askErr != nil {
		return nil, m.askErr
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{Feature: feature, Text: "mock answer"}, nil
}

func (m *mockPipelineService) Clear(_ context.Context, sessionID string) error {
	m.clears = append(m.clears, sessionID)
	return m.clearErr
}

// mockSessionService is a configurable test double for
// driving.SessionService.
type mockSessionService struct {
	session    *domain.Session
	getErr     error
	summary    string
	summaryErr error
}

func (m *mockSessionService) Create(context.Context) (*domain.Session, error) {
	if m.session != nil {
		return m.session, nil
	}
	return &domain.Session{ID: "session-new", CreatedAt: time.Now(), LastActive: time.Now()}, nil
}

func (m *mockSessionService) Get(_ context.Context, id string) (*domain.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.session != nil {
		return m.session, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockSessionService) Summarise(context.Context, string) (string, error) {
	if m.summaryErr != nil {
		return "", m.summaryErr
	}
	return m.summary, nil
}

func (m *mockSessionService) Sweep(context.Context) ([]string, error) {
	return nil, nil
}

// mockHistoryStore is a configurable test double for driven.HistoryStore.
type mockHistoryStore struct {
	turns    []domain.Turn
	turnsErr error
}

func (m *mockHistoryStore) SaveSession(context.Context, string) error {
	return nil
}

func (m *mockHistoryStore) SaveTurn(context.Context, string, domain.Turn) error {
	return nil
}

func (m *mockHistoryStore) Turns(context.Context, string) ([]domain.Turn, error) {
	if m.turnsErr != nil {
		return nil, m.turnsErr
	}
	return m.turns, nil
}

func (m *mockHistoryStore) Close() error {
	return nil
}

// mockPipelineError fails every operation.
type mockPipelineError struct {
	mockPipelineService
}

func newMockPipelineError() *mockPipelineError {
	m := &mockPipelineError{}
	m.uploadErr = errors.New("upload failed")
	m.askErr = errors.New("ask failed")
	m.clearErr = errors.New("clear failed")
	return m
}

// setupTestServices wires mock services into the package-level vars and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldPipeline := pipelineService
	oldSession := sessionService
	oldHistory := historyStore

	pipelineService = &mockPipelineService{}
	sessionService = &mockSessionService{}
	historyStore = &mockHistoryStore{}

	return func() {
		pipelineService = oldPipeline
		sessionService = oldSession
		historyStore = oldHistory
	}
}
