package mcp

import (
	"context"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
)

// mockPipeline is a configurable test double for driving.PipelineService.
type mockPipeline struct {
	uploadStatus *driving.UploadStatus
	uploadErr    error
	answer       *domain.Answer
	askErr       error
	clearErr     error

	uploaded []string
	asked    []string
	cleared  []string
	payloads [][]byte
}

func (m *mockPipeline) Upload(_ context.Context, sessionID, filename string, payload []byte) (*driving.UploadStatus, error) {
	m.uploaded = append(m.uploaded, sessionID+"/"+filename)
	m.payloads = append(m.payloads, payload)
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return m.uploadStatus, nil
}

func (m *mockPipeline) Ask(_ context.Context, sessionID, query string, feature domain.Feature) (*domain.Answer, error) {
	m.asked = append(m.asked, sessionID+"/"+feature.String()+"/"+query)
	if m.askErr != nil {
		return nil, m.askErr
	}
	return m.answer, nil
}

func (m *mockPipeline) Clear(_ context.Context, sessionID string) error {
	m.cleared = append(m.cleared, sessionID)
	return m.clearErr
}

// mockSession is a configurable test double for driving.SessionService.
type mockSession struct {
	session *domain.Session
	getErr  error
}

func (m *mockSession) Create(context.Context) (*domain.Session, error) {
	return m.session, nil
}

func (m *mockSession) Get(_ context.Context, id string) (*domain.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.session, nil
}

func (m *mockSession) Summarise(context.Context, string) (string, error) {
	return "", nil
}

func (m *mockSession) Sweep(context.Context) ([]string, error) {
	return nil, nil
}
