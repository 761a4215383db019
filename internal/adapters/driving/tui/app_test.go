package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/juribot-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
)

type mockPipeline struct {
	answer *domain.Answer
	err    error
	asked  []string
}

func (m *mockPipeline) Upload(context.Context, string, string, []byte) (*driving.UploadStatus, error) {
	return nil, errors.New("not implemented")
}

func (m *mockPipeline) Ask(_ context.Context, _ string, query string, _ domain.Feature) (*domain.Answer, error) {
	m.asked = append(m.asked, query)
	return m.answer, m.err
}

func (m *mockPipeline) Clear(context.Context, string) error { return nil }

type mockSession struct {
	session *domain.Session
	err     error
}

func (m *mockSession) Create(context.Context) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSession) Get(context.Context, string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockSession) Summarise(context.Context, string) (string, error) { return "", m.err }

func (m *mockSession) Sweep(context.Context) ([]string, error) { return nil, nil }

func testPorts() *Ports {
	return &Ports{
		Pipeline: &mockPipeline{answer: &domain.Answer{Feature: domain.FeatureChat, Text: "answer"}},
		Session:  &mockSession{session: &domain.Session{ID: "sess-1"}},
	}
}

func TestNewApp_RequiresPorts(t *testing.T) {
	_, err := NewApp(nil, "")
	assert.Error(t, err)

	_, err = NewApp(&Ports{}, "")
	assert.Error(t, err)

	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", app.sessionID)
	assert.Equal(t, domain.FeatureChat, app.feature)
}

func TestApp_SessionCreated(t *testing.T) {
	app, err := NewApp(testPorts(), "")
	require.NoError(t, err)

	model, _ := app.Update(messages.SessionCreated{SessionID: "sess-9"})
	app = model.(*App)
	assert.Equal(t, "sess-9", app.sessionID)

	model, _ = app.Update(messages.SessionCreated{Err: errors.New("store down")})
	app = model.(*App)
	assert.EqualError(t, app.err, "store down")
}

func TestApp_EnterSubmitsQuery(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)
	app.input.SetValue("What is the notice period?")

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = model.(*App)

	require.NotNil(t, cmd)
	assert.True(t, app.waiting)
	require.Len(t, app.transcript, 1)
	assert.Equal(t, "you", app.transcript[0].speaker)
	assert.Equal(t, "What is the notice period?", app.transcript[0].text)
	assert.Empty(t, app.input.Value())
}

func TestApp_EnterIgnoredWhileWaitingOrEmpty(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)

	app.input.SetValue("query")
	app.waiting = true
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestApp_AnswerReceived(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)
	app.waiting = true

	answer := &domain.Answer{Feature: domain.FeatureChat, Text: "Ninety days."}
	model, _ := app.Update(messages.AnswerReceived{Answer: answer})
	app = model.(*App)

	assert.False(t, app.waiting)
	require.Len(t, app.transcript, 1)
	assert.Equal(t, "juribot", app.transcript[0].speaker)
	assert.Equal(t, "Ninety days.", app.transcript[0].text)
	assert.False(t, app.transcript[0].err)
}

func TestApp_AnswerError(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)
	app.waiting = true

	model, _ := app.Update(messages.AnswerReceived{Err: domain.ErrLLMUnavailable})
	app = model.(*App)

	assert.False(t, app.waiting)
	require.Len(t, app.transcript, 1)
	assert.True(t, app.transcript[0].err)
}

func TestApp_TabCyclesFeatures(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, domain.FeatureCaseLaw, app.feature)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, domain.FeatureCost, app.feature)

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)
	assert.Equal(t, domain.FeatureChat, app.feature)
}

func TestApp_QuitKeys(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestRenderAnswer_CostBaseline(t *testing.T) {
	answer := &domain.Answer{
		Feature: domain.FeatureCost,
		Text:    "Roughly fifty thousand.",
		Cost:    &domain.CostEstimate{BaselineINR: 50000},
	}
	out := renderAnswer(answer)
	assert.Contains(t, out, "Roughly fifty thousand.")
	assert.Contains(t, out, "₹50000")
}

func TestRenderAnswer_LastResortNote(t *testing.T) {
	answer := &domain.Answer{Feature: domain.FeatureChat, Text: "x", LastResortContext: true}
	assert.Contains(t, renderAnswer(answer), "weak document match")
}

func TestApp_ViewBeforeReady(t *testing.T) {
	app, err := NewApp(testPorts(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Loading...", app.View())

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = model.(*App)
	assert.Contains(t, app.View(), "JuriBot")
}
