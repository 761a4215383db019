package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/juribot-cli/internal/core/domain"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driving"
	"github.com/custodia-labs/juribot-cli/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

// summarySystem instructs the model for session summaries.
const summarySystem = "You summarise legal assistant conversations. Produce a short " +
	"paragraph covering the documents discussed, the questions asked and the " +
	"conclusions reached. Plain language, no preamble."

// SessionManager handles session lifecycle: creation, lookup,
// summarisation and idle eviction.
type SessionManager struct {
	sessionStore driven.SessionStore
	contextStore driven.ContextStore
	history      driven.HistoryStore // optional
	llm          driven.LLMService   // optional, needed for Summarise

	idleTimeout time.Duration
	now         func() time.Time
}

// NewSessionManager creates a session manager.
func NewSessionManager(
	sessionStore driven.SessionStore,
	contextStore driven.ContextStore,
	history driven.HistoryStore,
	llm driven.LLMService,
	idleTimeout time.Duration,
) *SessionManager {
	return &SessionManager{
		sessionStore: sessionStore,
		contextStore: contextStore,
		history:      history,
		llm:          llm,
		idleTimeout:  idleTimeout,
		now:          time.Now,
	}
}

// Create starts a new session and returns it.
func (m *SessionManager) Create(ctx context.Context) (*domain.Session, error) {
	session := &domain.Session{
		ID:         uuid.New().String(),
		CreatedAt:  m.now(),
		LastActive: m.now(),
	}
	if err := m.sessionStore.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if m.history != nil {
		if err := m.history.SaveSession(ctx, session.ID); err != nil {
			logger.Warn("History persistence failed: %v", err)
		}
	}
	logger.Info("Created session %s", session.ID)
	return session, nil
}

// Get retrieves a session by id.
func (m *SessionManager) Get(ctx context.Context, id string) (*domain.Session, error) {
	return m.sessionStore.Get(ctx, id)
}

// Summarise produces a model-written summary of the session's turns.
func (m *SessionManager) Summarise(ctx context.Context, id string) (string, error) {
	if m.llm == nil {
		return "", fmt.Errorf("%w: configure a provider first", domain.ErrLLMUnavailable)
	}

	session, err := m.sessionStore.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if len(session.Turns) == 0 {
		return "", fmt.Errorf("%w: session has no conversation to summarise", domain.ErrInvalidInput)
	}

	var transcript strings.Builder
	for _, turn := range session.Turns {
		fmt.Fprintf(&transcript, "[%s] User: %s\nAssistant: %s\n\n", turn.Feature, turn.Query, turn.Response)
	}

	summary, err := m.llm.Generate(ctx, transcript.String(), driven.GenerateOptions{
		System:      summarySystem,
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("summarise session: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// Sweep evicts sessions idle past the timeout and returns the ids
// evicted. Both stores are swept so a session with context but no
// record (or the reverse) cannot linger.
func (m *SessionManager) Sweep(ctx context.Context) ([]string, error) {
	cutoff := m.now().Add(-m.idleTimeout)

	idle, err := m.sessionStore.IdleBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list idle sessions: %w", err)
	}
	for _, id := range idle {
		if err := m.contextStore.RemoveSession(ctx, id); err != nil {
			return nil, fmt.Errorf("evict context %s: %w", id, err)
		}
		if err := m.sessionStore.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("evict session %s: %w", id, err)
		}
	}

	orphaned, err := m.contextStore.RemoveIdle(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("evict idle context: %w", err)
	}

	evicted := dedupSorted(append(idle, orphaned...))
	if len(evicted) > 0 {
		logger.Info("Swept %d idle sessions", len(evicted))
	}
	return evicted, nil
}

// RunSweeper runs Sweep on the given interval until the context ends.
func (m *SessionManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Sweep(ctx); err != nil {
				logger.Warn("Sweep failed: %v", err)
			}
		}
	}
}

// dedupSorted sorts and deduplicates ids.
func dedupSorted(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}
