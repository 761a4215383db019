// Package tui implements the interactive chat interface. It follows
// the Elm architecture via Bubbletea: the App model holds the session
// transcript, messages carry answers back from the core.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/juribot-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/juribot-cli/internal/core/domain"
)

// entry is one rendered line group of the transcript.
type entry struct {
	speaker string
	feature domain.Feature
	text    string
	err     bool
}

// App is the chat application model.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	input   textinput.Model
	spinner spinner.Model

	sessionID  string
	feature    domain.Feature
	transcript []entry
	waiting    bool
	err        error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the chat application. An empty sessionID makes the
// app create a fresh session on startup.
func NewApp(ports *Ports, sessionID string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Ask about your documents..."
	ti.Focus()
	ti.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		input:     ti,
		spinner:   sp,
		sessionID: sessionID,
		feature:   domain.FeatureChat,
		width:     80,
		height:    24,
	}, nil
}

// WithContext sets the context used for core calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if a.sessionID == "" {
		cmds = append(cmds, a.createSession())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.SessionCreated:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.sessionID = msg.SessionID
		return a, nil

	case messages.AnswerReceived:
		a.waiting = false
		if msg.Err != nil {
			a.transcript = append(a.transcript, entry{
				speaker: "juribot",
				feature: a.feature,
				text:    msg.Err.Error(),
				err:     true,
			})
			return a, nil
		}
		a.transcript = append(a.transcript, entry{
			speaker: "juribot",
			feature: msg.Answer.Feature,
			text:    renderAnswer(msg.Answer),
		})
		return a, nil

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return a, tea.Quit

	case tea.KeyTab:
		a.feature = nextFeature(a.feature)
		return a, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(a.input.Value())
		if query == "" || a.waiting || a.sessionID == "" {
			return a, nil
		}
		a.input.SetValue("")
		a.transcript = append(a.transcript, entry{
			speaker: "you",
			feature: a.feature,
			text:    query,
		})
		a.waiting = true
		return a, tea.Batch(a.ask(query), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// View renders the chat screen.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("JuriBot"))
	b.WriteString(a.styles.Muted.Render("  tab: switch feature  esc: quit"))
	b.WriteString("\n\n")

	b.WriteString(a.renderTranscript())
	b.WriteString("\n")
	b.WriteString(a.styles.InputField.Render(a.input.View()))
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	return b.String()
}

func (a *App) renderTranscript() string {
	// Keep the tail of the transcript that fits above the input.
	budget := a.height - 8
	if budget < 3 {
		budget = 3
	}

	var lines []string
	for _, e := range a.transcript {
		style := a.styles.Assistant
		if e.err {
			style = a.styles.Error
		}
		label := a.styles.User.Render(e.speaker)
		if e.speaker != "you" {
			label = a.styles.Title.Render(e.speaker)
		}
		wrapped := lipgloss.NewStyle().Width(a.width - 2).Render(style.Render(e.text))
		lines = append(lines, label+a.styles.Muted.Render(" ["+e.feature.String()+"]"))
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	}
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}
	return strings.Join(lines, "\n")
}

func (a *App) statusLine() string {
	var parts []string
	if a.sessionID != "" {
		parts = append(parts, "session "+shortID(a.sessionID))
	} else {
		parts = append(parts, "creating session...")
	}
	parts = append(parts, "feature: "+a.feature.String())
	if a.waiting {
		parts = append(parts, a.spinner.View()+" thinking")
	}
	if a.err != nil {
		parts = append(parts, a.styles.Error.Render(a.err.Error()))
	}
	return a.styles.StatusBar.Render(strings.Join(parts, "  |  "))
}

// Commands.

func (a *App) createSession() tea.Cmd {
	return func() tea.Msg {
		session, err := a.ports.Session.Create(a.ctx)
		if err != nil {
			return messages.SessionCreated{Err: err}
		}
		return messages.SessionCreated{SessionID: session.ID}
	}
}

func (a *App) ask(query string) tea.Cmd {
	sessionID := a.sessionID
	feature := a.feature
	return func() tea.Msg {
		answer, err := a.ports.Pipeline.Ask(a.ctx, sessionID, query, feature)
		return messages.AnswerReceived{Answer: answer, Err: err}
	}
}

// Helpers.

func renderAnswer(answer *domain.Answer) string {
	text := answer.Text
	if answer.LastResortContext {
		text = "(weak document match, answering from the first passages)\n" + text
	}
	if answer.Cost != nil && answer.Cost.BaselineINR > 0 {
		text += fmt.Sprintf("\nBaseline: ₹%.0f", answer.Cost.BaselineINR)
	}
	return text
}

func nextFeature(f domain.Feature) domain.Feature {
	switch f {
	case domain.FeatureChat:
		return domain.FeatureCaseLaw
	case domain.FeatureCaseLaw:
		return domain.FeatureCost
	default:
		return domain.FeatureChat
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
