package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
)

const answerCharLimit = 8

// TypingModel is the free text romaji screen.
type TypingModel struct {
	drillScreen[session.TypingQuestion]
	input textinput.Model
}

// NewTypingModel builds a typing drill over the configured selection.
func NewTypingModel(env Env) (*TypingModel, error) {
	ti := textinput.New()
	ti.Placeholder = "romaji"
	ti.CharLimit = answerCharLimit
	ti.Prompt = "> "
	ti.Focus()

	m := &TypingModel{input: ti}
	build := func() ([]session.TypingQuestion, error) {
		return session.BuildTyping(env.Gen, env.Config.Selection, env.Config.Mode)
	}
	if err := m.setup(env, model.GameTyping, session.NewTyping, build); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TypingModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), textinput.Blink)
}

func (m *TypingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd, handled := m.update(msg)
	if handled {
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		return m, inputCmd
	}
	if m.verdict != nil || m.drill.IsComplete() {
		return m, nil
	}
	if key.Type == tea.KeyEnter {
		cmd := m.answer(m.input.Value())
		if m.verdict != nil {
			m.input.Reset()
		}
		return m, cmd
	}
	m.status = ""
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

func (m *TypingModel) View() string {
	q, ok := m.drill.Current()
	if !ok {
		return m.view("")
	}
	return m.view(promptStyle.Render(q.Prompt()) + "\n\n" + m.input.View())
}
