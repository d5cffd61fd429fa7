package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
)

// QuizModel is the multiple choice screen.
type QuizModel struct {
	drillScreen[session.QuizQuestion]
	cursor int
	chosen string
}

// NewQuizModel builds a quiz over the configured selection.
func NewQuizModel(env Env) (*QuizModel, error) {
	m := &QuizModel{}
	build := func() ([]session.QuizQuestion, error) {
		return session.BuildQuiz(env.Gen, env.Config.Selection, env.Config.Mode, env.Config.Options)
	}
	if err := m.setup(env, model.GameQuiz, session.NewQuiz, build); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *QuizModel) Init() tea.Cmd {
	return tickCmd()
}

func (m *QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasComplete := m.drill.IsComplete()
	hadVerdict := m.verdict != nil
	cmd, handled := m.update(msg)
	if (hadVerdict && m.verdict == nil) || (wasComplete && !m.drill.IsComplete()) {
		m.cursor = 0
		m.chosen = ""
	}
	if handled {
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.verdict != nil {
		return m, nil
	}
	q, ok := m.drill.Current()
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q":
		m.drill.Stop()
		return m, tea.Quit
	case "left", "h", "up", "k", "shift+tab":
		m.cursor = moveCursor(m.cursor, -1, len(q.Options))
	case "right", "l", "down", "j", "tab":
		m.cursor = moveCursor(m.cursor, 1, len(q.Options))
	case "enter", " ":
		return m, m.choose(q, m.cursor)
	default:
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(q.Options) {
			m.cursor = n - 1
			return m, m.choose(q, n-1)
		}
	}
	return m, nil
}

func (m *QuizModel) choose(q session.QuizQuestion, idx int) tea.Cmd {
	if idx < 0 || idx >= len(q.Options) {
		return nil
	}
	m.chosen = q.Options[idx]
	return m.answer(m.chosen)
}

func (m *QuizModel) View() string {
	q, ok := m.drill.Current()
	if !ok {
		return m.view("")
	}
	return m.view(promptStyle.Render(q.Prompt()) + "\n\n" + m.renderOptions(q))
}

func (m *QuizModel) renderOptions(q session.QuizQuestion) string {
	labels := make([]string, len(q.Options))
	for i, opt := range q.Options {
		labels[i] = strconv.Itoa(i+1) + " " + opt
	}
	width := labelWidth(labels)
	tiles := make([]string, len(labels))
	for i, label := range labels {
		style := pendingStyle
		switch {
		case m.verdict != nil && q.Options[i] == q.Expected():
			style = correctStyle
		case m.verdict != nil && q.Options[i] == m.chosen:
			style = incorrectStyle
		case m.verdict == nil && i == m.cursor:
			style = cursorStyle
		}
		tiles[i] = renderTile(label, width, style)
	}
	return renderGrid(tiles, gridColumns(m.width*7/10, tileWidth(width)))
}
