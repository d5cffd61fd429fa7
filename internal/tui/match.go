package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
)

type panel int

const (
	sourcePanel panel = iota
	targetPanel
)

// MatchModel is the pair matching screen.
type MatchModel struct {
	env       Env
	game      *session.Match
	width     int
	height    int
	focus     panel
	srcCursor int
	dstCursor int
	status    string
	statusBad bool
	statusSeq int
	record    *model.ResultRecord
	saveErr   error
	footer    footerStats
}

// NewMatchModel starts a matching session over the configured selection.
func NewMatchModel(env Env) (*MatchModel, error) {
	m := &MatchModel{env: env}
	m.game = session.NewMatch(env.Gen, m.onComplete)
	m.footer = loadFooter(env.History, model.GameMatch)
	if err := m.restart(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MatchModel) restart() error {
	cfg := m.env.Config
	if err := m.game.Start(cfg.Selection, cfg.Order, cfg.Mode); err != nil {
		return err
	}
	m.focus = sourcePanel
	m.srcCursor = 0
	m.dstCursor = 0
	m.status = ""
	m.statusSeq++
	m.record = nil
	m.saveErr = nil
	return nil
}

func (m *MatchModel) onComplete(out session.Outcome) {
	if m.env.Recorder == nil {
		return
	}
	rec, err := m.env.Recorder.Complete(context.Background(), out)
	m.record = &rec
	m.saveErr = err
	m.footer.add(rec)
}

func (m *MatchModel) Init() tea.Cmd {
	return tickCmd()
}

func (m *MatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.game.Tick()
		return m, tickCmd()
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *MatchModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.game.Stop()
		return tea.Quit
	}
	if m.game.IsComplete() {
		switch msg.String() {
		case "q", "esc":
			return tea.Quit
		case "r", "enter":
			if err := m.restart(); err != nil {
				return m.setStatus(err.Error(), true)
			}
		}
		return nil
	}

	n := len(m.game.Pool())
	cols := m.columns()
	cursor := &m.srcCursor
	if m.focus == targetPanel {
		cursor = &m.dstCursor
	}
	switch msg.String() {
	case "q":
		m.game.Stop()
		return tea.Quit
	case "esc":
		m.focus = sourcePanel
	case "tab":
		m.focus = 1 - m.focus
	case "left", "h":
		*cursor = moveCursor(*cursor, -1, n)
	case "right", "l":
		*cursor = moveCursor(*cursor, 1, n)
	case "up", "k":
		*cursor = moveCursor(*cursor, -cols, n)
	case "down", "j":
		*cursor = moveCursor(*cursor, cols, n)
	case "enter", " ":
		return m.activate()
	}
	return nil
}

// activate selects the source under the cursor or drops the selection on
// the target under the cursor.
func (m *MatchModel) activate() tea.Cmd {
	mode := m.game.Mode()
	if m.focus == sourcePanel {
		ch := m.game.PresentationOrder()[m.srcCursor]
		if m.game.Matched(ch.ID) {
			return m.setStatus("Already matched", true)
		}
		if err := m.game.Select(ch.ID); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.focus = targetPanel
		return nil
	}

	selected, _ := kana.Lookup(m.game.Selected())
	target := m.game.TargetOrder()[m.dstCursor]
	ok, err := m.game.AttemptMatch(target.ID)
	switch {
	case errors.Is(err, session.ErrNoSelection):
		m.focus = sourcePanel
		return m.setStatus("Pick a source first", true)
	case errors.Is(err, session.ErrAlreadyMatched):
		return m.setStatus("Already matched", true)
	case err != nil:
		return m.setStatus(err.Error(), true)
	}
	m.focus = sourcePanel
	m.srcCursor = m.nextUnmatched(m.srcCursor)
	if ok {
		return m.setStatus(fmt.Sprintf("✓ %s = %s", kana.Source(selected, mode), kana.Target(target, mode)), false)
	}
	return m.setStatus(fmt.Sprintf("✗ %s ≠ %s", kana.Source(selected, mode), kana.Target(target, mode)), true)
}

func (m *MatchModel) setStatus(text string, bad bool) tea.Cmd {
	m.status = text
	m.statusBad = bad
	m.statusSeq++
	return after(m.env.Config.FeedbackDelay, clearStatusMsg{seq: m.statusSeq})
}

// nextUnmatched returns the first unmatched source at or after from,
// wrapping around.
func (m *MatchModel) nextUnmatched(from int) int {
	order := m.game.PresentationOrder()
	for i := range order {
		idx := (from + i) % len(order)
		if !m.game.Matched(order[idx].ID) {
			return idx
		}
	}
	return from
}

func (m *MatchModel) labels() (sources, targets []string) {
	mode := m.game.Mode()
	for _, ch := range m.game.PresentationOrder() {
		sources = append(sources, kana.Source(ch, mode))
	}
	for _, ch := range m.game.TargetOrder() {
		targets = append(targets, kana.Target(ch, mode))
	}
	return sources, targets
}

func (m *MatchModel) cellWidth() int {
	sources, targets := m.labels()
	return max(labelWidth(sources), labelWidth(targets))
}

func (m *MatchModel) columns() int {
	return gridColumns(m.width*7/10, tileWidth(m.cellWidth()))
}

func (m *MatchModel) renderPanel(title string, p panel, chars []model.Character, labels []string, cursor int, width int) string {
	tiles := make([]string, len(chars))
	for i, ch := range chars {
		style := pendingStyle
		switch {
		case m.game.Matched(ch.ID):
			style = matchedStyle
		case p == sourcePanel && ch.ID == m.game.Selected():
			style = selectedStyle
		case p == m.focus && i == cursor:
			style = cursorStyle
		}
		tiles[i] = renderTile(labels[i], width, style)
	}
	marker := "  "
	if p == m.focus {
		marker = "▸ "
	}
	return labelStyle.Render(marker+title) + "\n" + renderGrid(tiles, m.columns())
}

func (m *MatchModel) View() string {
	if m.game.IsComplete() {
		content := renderResults(m.record, m.game.Correct(), m.game.Incorrect(), m.saveErr, m.game.Elapsed())
		return place(m.width, m.height, content, "")
	}
	sources, targets := m.labels()
	width := max(labelWidth(sources), labelWidth(targets))
	status := ""
	if m.status != "" {
		style := correctStyle
		if m.statusBad {
			style = incorrectStyle
		}
		status = style.Render(m.status)
	}
	content := strings.Join([]string{
		titleStyle.Render(fmt.Sprintf("Match · %s · %s", m.game.Mode(), m.env.Config.Selection.Set)),
		"",
		m.renderPanel("Source", sourcePanel, m.game.PresentationOrder(), sources, m.srcCursor, width),
		"",
		m.renderPanel("Target", targetPanel, m.game.TargetOrder(), targets, m.dstCursor, width),
		"",
		status,
	}, "\n")
	footer := renderFooter(m.game.MatchedCount(), len(m.game.Pool()), m.game.Correct(), m.game.Incorrect(), m.game.Elapsed(), m.footer)
	return place(m.width, m.height, content, footer)
}
