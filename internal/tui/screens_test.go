package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/record"
	"github.com/verte-zerg/kanadrill/internal/store"
)

var errTest = errors.New("boom")

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testEnv(t *testing.T, cfg model.Config) (Env, *store.ResultLog) {
	t.Helper()
	log := store.NewResultLog(store.NewMemory())
	return Env{
		Config:   cfg,
		Gen:      generator.NewSeeded(7),
		Recorder: record.New(log),
		History:  log,
	}, log
}

func listResults(t *testing.T, log *store.ResultLog) []model.ResultRecord {
	t.Helper()
	records, err := log.List(context.Background())
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	return records
}

func TestMatchModelCompletesAndPersists(t *testing.T) {
	env, log := testEnv(t, model.Config{
		Mode:      model.ModeRomajiHiragana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
		Order:     model.OrderShuffled,
	})
	m, err := NewMatchModel(env)
	if err != nil {
		t.Fatalf("new match model: %v", err)
	}

	sources := m.game.PresentationOrder()
	targets := m.game.TargetOrder()
	for i, src := range sources {
		m.srcCursor = i
		m.Update(enterKey)
		if m.focus != targetPanel || m.game.Selected() != src.ID {
			t.Fatalf("select %s: focus=%v selected=%q", src.ID, m.focus, m.game.Selected())
		}
		for j, dst := range targets {
			if dst.ID == src.ID {
				m.dstCursor = j
			}
		}
		m.Update(enterKey)
	}

	if !m.game.IsComplete() {
		t.Fatalf("expected match to be complete, %d remaining", m.game.Remaining())
	}
	records := listResults(t, log)
	if len(records) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(records))
	}
	if records[0].Game != model.GameMatch || records[0].CorrectAnswers != 5 || records[0].WrongAnswers != 0 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if !strings.Contains(m.View(), "Session complete") {
		t.Fatalf("expected results view, got:\n%s", m.View())
	}

	m.Update(runeKey("r"))
	if m.game.IsComplete() || m.game.MatchedCount() != 0 {
		t.Fatalf("expected a fresh session after restart")
	}
}

func TestMatchModelWrongDropKeepsPlaying(t *testing.T) {
	env, _ := testEnv(t, model.Config{
		Mode:      model.ModeRomajiKatakana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
		Order:     model.OrderSequential,
	})
	m, err := NewMatchModel(env)
	if err != nil {
		t.Fatalf("new match model: %v", err)
	}

	m.Update(enterKey)
	selected := m.game.Selected()
	for j, dst := range m.game.TargetOrder() {
		if dst.ID != selected {
			m.dstCursor = j
			break
		}
	}
	m.Update(enterKey)

	if m.game.Incorrect() != 1 || m.game.MatchedCount() != 0 {
		t.Fatalf("incorrect=%d matched=%d", m.game.Incorrect(), m.game.MatchedCount())
	}
	if !m.statusBad || !strings.HasPrefix(m.status, "✗") {
		t.Fatalf("expected a mismatch status, got %q", m.status)
	}
	if m.focus != sourcePanel {
		t.Fatalf("focus should return to the source panel")
	}

	m.Update(clearStatusMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Fatalf("status should clear, got %q", m.status)
	}
}

func TestMatchModelTargetWithoutSelection(t *testing.T) {
	env, _ := testEnv(t, model.Config{
		Mode:      model.ModeHiraganaKatakana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
	})
	m, err := NewMatchModel(env)
	if err != nil {
		t.Fatalf("new match model: %v", err)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(enterKey)
	if m.status != "Pick a source first" || m.focus != sourcePanel {
		t.Fatalf("status=%q focus=%v", m.status, m.focus)
	}
	if m.game.Correct()+m.game.Incorrect() != 0 {
		t.Fatalf("attempt without selection should not score")
	}
}

func TestQuizModelAnswersByNumber(t *testing.T) {
	env, log := testEnv(t, model.Config{
		Mode:      model.ModeHiragana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
		Options:   4,
	})
	m, err := NewQuizModel(env)
	if err != nil {
		t.Fatalf("new quiz model: %v", err)
	}

	for i := 0; i < 5; i++ {
		q, ok := m.drill.Current()
		if !ok {
			t.Fatalf("question %d missing", i)
		}
		pick := -1
		for idx, opt := range q.Options {
			if opt == q.Expected() {
				pick = idx
			}
		}
		if i == 0 {
			pick = (pick + 1) % len(q.Options)
		}
		m.Update(runeKey(strconv.Itoa(pick + 1)))
		if m.verdict == nil {
			t.Fatalf("question %d: expected a verdict", i)
		}
		m.Update(advanceMsg{seq: m.seq})
	}

	if !m.drill.IsComplete() {
		t.Fatalf("expected quiz to be complete")
	}
	records := listResults(t, log)
	if len(records) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(records))
	}
	if records[0].CorrectAnswers != 4 || records[0].WrongAnswers != 1 || records[0].TotalQuestions != 5 {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestQuizModelIgnoresStaleAdvance(t *testing.T) {
	env, _ := testEnv(t, model.Config{
		Mode:      model.ModeKatakana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
	})
	m, err := NewQuizModel(env)
	if err != nil {
		t.Fatalf("new quiz model: %v", err)
	}
	m.Update(enterKey)
	stale := m.seq
	m.Update(enterKey)
	m.Update(advanceMsg{seq: stale})
	if cursor, _ := m.drill.Position(); cursor != 1 {
		t.Fatalf("stale advance moved the cursor to %d", cursor)
	}
}

func TestTypingModelSubmitsInput(t *testing.T) {
	env, log := testEnv(t, model.Config{
		Mode:      model.ModeBoth,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
	})
	m, err := NewTypingModel(env)
	if err != nil {
		t.Fatalf("new typing model: %v", err)
	}

	m.Update(enterKey)
	if m.status != "Type an answer first" || m.verdict != nil {
		t.Fatalf("empty submit: status=%q", m.status)
	}

	for i := 0; i < 5; i++ {
		q, _ := m.drill.Current()
		m.Update(runeKey(strings.ToUpper(q.Expected())))
		m.Update(enterKey)
		if m.verdict == nil || !m.verdict.Correct {
			t.Fatalf("question %d: expected a correct verdict, got %+v", i, m.verdict)
		}
		if m.input.Value() != "" {
			t.Fatalf("input should reset after submit")
		}
		m.Update(enterKey)
	}

	if !m.drill.IsComplete() {
		t.Fatalf("expected typing drill to be complete")
	}
	records := listResults(t, log)
	if len(records) != 1 || records[0].Game != model.GameTyping || records[0].CorrectAnswers != 5 {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestTypingModelShowsSaveError(t *testing.T) {
	env, _ := testEnv(t, model.Config{
		Mode:      model.ModeHiragana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
	})
	env.Recorder = record.New(failingLog{})
	m, err := NewTypingModel(env)
	if err != nil {
		t.Fatalf("new typing model: %v", err)
	}
	for i := 0; i < 5; i++ {
		m.Update(runeKey("x"))
		m.Update(enterKey)
		m.Update(enterKey)
	}
	if !m.drill.IsComplete() {
		t.Fatalf("a storage failure must not block completion")
	}
	if !strings.Contains(m.View(), "Result not saved") {
		t.Fatalf("expected save error in view:\n%s", m.View())
	}
}

func TestTypingModelResultsWithoutRecorder(t *testing.T) {
	env, _ := testEnv(t, model.Config{
		Mode:      model.ModeHiragana,
		Selection: model.Selection{Set: model.SetCustom, BasicCount: 5},
	})
	env.Recorder = nil
	m, err := NewTypingModel(env)
	if err != nil {
		t.Fatalf("new typing model: %v", err)
	}
	for i := 0; i < 5; i++ {
		q, _ := m.drill.Current()
		answer := q.Expected()
		if i == 0 {
			answer = "x"
		}
		m.Update(runeKey(answer))
		m.Update(enterKey)
		m.Update(enterKey)
	}
	if !m.drill.IsComplete() {
		t.Fatalf("expected typing drill to be complete")
	}
	view := m.View()
	for _, want := range []string{"Session complete", "Score     4/5", "Accuracy  80.0%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

type failingLog struct{}

func (failingLog) Append(context.Context, model.ResultRecord) error { return errTest }
