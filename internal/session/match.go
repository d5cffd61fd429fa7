package session

import (
	"fmt"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// Match is the matching game: pick a source tile, then the target tile of the
// same character. Pairing is decided by character id, never by romaji, since
// romaji repeats across the dakuon catalog.
type Match struct {
	lifecycle

	gen  *generator.Generator
	mode model.Mode
	set  model.CharacterSet

	pool         []model.Character
	index        map[string]int
	presentation []model.Character
	target       []model.Character

	matched  map[string]bool
	selected string
	// first source id dropped on each target id
	firstDrop map[string]string
}

// NewMatch returns a matching game in the NotStarted state.
func NewMatch(gen *generator.Generator, onComplete CompleteFunc) *Match {
	return &Match{
		lifecycle: lifecycle{onComplete: onComplete},
		gen:       gen,
	}
}

// Start draws a new pool and activates the game. On error the game keeps its
// previous state.
func (m *Match) Start(sel model.Selection, order model.Order, mode model.Mode) error {
	if err := checkMatchMode(mode); err != nil {
		return err
	}
	pool, err := m.gen.Pool(sel)
	if err != nil {
		return err
	}
	return m.Begin(pool, sel.Set, order, mode)
}

// Begin activates the game over an explicit pool. The pool is copied.
func (m *Match) Begin(pool []model.Character, set model.CharacterSet, order model.Order, mode model.Mode) error {
	if err := checkMatchMode(mode); err != nil {
		return err
	}
	if len(pool) == 0 {
		return generator.ErrEmptyPool
	}
	index := make(map[string]int, len(pool))
	for i, ch := range pool {
		if _, dup := index[ch.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateCharacter, ch.ID)
		}
		index[ch.ID] = i
	}
	pool = append([]model.Character(nil), pool...)

	m.mode = mode
	m.set = set
	m.pool = pool
	m.index = index
	m.presentation = m.gen.Shuffle(pool)
	if order == model.OrderSequential {
		m.target = append([]model.Character(nil), pool...)
	} else {
		m.target = m.gen.Shuffle(pool)
	}
	m.matched = make(map[string]bool, len(pool))
	m.firstDrop = make(map[string]string, len(pool))
	m.selected = ""
	m.begin()
	return nil
}

// Select marks a source character as pending. Selecting a matched character
// is ignored.
func (m *Match) Select(id string) error {
	if m.state != Active {
		return ErrNotActive
	}
	if _, ok := m.index[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCharacter, id)
	}
	if m.matched[id] {
		return nil
	}
	m.selected = id
	return nil
}

// AttemptMatch pairs the selected character with a target. It reports whether
// the pair matched.
func (m *Match) AttemptMatch(targetID string) (bool, error) {
	if m.state != Active {
		return false, ErrNotActive
	}
	if m.selected == "" {
		return false, ErrNoSelection
	}
	if _, ok := m.index[targetID]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownCharacter, targetID)
	}
	if m.matched[targetID] {
		return false, fmt.Errorf("%w: %q", ErrAlreadyMatched, targetID)
	}

	source := m.selected
	m.selected = ""
	if _, seen := m.firstDrop[targetID]; !seen {
		m.firstDrop[targetID] = source
	}
	if source != targetID {
		m.incorrect++
		return false, nil
	}
	m.matched[source] = true
	m.correct++
	if len(m.matched) == len(m.pool) {
		m.finish(m.outcome())
	}
	return true, nil
}

// Stop abandons the game and discards all state.
func (m *Match) Stop() {
	m.reset()
	m.pool = nil
	m.index = nil
	m.presentation = nil
	m.target = nil
	m.matched = nil
	m.firstDrop = nil
	m.selected = ""
}

// Mode returns the source/target pairing of the current game.
func (m *Match) Mode() model.Mode { return m.mode }

// Pool returns a copy of the drawn characters.
func (m *Match) Pool() []model.Character {
	return append([]model.Character(nil), m.pool...)
}

// PresentationOrder returns a copy of the source-side order.
func (m *Match) PresentationOrder() []model.Character {
	return append([]model.Character(nil), m.presentation...)
}

// TargetOrder returns a copy of the target-side order.
func (m *Match) TargetOrder() []model.Character {
	return append([]model.Character(nil), m.target...)
}

// Selected returns the pending source id, or "" when none.
func (m *Match) Selected() string { return m.selected }

// Matched reports whether the character with id was paired.
func (m *Match) Matched(id string) bool { return m.matched[id] }

// MatchedCount returns the number of solved pairs.
func (m *Match) MatchedCount() int { return len(m.matched) }

// Remaining returns the number of unsolved pairs.
func (m *Match) Remaining() int { return len(m.pool) - len(m.matched) }

func (m *Match) outcome() Outcome {
	questions := make([]model.QuestionResult, 0, len(m.target))
	for _, t := range m.target {
		src := m.pool[m.index[m.firstDrop[t.ID]]]
		questions = append(questions, model.QuestionResult{
			Character:     kana.Target(t, m.mode),
			Correct:       src.ID == t.ID,
			UserAnswer:    kana.Source(src, m.mode),
			CorrectAnswer: kana.Source(t, m.mode),
		})
	}
	return Outcome{
		Game:      model.GameMatch,
		Mode:      m.mode,
		Set:       m.set,
		Correct:   m.correct,
		Incorrect: m.incorrect,
		Elapsed:   m.elapsed,
		Questions: questions,
	}
}

func checkMatchMode(mode model.Mode) error {
	switch mode {
	case model.ModeRomajiHiragana, model.ModeRomajiKatakana, model.ModeHiraganaKatakana:
		return nil
	default:
		return fmt.Errorf("unsupported matching mode %q", mode)
	}
}
