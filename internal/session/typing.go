package session

import (
	"strings"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// TypingQuestion asks for the romaji of one character.
type TypingQuestion struct {
	Character model.Character
	Mode      model.Mode
}

func (q TypingQuestion) Prompt() string   { return kana.Prompt(q.Character, q.Mode) }
func (q TypingQuestion) Expected() string { return q.Character.Romaji }

// Typing is a free-text drill.
type Typing = Drill[TypingQuestion]

// NormalizeRomaji trims and lowercases typed input.
func NormalizeRomaji(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewTyping returns a typing drill. Input is compared after NormalizeRomaji.
func NewTyping(onComplete CompleteFunc) *Typing {
	return NewDrill(model.GameTyping, func(q TypingQuestion, input string) bool {
		return NormalizeRomaji(input) == q.Expected()
	}, onComplete)
}

// BuildTyping draws a shuffled question set.
func BuildTyping(gen *generator.Generator, sel model.Selection, mode model.Mode) ([]TypingQuestion, error) {
	if err := checkScriptMode(mode); err != nil {
		return nil, err
	}
	pool, err := gen.Pool(sel)
	if err != nil {
		return nil, err
	}
	questions := make([]TypingQuestion, 0, len(pool))
	for _, ch := range gen.Shuffle(pool) {
		questions = append(questions, TypingQuestion{Character: ch, Mode: mode})
	}
	return questions, nil
}
