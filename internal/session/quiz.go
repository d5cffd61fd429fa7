package session

import (
	"fmt"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// DefaultOptions is the number of choices per quiz question.
const DefaultOptions = 5

// QuizQuestion is a multiple-choice question.
type QuizQuestion struct {
	Character model.Character `json:"character"`
	Mode      model.Mode      `json:"mode"`
	Options   []string        `json:"options"`
}

func (q QuizQuestion) Prompt() string   { return kana.Prompt(q.Character, q.Mode) }
func (q QuizQuestion) Expected() string { return q.Character.Romaji }

// Quiz is a multiple-choice drill.
type Quiz = Drill[QuizQuestion]

// NewQuiz returns a quiz drill. The chosen option must equal the romaji
// exactly.
func NewQuiz(onComplete CompleteFunc) *Quiz {
	return NewDrill(model.GameQuiz, func(q QuizQuestion, input string) bool {
		return input == q.Expected()
	}, onComplete)
}

// BuildQuiz draws a shuffled question set with options taken from the full
// catalog.
func BuildQuiz(gen *generator.Generator, sel model.Selection, mode model.Mode, options int) ([]QuizQuestion, error) {
	if err := checkScriptMode(mode); err != nil {
		return nil, err
	}
	if options < 2 {
		options = DefaultOptions
	}
	pool, err := gen.Pool(sel)
	if err != nil {
		return nil, err
	}
	universe := kana.All()
	questions := make([]QuizQuestion, 0, len(pool))
	for _, ch := range gen.Shuffle(pool) {
		questions = append(questions, QuizQuestion{
			Character: ch,
			Mode:      mode,
			Options:   gen.Options(ch, universe, options),
		})
	}
	return questions, nil
}

func checkScriptMode(mode model.Mode) error {
	switch mode {
	case model.ModeHiragana, model.ModeKatakana, model.ModeBoth:
		return nil
	default:
		return fmt.Errorf("unsupported mode %q: use hiragana, katakana or both", mode)
	}
}
