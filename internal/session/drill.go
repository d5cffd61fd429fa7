package session

import (
	"strings"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// Unit is one question of a cursor-driven session.
type Unit interface {
	// Prompt is the character form shown to the user.
	Prompt() string
	// Expected is the correct answer.
	Expected() string
}

// Verdict is the result of answering one question.
type Verdict struct {
	Correct  bool
	Given    string
	Expected string
}

// Drill walks a fixed sequence of questions. Answering records a verdict for
// the current question; Advance moves to the next one and completes the
// session after the last.
type Drill[Q Unit] struct {
	lifecycle

	game  model.Game
	check func(Q, string) bool

	mode  model.Mode
	set   model.CharacterSet
	units []Q

	verdicts []Verdict
	cursor   int
	answered bool
}

// NewDrill returns a drill in the NotStarted state. check decides whether an
// input answers a question.
func NewDrill[Q Unit](game model.Game, check func(Q, string) bool, onComplete CompleteFunc) *Drill[Q] {
	return &Drill[Q]{
		lifecycle: lifecycle{onComplete: onComplete},
		game:      game,
		check:     check,
	}
}

// Start activates the drill over units. The slice is copied.
func (d *Drill[Q]) Start(units []Q, mode model.Mode, set model.CharacterSet) error {
	if len(units) == 0 {
		return generator.ErrEmptyPool
	}
	d.units = append([]Q(nil), units...)
	d.mode = mode
	d.set = set
	d.verdicts = make([]Verdict, 0, len(units))
	d.cursor = 0
	d.answered = false
	d.begin()
	return nil
}

// Current returns the question under the cursor.
func (d *Drill[Q]) Current() (Q, bool) {
	var zero Q
	if d.state != Active || d.cursor >= len(d.units) {
		return zero, false
	}
	return d.units[d.cursor], true
}

// Answer checks input against the current question and records the verdict.
func (d *Drill[Q]) Answer(input string) (Verdict, error) {
	if d.state != Active {
		return Verdict{}, ErrNotActive
	}
	if strings.TrimSpace(input) == "" {
		return Verdict{}, ErrNoAnswer
	}
	if d.answered {
		return Verdict{}, ErrAlreadyAnswered
	}
	q := d.units[d.cursor]
	v := Verdict{
		Correct:  d.check(q, input),
		Given:    input,
		Expected: q.Expected(),
	}
	if v.Correct {
		d.correct++
	} else {
		d.incorrect++
	}
	d.verdicts = append(d.verdicts, v)
	d.answered = true
	return v, nil
}

// Advance moves past an answered question. After the last question the
// session completes.
func (d *Drill[Q]) Advance() error {
	if d.state != Active {
		return ErrNotActive
	}
	if !d.answered {
		return ErrNotAnswered
	}
	d.answered = false
	d.cursor++
	if d.cursor >= len(d.units) {
		d.finish(d.outcome())
	}
	return nil
}

// Answered reports whether the current question waits for Advance.
func (d *Drill[Q]) Answered() bool { return d.answered }

// Stop abandons the drill and discards all state.
func (d *Drill[Q]) Stop() {
	d.reset()
	d.units = nil
	d.verdicts = nil
	d.cursor = 0
	d.answered = false
}

// Position returns the zero-based cursor and the number of questions.
func (d *Drill[Q]) Position() (int, int) { return d.cursor, len(d.units) }

// Mode returns the display mode of the drill.
func (d *Drill[Q]) Mode() model.Mode { return d.mode }

// Answers returns a copy of the verdicts recorded so far.
func (d *Drill[Q]) Answers() []Verdict {
	return append([]Verdict(nil), d.verdicts...)
}

func (d *Drill[Q]) outcome() Outcome {
	questions := make([]model.QuestionResult, 0, len(d.verdicts))
	for i, v := range d.verdicts {
		questions = append(questions, model.QuestionResult{
			Character:     d.units[i].Prompt(),
			Correct:       v.Correct,
			UserAnswer:    v.Given,
			CorrectAnswer: v.Expected,
		})
	}
	return Outcome{
		Game:      d.game,
		Mode:      d.mode,
		Set:       d.set,
		Correct:   d.correct,
		Incorrect: d.incorrect,
		Elapsed:   d.elapsed,
		Questions: questions,
	}
}
