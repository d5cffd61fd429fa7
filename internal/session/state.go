// Package session implements the practice session state machines.
//
// A session moves NotStarted -> Active -> Complete. Stop returns an active
// session to NotStarted and discards its state. Completion is a single
// transition that notifies exactly one subscriber, registered when the
// engine is constructed.
package session

import (
	"errors"
	"time"

	"github.com/verte-zerg/kanadrill/internal/model"
)

// State is the lifecycle phase of a session.
type State int

const (
	NotStarted State = iota
	Active
	Complete
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Complete:
		return "complete"
	default:
		return "not-started"
	}
}

var (
	// ErrNotActive is returned for operations that need an active session.
	ErrNotActive = errors.New("session is not active")
	// ErrNoSelection is returned when a match is attempted without a selection.
	ErrNoSelection = errors.New("no character selected")
	// ErrNoAnswer is returned when an empty answer is submitted.
	ErrNoAnswer = errors.New("no answer given")
	// ErrUnknownCharacter is returned for ids outside the session pool.
	ErrUnknownCharacter = errors.New("character not in session pool")
	// ErrAlreadyMatched is returned when targeting a pair that is already solved.
	ErrAlreadyMatched = errors.New("character already matched")
	// ErrAlreadyAnswered is returned when the current question was answered
	// and is waiting for Advance.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrNotAnswered is returned by Advance before the question is answered.
	ErrNotAnswered = errors.New("question not answered yet")
	// ErrDuplicateCharacter is returned when a pool lists the same id twice.
	ErrDuplicateCharacter = errors.New("character listed twice in pool")
)

// Outcome is the snapshot handed to the completion subscriber.
type Outcome struct {
	Game      model.Game
	Mode      model.Mode
	Set       model.CharacterSet
	Correct   int
	Incorrect int
	Elapsed   time.Duration
	Questions []model.QuestionResult
}

// CompleteFunc receives the outcome of a completed session.
type CompleteFunc func(Outcome)

// lifecycle holds what every engine shares: phase, counters, elapsed time and
// the completion subscriber.
type lifecycle struct {
	state      State
	correct    int
	incorrect  int
	elapsed    time.Duration
	onComplete CompleteFunc
}

func (l *lifecycle) begin() {
	l.state = Active
	l.correct = 0
	l.incorrect = 0
	l.elapsed = 0
}

func (l *lifecycle) reset() {
	l.state = NotStarted
	l.correct = 0
	l.incorrect = 0
	l.elapsed = 0
}

func (l *lifecycle) finish(out Outcome) {
	if l.state != Active {
		return
	}
	l.state = Complete
	if l.onComplete != nil {
		l.onComplete(out)
	}
}

// State reports the current phase.
func (l *lifecycle) State() State { return l.state }

// IsComplete reports whether the session reached its end.
func (l *lifecycle) IsComplete() bool { return l.state == Complete }

// Correct returns the number of correct attempts.
func (l *lifecycle) Correct() int { return l.correct }

// Incorrect returns the number of incorrect attempts.
func (l *lifecycle) Incorrect() int { return l.incorrect }

// Elapsed returns the time spent while active.
func (l *lifecycle) Elapsed() time.Duration { return l.elapsed }

// Tick advances elapsed time by one second. It is ignored unless active.
func (l *lifecycle) Tick() {
	if l.state != Active {
		return
	}
	l.elapsed += time.Second
}
