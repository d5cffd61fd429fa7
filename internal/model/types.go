// Package model defines shared data structures.
package model

import "time"

// Character is one kana pair with its romanization.
type Character struct {
	ID       string `json:"id" yaml:"id"`
	Romaji   string `json:"romaji" yaml:"romaji"`
	Hiragana string `json:"hiragana" yaml:"hiragana"`
	Katakana string `json:"katakana" yaml:"katakana"`
}

// Game identifies the practice surface that produced a result.
type Game string

const (
	GameMatch  Game = "match"
	GameQuiz   Game = "quiz"
	GameTyping Game = "typing"
)

// Mode selects which forms are shown.
//
// Quiz and typing use ModeHiragana, ModeKatakana or ModeBoth. The matching
// game uses the source-target pairs.
type Mode string

const (
	ModeHiragana         Mode = "hiragana"
	ModeKatakana         Mode = "katakana"
	ModeBoth             Mode = "both"
	ModeRomajiHiragana   Mode = "romaji-hiragana"
	ModeRomajiKatakana   Mode = "romaji-katakana"
	ModeHiraganaKatakana Mode = "hiragana-katakana"
)

// CharacterSet is the pool selection policy.
type CharacterSet string

const (
	SetBasic  CharacterSet = "basic"
	SetDakuon CharacterSet = "dakuon"
	SetAll    CharacterSet = "all"
	SetCustom CharacterSet = "custom"
)

// Order controls how the target side of the matching game is arranged.
type Order string

const (
	OrderShuffled   Order = "shuffled"
	OrderSequential Order = "sequential"
)

// Timeframe bounds the history used for statistics.
type Timeframe string

const (
	TimeframeAll   Timeframe = "all"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// Selection describes how a practice pool is drawn from the catalogs.
type Selection struct {
	Set         CharacterSet
	BasicCount  int
	DakuonCount int
}

// Config defines practice settings.
type Config struct {
	Game          Game
	Mode          Mode
	Selection     Selection
	Order         Order
	Options       int
	FeedbackDelay time.Duration
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Timeframe   Timeframe
	Game        Game
	Last        int
	CurveWindow int
	Top         int
}

// QuestionResult is the per-question breakdown stored with a result.
type QuestionResult struct {
	Character     string `json:"character" yaml:"character" validate:"required"`
	Correct       bool   `json:"correct" yaml:"correct"`
	UserAnswer    string `json:"userAnswer" yaml:"user_answer"`
	CorrectAnswer string `json:"correctAnswer" yaml:"correct_answer" validate:"required"`
}

// ResultRecord captures one completed session. It is never mutated after
// creation.
type ResultRecord struct {
	ID              string           `json:"id" yaml:"id"`
	Timestamp       time.Time        `json:"date" yaml:"date"`
	Game            Game             `json:"game,omitempty" yaml:"game,omitempty" validate:"omitempty,oneof=match quiz typing"`
	Mode            Mode             `json:"mode" yaml:"mode" validate:"required,oneof=hiragana katakana both romaji-hiragana romaji-katakana hiragana-katakana"`
	CharacterSet    CharacterSet     `json:"characterSet" yaml:"character_set" validate:"required,oneof=basic dakuon all custom"`
	TotalQuestions  int              `json:"totalQuestions" yaml:"total_questions" validate:"gte=0"`
	CorrectAnswers  int              `json:"correctAnswers" yaml:"correct_answers" validate:"gte=0"`
	WrongAnswers    int              `json:"wrongAnswers" yaml:"wrong_answers" validate:"gte=0"`
	DurationSeconds int              `json:"durationSeconds,omitempty" yaml:"duration_seconds,omitempty" validate:"gte=0"`
	Questions       []QuestionResult `json:"questions" yaml:"questions" validate:"dive"`
}

// Accuracy returns the percentage of correct attempts in the record.
func (r ResultRecord) Accuracy() float64 {
	attempts := r.CorrectAnswers + r.WrongAnswers
	if attempts == 0 {
		return 0
	}
	return float64(r.CorrectAnswers) / float64(attempts) * 100
}

// CharacterStat aggregates attempts for one displayed character.
type CharacterStat struct {
	Character       string  `json:"character" yaml:"character"`
	TotalAttempts   int     `json:"totalAttempts" yaml:"total_attempts"`
	CorrectAttempts int     `json:"correctAttempts" yaml:"correct_attempts"`
	WrongAttempts   int     `json:"wrongAttempts" yaml:"wrong_attempts"`
	Accuracy        float64 `json:"accuracy" yaml:"accuracy"`
}

// Overall summarizes a set of results.
type Overall struct {
	TotalSessions   int     `json:"totalQuizzes" yaml:"total_sessions"`
	TotalQuestions  int     `json:"totalQuestions" yaml:"total_questions"`
	TotalCorrect    int     `json:"totalCorrect" yaml:"total_correct"`
	AverageAccuracy float64 `json:"averageAccuracy" yaml:"average_accuracy"`
}
