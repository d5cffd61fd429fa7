package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
	"github.com/verte-zerg/kanadrill/internal/store"
)

var fixedNow = time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)

type failingAppender struct{ err error }

func (f failingAppender) Append(context.Context, model.ResultRecord) error { return f.err }

func testRecorder(log Appender) *Recorder {
	return New(log,
		WithClock(func() time.Time { return fixedNow }),
		WithIDs(func() string { return "fixed-id" }),
	)
}

func TestFinalize(t *testing.T) {
	r := testRecorder(store.NewResultLog(store.NewMemory()))
	rec := r.Finalize(session.Outcome{
		Game:      model.GameTyping,
		Mode:      model.ModeKatakana,
		Set:       model.SetCustom,
		Correct:   1,
		Incorrect: 1,
		Elapsed:   42 * time.Second,
		Questions: []model.QuestionResult{
			{Character: "カ", Correct: true, UserAnswer: "ka", CorrectAnswer: "ka"},
			{Character: "キ", Correct: false, UserAnswer: "ke", CorrectAnswer: "ki"},
		},
	})

	assert.Equal(t, "fixed-id", rec.ID)
	assert.Equal(t, fixedNow, rec.Timestamp)
	assert.Equal(t, model.GameTyping, rec.Game)
	assert.Equal(t, model.ModeKatakana, rec.Mode)
	assert.Equal(t, model.SetCustom, rec.CharacterSet)
	assert.Equal(t, 2, rec.TotalQuestions)
	assert.Equal(t, 1, rec.CorrectAnswers)
	assert.Equal(t, 1, rec.WrongAnswers)
	assert.Equal(t, 42, rec.DurationSeconds)
	assert.InDelta(t, 50.0, rec.Accuracy(), 0.001)
}

func TestDefaultIDsAreUnique(t *testing.T) {
	r := New(store.NewResultLog(store.NewMemory()))
	a := r.Finalize(session.Outcome{})
	b := r.Finalize(session.Outcome{})
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPersistFailureKeepsSessionComplete(t *testing.T) {
	backendErr := errors.New("disk full")
	r := testRecorder(failingAppender{err: backendErr})

	var recErr error
	var saved model.ResultRecord
	m := session.NewMatch(generator.NewSeeded(1), func(o session.Outcome) {
		saved, recErr = r.Complete(context.Background(), o)
	})
	a, _ := kana.Lookup("a")
	i, _ := kana.Lookup("i")
	require.NoError(t, m.Begin([]model.Character{a, i}, model.SetBasic, model.OrderShuffled, model.ModeRomajiHiragana))
	for _, id := range []string{"a", "i"} {
		require.NoError(t, m.Select(id))
		_, err := m.AttemptMatch(id)
		require.NoError(t, err)
	}

	require.Error(t, recErr)
	assert.ErrorIs(t, recErr, ErrPersist)
	assert.ErrorIs(t, recErr, backendErr)
	assert.True(t, m.IsComplete())
	assert.Equal(t, 2, saved.CorrectAnswers)
}

func TestCompleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	log := store.NewResultLog(store.NewMemory())
	r := testRecorder(log)

	d := session.NewTyping(func(o session.Outcome) {
		_, err := r.Complete(ctx, o)
		require.NoError(t, err)
	})
	qs, err := session.BuildTyping(generator.NewSeeded(4), model.Selection{Set: model.SetBasic}, model.ModeHiragana)
	require.NoError(t, err)
	require.NoError(t, d.Start(qs, model.ModeHiragana, model.SetBasic))
	for i := 0; ; i++ {
		q, ok := d.Current()
		if !ok {
			break
		}
		in := q.Expected()
		if i%3 == 0 {
			in = "x"
		}
		_, err := d.Answer(in)
		require.NoError(t, err)
		require.NoError(t, d.Advance())
	}

	records, err := log.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	got := records[0]
	assert.Equal(t, 46, got.TotalQuestions)
	assert.Equal(t, d.Correct(), got.CorrectAnswers)
	assert.Equal(t, d.Incorrect(), got.WrongAnswers)
	assert.Equal(t, 16, got.WrongAnswers)
	assert.Len(t, got.Questions, 46)
}
