package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/kanadrill/internal/model"
)

var now = time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)

func rec(id string, age time.Duration, correct, wrong int, questions ...model.QuestionResult) model.ResultRecord {
	return model.ResultRecord{
		ID:             id,
		Timestamp:      now.Add(-age),
		Game:           model.GameQuiz,
		Mode:           model.ModeHiragana,
		CharacterSet:   model.SetBasic,
		TotalQuestions: correct + wrong,
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		Questions:      questions,
	}
}

func q(char string, correct bool) model.QuestionResult {
	return model.QuestionResult{Character: char, Correct: correct, CorrectAnswer: "x"}
}

func TestAggregateMixedAttempts(t *testing.T) {
	got := Aggregate([]model.ResultRecord{
		rec("r1", time.Hour, 1, 0, q("あ", true)),
		rec("r2", time.Minute, 0, 1, q("あ", false)),
	})
	require.Len(t, got, 1)
	assert.Equal(t, model.CharacterStat{
		Character:       "あ",
		TotalAttempts:   2,
		CorrectAttempts: 1,
		WrongAttempts:   1,
		Accuracy:        50.0,
	}, got[0])
}

func TestAggregateSortsByAttempts(t *testing.T) {
	got := Aggregate([]model.ResultRecord{
		rec("r1", 0, 2, 1, q("か", true), q("き", false), q("き", true)),
		rec("r2", 0, 1, 0, q("く", true)),
	})
	require.Len(t, got, 3)
	assert.Equal(t, "き", got[0].Character)
	assert.Equal(t, 2, got[0].TotalAttempts)
	assert.Equal(t, "か", got[1].Character)
	assert.Equal(t, "く", got[2].Character)
	assert.Empty(t, Aggregate(nil))
}

func TestFilterByTimeframe(t *testing.T) {
	records := []model.ResultRecord{
		rec("old", 40*24*time.Hour, 1, 0),
		rec("month", 20*24*time.Hour, 1, 0),
		rec("edge", 7*24*time.Hour, 1, 0),
		rec("fresh", time.Hour, 1, 0),
	}
	ids := func(rs []model.ResultRecord) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"old", "month", "edge", "fresh"}, ids(FilterByTimeframe(records, model.TimeframeAll, now)))
	assert.Equal(t, []string{"month", "edge", "fresh"}, ids(FilterByTimeframe(records, model.TimeframeMonth, now)))
	assert.Equal(t, []string{"edge", "fresh"}, ids(FilterByTimeframe(records, model.TimeframeWeek, now)))
}

func TestFilterByGame(t *testing.T) {
	a := rec("a", 0, 1, 0)
	b := rec("b", 0, 1, 0)
	b.Game = model.GameMatch
	assert.Len(t, FilterByGame([]model.ResultRecord{a, b}, ""), 2)
	got := FilterByGame([]model.ResultRecord{a, b}, model.GameMatch)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestOverall(t *testing.T) {
	o := Overall([]model.ResultRecord{
		rec("r1", 0, 3, 1),
		rec("r2", 0, 2, 2),
	})
	assert.Equal(t, 2, o.TotalSessions)
	assert.Equal(t, 8, o.TotalQuestions)
	assert.Equal(t, 5, o.TotalCorrect)
	assert.InDelta(t, 62.5, o.AverageAccuracy, 1e-9)
	assert.Equal(t, model.Overall{}, Overall(nil))
}

func TestRecentNewestFirst(t *testing.T) {
	records := []model.ResultRecord{
		rec("a", 3*time.Hour, 1, 0),
		rec("b", time.Hour, 1, 0),
		rec("c", 2*time.Hour, 1, 0),
	}
	got := Recent(records, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "a", records[0].ID)
}

func TestAccuracySeriesChronological(t *testing.T) {
	series := AccuracySeries([]model.ResultRecord{
		rec("new", time.Hour, 1, 1),
		rec("old", 2*time.Hour, 1, 0),
	})
	assert.Equal(t, []float64{100, 50}, series)
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)
	assert.Equal(t, []float64{2, 4}, MovingAverage([]float64{2, 4}, 1))
	assert.Empty(t, MovingAverage(nil, 3))
}
