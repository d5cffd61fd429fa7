package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/kanadrill/internal/model"
)

func TestMostPracticed(t *testing.T) {
	stats := []model.CharacterStat{
		{Character: "う", TotalAttempts: 4},
		{Character: "い", TotalAttempts: 4},
		{Character: "あ", TotalAttempts: 1},
	}
	assert.Equal(t, []string{"い", "う"}, MostPracticed(stats, 2))
	assert.Equal(t, []string{"い", "う", "あ"}, MostPracticed(stats, 10))
	assert.Nil(t, MostPracticed(stats, 0))
	assert.Equal(t, "う", stats[0].Character, "input must not be reordered")
}

func TestWeakest(t *testing.T) {
	stats := []model.CharacterStat{
		{Character: "あ", TotalAttempts: 4, CorrectAttempts: 4, Accuracy: 100},
		{Character: "ぬ", TotalAttempts: 4, CorrectAttempts: 2, WrongAttempts: 2, Accuracy: 50},
		{Character: "め", TotalAttempts: 2, CorrectAttempts: 1, WrongAttempts: 1, Accuracy: 50},
		{Character: "ね", TotalAttempts: 3, CorrectAttempts: 0, WrongAttempts: 3, Accuracy: 0},
	}
	got := Weakest(stats, 2)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "ね", got[0].Character)
		assert.Equal(t, "ぬ", got[1].Character)
	}
	assert.Len(t, Weakest(stats, 0), 3, "perfect characters are never weak")
}
