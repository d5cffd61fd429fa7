package stats

import (
	"sort"

	"github.com/verte-zerg/kanadrill/internal/model"
)

// Weakest returns up to n characters with the lowest accuracy. Ties go to the
// character with more wrong attempts. It is only used for display.
func Weakest(stats []model.CharacterStat, n int) []model.CharacterStat {
	if len(stats) == 0 {
		return nil
	}
	candidates := make([]model.CharacterStat, 0, len(stats))
	for _, st := range stats {
		if st.WrongAttempts > 0 {
			candidates = append(candidates, st)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Accuracy != b.Accuracy {
			return a.Accuracy < b.Accuracy
		}
		if a.WrongAttempts != b.WrongAttempts {
			return a.WrongAttempts > b.WrongAttempts
		}
		return a.Character < b.Character
	})
	if n > 0 && n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates
}
