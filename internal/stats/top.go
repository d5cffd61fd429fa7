package stats

import (
	"sort"

	"github.com/verte-zerg/kanadrill/internal/model"
)

// SortByAttempts orders stats by attempts, most practiced first.
func SortByAttempts(stats []model.CharacterStat) {
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalAttempts == stats[j].TotalAttempts {
			return stats[i].Character < stats[j].Character
		}
		return stats[i].TotalAttempts > stats[j].TotalAttempts
	})
}

// MostPracticed returns the characters of the n most attempted stats.
func MostPracticed(stats []model.CharacterStat, n int) []string {
	if n <= 0 || len(stats) == 0 {
		return nil
	}
	sorted := append([]model.CharacterStat(nil), stats...)
	SortByAttempts(sorted)
	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]string, 0, n)
	for _, st := range sorted[:n] {
		out = append(out, st.Character)
	}
	return out
}
