// Package generator builds randomized practice material.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

// MinPracticeSize is the smallest custom pool a session accepts.
const MinPracticeSize = 5

var (
	// ErrBelowMinimum rejects custom selections smaller than MinPracticeSize.
	ErrBelowMinimum = errors.New("selection below minimum practice size")
	// ErrEmptyPool rejects selections that produce no characters.
	ErrEmptyPool = errors.New("selection produced an empty pool")
)

// Generator produces randomized pools and answer options.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a new slice holding seq in a uniformly random order.
// seq itself is left untouched.
func Shuffle[T any](rnd *rand.Rand, seq []T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Shuffle returns a shuffled copy of chars.
func (g *Generator) Shuffle(chars []model.Character) []model.Character {
	return Shuffle(g.rnd, chars)
}

// ValidateSelection checks a selection without drawing from the catalogs.
func ValidateSelection(sel model.Selection) error {
	switch sel.Set {
	case model.SetBasic, model.SetDakuon, model.SetAll:
		return nil
	case model.SetCustom:
		if sel.BasicCount < 0 || sel.DakuonCount < 0 {
			return fmt.Errorf("character counts must be >= 0")
		}
		basicCount := clamp(sel.BasicCount, len(kana.Basic()))
		dakuonCount := clamp(sel.DakuonCount, len(kana.Dakuon()))
		if total := basicCount + dakuonCount; total < MinPracticeSize {
			return fmt.Errorf("%w: got %d, need at least %d", ErrBelowMinimum, total, MinPracticeSize)
		}
		return nil
	default:
		return fmt.Errorf("unknown character set %q", sel.Set)
	}
}

// Pool draws the practice pool for a selection.
func (g *Generator) Pool(sel model.Selection) ([]model.Character, error) {
	if err := ValidateSelection(sel); err != nil {
		return nil, err
	}
	var pool []model.Character
	switch sel.Set {
	case model.SetCustom:
		basic := g.Shuffle(kana.Basic())
		dakuon := g.Shuffle(kana.Dakuon())
		pool = append(pool, basic[:clamp(sel.BasicCount, len(basic))]...)
		pool = append(pool, dakuon[:clamp(sel.DakuonCount, len(dakuon))]...)
	default:
		pool = kana.ForSet(sel.Set)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	return pool, nil
}

// Options returns the correct romaji of ch plus up to n-1 distractors drawn
// from universe, in random order. Distractors never repeat a string and never
// equal the correct answer, so every option is unambiguous.
func (g *Generator) Options(ch model.Character, universe []model.Character, n int) []string {
	seen := map[string]struct{}{ch.Romaji: {}}
	distractors := make([]string, 0, len(universe))
	for _, c := range g.Shuffle(universe) {
		if _, ok := seen[c.Romaji]; ok {
			continue
		}
		seen[c.Romaji] = struct{}{}
		distractors = append(distractors, c.Romaji)
	}
	if n-1 < len(distractors) {
		distractors = distractors[:max(n-1, 0)]
	}
	return Shuffle(g.rnd, append([]string{ch.Romaji}, distractors...))
}

func clamp(v, upper int) int {
	if v < 0 {
		return 0
	}
	if v > upper {
		return upper
	}
	return v
}
