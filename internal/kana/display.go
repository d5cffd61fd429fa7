package kana

import "github.com/verte-zerg/kanadrill/internal/model"

// Prompt returns the form shown for a quiz or typing question.
func Prompt(ch model.Character, mode model.Mode) string {
	switch mode {
	case model.ModeKatakana:
		return ch.Katakana
	case model.ModeBoth:
		return ch.Hiragana + "/" + ch.Katakana
	default:
		return ch.Hiragana
	}
}

// Source returns the tile shown on the source side of the matching game.
func Source(ch model.Character, mode model.Mode) string {
	if mode == model.ModeHiraganaKatakana {
		return ch.Hiragana
	}
	return ch.Romaji
}

// Target returns the tile shown on the target side of the matching game.
func Target(ch model.Character, mode model.Mode) string {
	switch mode {
	case model.ModeRomajiKatakana, model.ModeHiraganaKatakana:
		return ch.Katakana
	default:
		return ch.Hiragana
	}
}

// Script returns the kana form for a single-script mode.
func Script(ch model.Character, katakana bool) string {
	if katakana {
		return ch.Katakana
	}
	return ch.Hiragana
}
