// Package kana provides the static Hiragana/Katakana catalogs.
package kana

import "github.com/verte-zerg/kanadrill/internal/model"

var basic = []model.Character{
	{ID: "a", Romaji: "a", Hiragana: "あ", Katakana: "ア"},
	{ID: "i", Romaji: "i", Hiragana: "い", Katakana: "イ"},
	{ID: "u", Romaji: "u", Hiragana: "う", Katakana: "ウ"},
	{ID: "e", Romaji: "e", Hiragana: "え", Katakana: "エ"},
	{ID: "o", Romaji: "o", Hiragana: "お", Katakana: "オ"},

	{ID: "ka", Romaji: "ka", Hiragana: "か", Katakana: "カ"},
	{ID: "ki", Romaji: "ki", Hiragana: "き", Katakana: "キ"},
	{ID: "ku", Romaji: "ku", Hiragana: "く", Katakana: "ク"},
	{ID: "ke", Romaji: "ke", Hiragana: "け", Katakana: "ケ"},
	{ID: "ko", Romaji: "ko", Hiragana: "こ", Katakana: "コ"},

	{ID: "sa", Romaji: "sa", Hiragana: "さ", Katakana: "サ"},
	{ID: "shi", Romaji: "shi", Hiragana: "し", Katakana: "シ"},
	{ID: "su", Romaji: "su", Hiragana: "す", Katakana: "ス"},
	{ID: "se", Romaji: "se", Hiragana: "せ", Katakana: "セ"},
	{ID: "so", Romaji: "so", Hiragana: "そ", Katakana: "ソ"},

	{ID: "ta", Romaji: "ta", Hiragana: "た", Katakana: "タ"},
	{ID: "chi", Romaji: "chi", Hiragana: "ち", Katakana: "チ"},
	{ID: "tsu", Romaji: "tsu", Hiragana: "つ", Katakana: "ツ"},
	{ID: "te", Romaji: "te", Hiragana: "て", Katakana: "テ"},
	{ID: "to", Romaji: "to", Hiragana: "と", Katakana: "ト"},

	{ID: "na", Romaji: "na", Hiragana: "な", Katakana: "ナ"},
	{ID: "ni", Romaji: "ni", Hiragana: "に", Katakana: "ニ"},
	{ID: "nu", Romaji: "nu", Hiragana: "ぬ", Katakana: "ヌ"},
	{ID: "ne", Romaji: "ne", Hiragana: "ね", Katakana: "ネ"},
	{ID: "no", Romaji: "no", Hiragana: "の", Katakana: "ノ"},

	{ID: "ha", Romaji: "ha", Hiragana: "は", Katakana: "ハ"},
	{ID: "hi", Romaji: "hi", Hiragana: "ひ", Katakana: "ヒ"},
	{ID: "fu", Romaji: "fu", Hiragana: "ふ", Katakana: "フ"},
	{ID: "he", Romaji: "he", Hiragana: "へ", Katakana: "ヘ"},
	{ID: "ho", Romaji: "ho", Hiragana: "ほ", Katakana: "ホ"},

	{ID: "ma", Romaji: "ma", Hiragana: "ま", Katakana: "マ"},
	{ID: "mi", Romaji: "mi", Hiragana: "み", Katakana: "ミ"},
	{ID: "mu", Romaji: "mu", Hiragana: "む", Katakana: "ム"},
	{ID: "me", Romaji: "me", Hiragana: "め", Katakana: "メ"},
	{ID: "mo", Romaji: "mo", Hiragana: "も", Katakana: "モ"},

	{ID: "ya", Romaji: "ya", Hiragana: "や", Katakana: "ヤ"},
	{ID: "yu", Romaji: "yu", Hiragana: "ゆ", Katakana: "ユ"},
	{ID: "yo", Romaji: "yo", Hiragana: "よ", Katakana: "ヨ"},

	{ID: "ra", Romaji: "ra", Hiragana: "ら", Katakana: "ラ"},
	{ID: "ri", Romaji: "ri", Hiragana: "り", Katakana: "リ"},
	{ID: "ru", Romaji: "ru", Hiragana: "る", Katakana: "ル"},
	{ID: "re", Romaji: "re", Hiragana: "れ", Katakana: "レ"},
	{ID: "ro", Romaji: "ro", Hiragana: "ろ", Katakana: "ロ"},

	{ID: "wa", Romaji: "wa", Hiragana: "わ", Katakana: "ワ"},
	{ID: "wo", Romaji: "wo", Hiragana: "を", Katakana: "ヲ"},

	{ID: "n", Romaji: "n", Hiragana: "ん", Katakana: "ン"},
}

// ぢ and づ share romaji with じ and ず; their ids follow Nihon-shiki so ids
// stay unique while the romaji is left as taught.
var dakuon = []model.Character{
	{ID: "ga", Romaji: "ga", Hiragana: "が", Katakana: "ガ"},
	{ID: "gi", Romaji: "gi", Hiragana: "ぎ", Katakana: "ギ"},
	{ID: "gu", Romaji: "gu", Hiragana: "ぐ", Katakana: "グ"},
	{ID: "ge", Romaji: "ge", Hiragana: "げ", Katakana: "ゲ"},
	{ID: "go", Romaji: "go", Hiragana: "ご", Katakana: "ゴ"},

	{ID: "za", Romaji: "za", Hiragana: "ざ", Katakana: "ザ"},
	{ID: "ji", Romaji: "ji", Hiragana: "じ", Katakana: "ジ"},
	{ID: "zu", Romaji: "zu", Hiragana: "ず", Katakana: "ズ"},
	{ID: "ze", Romaji: "ze", Hiragana: "ぜ", Katakana: "ゼ"},
	{ID: "zo", Romaji: "zo", Hiragana: "ぞ", Katakana: "ゾ"},

	{ID: "da", Romaji: "da", Hiragana: "だ", Katakana: "ダ"},
	{ID: "di", Romaji: "ji", Hiragana: "ぢ", Katakana: "ヂ"},
	{ID: "du", Romaji: "zu", Hiragana: "づ", Katakana: "ヅ"},
	{ID: "de", Romaji: "de", Hiragana: "で", Katakana: "デ"},
	{ID: "do", Romaji: "do", Hiragana: "ど", Katakana: "ド"},

	{ID: "ba", Romaji: "ba", Hiragana: "ば", Katakana: "バ"},
	{ID: "bi", Romaji: "bi", Hiragana: "び", Katakana: "ビ"},
	{ID: "bu", Romaji: "bu", Hiragana: "ぶ", Katakana: "ブ"},
	{ID: "be", Romaji: "be", Hiragana: "べ", Katakana: "ベ"},
	{ID: "bo", Romaji: "bo", Hiragana: "ぼ", Katakana: "ボ"},

	{ID: "pa", Romaji: "pa", Hiragana: "ぱ", Katakana: "パ"},
	{ID: "pi", Romaji: "pi", Hiragana: "ぴ", Katakana: "ピ"},
	{ID: "pu", Romaji: "pu", Hiragana: "ぷ", Katakana: "プ"},
	{ID: "pe", Romaji: "pe", Hiragana: "ぺ", Katakana: "ペ"},
	{ID: "po", Romaji: "po", Hiragana: "ぽ", Katakana: "ポ"},
}

var byID = func() map[string]model.Character {
	m := make(map[string]model.Character, len(basic)+len(dakuon))
	for _, ch := range basic {
		m[ch.ID] = ch
	}
	for _, ch := range dakuon {
		m[ch.ID] = ch
	}
	return m
}()

// Basic returns a copy of the 46 base characters.
func Basic() []model.Character {
	return append([]model.Character(nil), basic...)
}

// Dakuon returns a copy of the 25 voiced and semi-voiced characters.
func Dakuon() []model.Character {
	return append([]model.Character(nil), dakuon...)
}

// All returns a copy of both catalogs, basic first.
func All() []model.Character {
	out := make([]model.Character, 0, len(basic)+len(dakuon))
	out = append(out, basic...)
	return append(out, dakuon...)
}

// ForSet returns the full catalog for a non-custom set.
func ForSet(set model.CharacterSet) []model.Character {
	switch set {
	case model.SetDakuon:
		return Dakuon()
	case model.SetAll, model.SetCustom:
		return All()
	default:
		return Basic()
	}
}

// Lookup finds a character by id in either catalog.
func Lookup(id string) (model.Character, bool) {
	ch, ok := byID[id]
	return ch, ok
}
