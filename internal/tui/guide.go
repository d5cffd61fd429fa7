package tui

import (
	"fmt"
	"io"

	"github.com/verte-zerg/kanadrill/internal/kana"
	"github.com/verte-zerg/kanadrill/internal/model"
)

const guideColumns = 5

// RenderGuide prints chars as a reference grid of kana over romaji.
func RenderGuide(w io.Writer, chars []model.Character, katakana bool) error {
	labels := make([]string, 0, len(chars))
	for _, ch := range chars {
		labels = append(labels, kana.Script(ch, katakana))
	}
	width := max(labelWidth(labels), 3)
	for i := 0; i < len(chars); i += guideColumns {
		end := min(i+guideColumns, len(chars))
		top := make([]string, 0, end-i)
		bottom := make([]string, 0, end-i)
		for j := i; j < end; j++ {
			top = append(top, renderTile(labels[j], width, pendingStyle))
			bottom = append(bottom, renderTile(chars[j].Romaji, width, labelStyle))
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", renderGrid(top, len(top)), renderGrid(bottom, len(bottom))); err != nil {
			return err
		}
	}
	return nil
}
