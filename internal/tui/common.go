package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanadrill/internal/generator"
	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/record"
	"github.com/verte-zerg/kanadrill/internal/stats"
)

// Env bundles what every practice screen needs.
type Env struct {
	Config   model.Config
	Gen      *generator.Generator
	Recorder *record.Recorder
	History  stats.Lister
}

type tickMsg struct{}

type advanceMsg struct{ seq int }

type clearStatusMsg struct{ seq int }

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{} })
}

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// footerStats holds the accuracy of the previous and all stored sessions.
type footerStats struct {
	hasLast  bool
	lastAcc  float64
	allRight int
	allWrong int
}

func loadFooter(history stats.Lister, game model.Game) footerStats {
	var f footerStats
	if history == nil {
		return f
	}
	records, err := history.List(context.Background())
	if err != nil {
		slog.Warn("failed to load history", "error", err)
		return f
	}
	for _, rec := range stats.FilterByGame(records, game) {
		f.add(rec)
	}
	return f
}

func (f *footerStats) add(rec model.ResultRecord) {
	f.hasLast = true
	f.lastAcc = rec.Accuracy()
	f.allRight += rec.CorrectAnswers
	f.allWrong += rec.WrongAnswers
}

func (f footerStats) allAcc() float64 {
	total := f.allRight + f.allWrong
	if total == 0 {
		return 0
	}
	return float64(f.allRight) / float64(total) * 100
}

func renderFooter(done, total, correct, wrong int, elapsed time.Duration, f footerStats) string {
	segments := []string{
		fmt.Sprintf("Progress %d/%d", done, total),
		fmt.Sprintf("✓ %d  ✗ %d", correct, wrong),
		formatElapsed(elapsed),
	}
	if f.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%%", f.lastAcc))
		segments = append(segments, fmt.Sprintf("All-time %.1f%%", f.allAcc()))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// renderResults falls back to the live counters when no record was built,
// e.g. when the session runs without a recorder.
func renderResults(rec *model.ResultRecord, correct, incorrect int, saveErr error, elapsed time.Duration) string {
	summary := model.ResultRecord{CorrectAnswers: correct, WrongAnswers: incorrect}
	if rec != nil {
		summary = *rec
	}
	lines := []string{
		titleStyle.Render("Session complete"),
		"",
		fmt.Sprintf("Score     %d/%d", summary.CorrectAnswers, summary.CorrectAnswers+summary.WrongAnswers),
		fmt.Sprintf("Accuracy  %.1f%%", summary.Accuracy()),
		fmt.Sprintf("Time      %s", formatElapsed(elapsed)),
	}
	var missed []string
	for _, q := range summary.Questions {
		if !q.Correct {
			missed = append(missed, fmt.Sprintf("%s %s", q.Character, q.CorrectAnswer))
		}
	}
	if len(missed) > 0 {
		lines = append(lines, "", labelStyle.Render("Missed"), incorrectStyle.Render(strings.Join(missed, "  ")))
	}
	if saveErr != nil {
		lines = append(lines, "", incorrectStyle.Render("Result not saved: "+saveErr.Error()))
	}
	lines = append(lines, "", footerStyle.Render("r play again · q quit"))
	return strings.Join(lines, "\n")
}

// place centers content with the footer pinned to the last line.
func place(width, height int, content, footer string) string {
	if width == 0 || height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	if footer == "" || height < 3 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(width, height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}
