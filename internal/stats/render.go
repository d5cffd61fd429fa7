package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/kanadrill/internal/model"
)

const barWidth = 20

// RenderSummary prints overall totals.
func RenderSummary(w io.Writer, overall model.Overall) error {
	if overall.TotalSessions == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", overall.TotalSessions),
		fmt.Sprintf("Questions: %d", overall.TotalQuestions),
		fmt.Sprintf("Correct: %d", overall.TotalCorrect),
		fmt.Sprintf("Avg Accuracy: %.1f%%", overall.AverageAccuracy),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// CharRows formats stats as table rows.
func CharRows(stats []model.CharacterStat) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			st.Character,
			fmt.Sprintf("%d", st.TotalAttempts),
			fmt.Sprintf("%d", st.CorrectAttempts),
			fmt.Sprintf("%d", st.WrongAttempts),
			fmt.Sprintf("%.1f%%", st.Accuracy),
			Bar(st.Accuracy, barWidth),
		})
	}
	return rows
}

// CharHeaders are the column titles for CharRows.
var CharHeaders = []string{"Char", "Attempts", "Correct", "Wrong", "Accuracy", ""}

// RenderCharTable prints per-character stats.
func RenderCharTable(w io.Writer, title string, stats []model.CharacterStat) error {
	if len(stats) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range FormatTable(CharHeaders, CharRows(stats), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RecentHeaders are the column titles for RecentRows.
var RecentHeaders = []string{"Date", "Game", "Mode", "Set", "Score", "Accuracy"}

// RecentRows formats records as table rows.
func RecentRows(records []model.ResultRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		game := string(rec.Game)
		if game == "" {
			game = string(model.GameQuiz)
		}
		rows = append(rows, []string{
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			game,
			string(rec.Mode),
			string(rec.CharacterSet),
			fmt.Sprintf("%d/%d", rec.CorrectAnswers, rec.CorrectAnswers+rec.WrongAnswers),
			fmt.Sprintf("%.1f%%", rec.Accuracy()),
		})
	}
	return rows
}

// RenderRecent prints the most recent sessions.
func RenderRecent(w io.Writer, records []model.ResultRecord) error {
	if len(records) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	rightAlign := map[int]bool{4: true, 5: true}
	for _, line := range FormatTable(RecentHeaders, RecentRows(records), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurve plots accuracy per session with its moving average.
func RenderCurve(w io.Writer, report Report, width, height int, color bool) error {
	if len(report.Accuracy) < 2 {
		return nil
	}
	return PlotCurves(w, "Accuracy Curve", []Curve{
		{Name: "Accuracy", Values: report.Accuracy},
		{Name: "Moving avg", Values: report.Smoothed},
	}, width, height, color)
}

// RenderReport prints every section of a report as plain text.
func RenderReport(w io.Writer, report Report, color bool) error {
	if _, err := fmt.Fprintf(w, "Timeframe: %s\n\n", report.Timeframe); err != nil {
		return err
	}
	if err := RenderSummary(w, report.Overall); err != nil {
		return err
	}
	if report.Overall.TotalSessions == 0 {
		return nil
	}
	if err := RenderCurve(w, report, 0, 0, color); err != nil {
		return err
	}
	if len(report.Weakest) > 0 {
		if err := RenderCharTable(w, "Needs Practice", report.Weakest); err != nil {
			return err
		}
	}
	if err := RenderCharTable(w, "Character Performance", report.Characters); err != nil {
		return err
	}
	return RenderRecent(w, report.Recent)
}

// Bar renders a horizontal accuracy bar width cells wide.
func Bar(pct float64, width int) string {
	filled := int(pct/100*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
