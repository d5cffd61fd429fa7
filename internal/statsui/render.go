package statsui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/stats"
)

const (
	plotHeight         = 10
	mostPracticedCount = 5
)

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	weakStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	game := string(m.cfg.Game)
	if game == "" {
		game = "any"
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: timeframe=%s  game=%s  last=%s  window=%d", m.cfg.Timeframe, game, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Timeframe: t  Game: f  Window: -/=  Reset: x  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabCharacters {
		switch {
		case m.report.Overall.TotalSessions == 0:
			return fitLines("No sessions found.", m.width, height)
		case len(m.report.Characters) == 0:
			return fitLines("No character stats found.", m.width, height)
		default:
			return fitLines(tableMutedStyle.Render(m.charTable.View()), m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderConfirm() string {
	text := fmt.Sprintf("Delete all %d stored sessions?\n\ny: delete  n: cancel", len(m.report.Records))
	if m.cfg.Timeframe != model.TimeframeAll || m.cfg.Game != "" {
		text = "Delete all stored sessions, not only the filtered ones?\n\ny: delete  n: cancel"
	}
	return modalStyle.Render(text)
}

func renderOverview(report stats.Report, width int) string {
	if report.Overall.TotalSessions == 0 {
		return "No sessions found."
	}
	parts := []string{renderSummaryCards(report.Overall, width)}
	if len(report.Accuracy) >= 2 {
		var buf bytes.Buffer
		if err := stats.RenderCurve(&buf, report, stats.PlotWidthFor(width), plotHeight, true); err != nil {
			parts = append(parts, fmt.Sprintf("Failed to render curve: %v", err))
		} else {
			parts = append(parts, strings.TrimRight(buf.String(), "\n"))
		}
	}
	if top := stats.MostPracticed(report.Characters, mostPracticedCount); len(top) > 0 {
		parts = append(parts, cardTitleStyle.Render("Most practiced")+"  "+strings.Join(top, " "))
	}
	if len(report.Weakest) > 0 {
		parts = append(parts, renderWeakest(report.Weakest))
	}
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(overall model.Overall, width int) string {
	cards := []string{
		metricCard("Sessions", strconv.Itoa(overall.TotalSessions)),
		metricCard("Questions", strconv.Itoa(overall.TotalQuestions)),
		metricCard("Correct", strconv.Itoa(overall.TotalCorrect)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", overall.AverageAccuracy)),
	}
	if width < 60 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(label) + "\n" + cardValueStyle.Render(value))
}

func renderWeakest(weak []model.CharacterStat) string {
	lines := []string{cardTitleStyle.Render("Needs practice")}
	for _, st := range weak {
		lines = append(lines, fmt.Sprintf("%s  %s %5.1f%%  %s",
			stats.PadCell(st.Character, 6, false),
			stats.Bar(st.Accuracy, 20),
			st.Accuracy,
			weakStyle.Render(fmt.Sprintf("%d wrong", st.WrongAttempts)),
		))
	}
	return strings.Join(lines, "\n")
}

func renderRecent(report stats.Report) string {
	if len(report.Records) == 0 {
		return "No sessions found."
	}
	records := stats.Recent(report.Records, len(report.Records))
	return strings.Join(stats.FormatTable(stats.RecentHeaders, stats.RecentRows(records), map[int]bool{4: true, 5: true}), "\n")
}

func charRows(charStats []model.CharacterStat) []table.Row {
	rows := make([]table.Row, 0, len(charStats))
	for _, r := range stats.CharRows(charStats) {
		rows = append(rows, table.Row(r))
	}
	return rows
}

func buildCharTable(charStats []model.CharacterStat, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Char", Width: 6},
		{Title: "Attempts", Width: 8},
		{Title: "Correct", Width: 7},
		{Title: "Wrong", Width: 5},
		{Title: "Accuracy", Width: 8},
		{Title: "", Width: 20},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(charRows(charStats)),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(charTableStyles())
	return t
}

func charTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
