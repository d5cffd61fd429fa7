package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
)

// drillScreen holds the state shared by the quiz and typing screens.
type drillScreen[Q session.Unit] struct {
	env     Env
	game    model.Game
	drill   *session.Drill[Q]
	build   func() ([]Q, error)
	verdict *session.Verdict
	seq     int
	status  string
	record  *model.ResultRecord
	saveErr error
	footer  footerStats
	width   int
	height  int
}

func (d *drillScreen[Q]) setup(env Env, game model.Game, newDrill func(session.CompleteFunc) *session.Drill[Q], build func() ([]Q, error)) error {
	d.env = env
	d.game = game
	d.build = build
	d.drill = newDrill(d.onComplete)
	d.footer = loadFooter(env.History, game)
	return d.restart()
}

func (d *drillScreen[Q]) restart() error {
	units, err := d.build()
	if err != nil {
		return err
	}
	if err := d.drill.Start(units, d.env.Config.Mode, d.env.Config.Selection.Set); err != nil {
		return err
	}
	d.seq++
	d.verdict = nil
	d.status = ""
	d.record = nil
	d.saveErr = nil
	return nil
}

func (d *drillScreen[Q]) onComplete(out session.Outcome) {
	if d.env.Recorder == nil {
		return
	}
	rec, err := d.env.Recorder.Complete(context.Background(), out)
	d.record = &rec
	d.saveErr = err
	d.footer.add(rec)
}

// answer submits input and schedules the move to the next question.
func (d *drillScreen[Q]) answer(input string) tea.Cmd {
	v, err := d.drill.Answer(input)
	if err != nil {
		if errors.Is(err, session.ErrNoAnswer) {
			d.status = "Type an answer first"
		}
		return nil
	}
	d.verdict = &v
	d.status = ""
	d.seq++
	return after(d.env.Config.FeedbackDelay, advanceMsg{seq: d.seq})
}

func (d *drillScreen[Q]) advance() {
	if !d.drill.Answered() {
		return
	}
	d.seq++
	d.verdict = nil
	if err := d.drill.Advance(); err != nil {
		slog.Warn("failed to advance drill", "game", d.game, "error", err)
	}
}

// update handles messages common to both drills. It reports whether msg
// was consumed.
func (d *drillScreen[Q]) update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return nil, true
	case tickMsg:
		d.drill.Tick()
		return tickCmd(), true
	case advanceMsg:
		if msg.seq == d.seq {
			d.advance()
		}
		return nil, true
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			d.drill.Stop()
			return tea.Quit, true
		}
		if d.drill.IsComplete() {
			switch msg.String() {
			case "q":
				return tea.Quit, true
			case "r", "enter":
				if err := d.restart(); err != nil {
					d.status = err.Error()
				}
				return nil, true
			}
			return nil, true
		}
		if d.verdict != nil && msg.Type == tea.KeyEnter {
			d.advance()
			return nil, true
		}
	}
	return nil, false
}

func (d *drillScreen[Q]) header() string {
	return titleStyle.Render(fmt.Sprintf("%s · %s · %s", gameTitle(d.game), d.drill.Mode(), d.env.Config.Selection.Set))
}

func (d *drillScreen[Q]) renderVerdict() string {
	if d.verdict == nil {
		if d.status != "" {
			return labelStyle.Render(d.status)
		}
		return ""
	}
	if d.verdict.Correct {
		return correctStyle.Render("✓ " + d.verdict.Expected)
	}
	return incorrectStyle.Render(fmt.Sprintf("✗ %s, answer: %s", d.verdict.Given, d.verdict.Expected))
}

func (d *drillScreen[Q]) footerLine() string {
	cursor, total := d.drill.Position()
	done := cursor
	if d.drill.Answered() {
		done++
	}
	return renderFooter(done, total, d.drill.Correct(), d.drill.Incorrect(), d.drill.Elapsed(), d.footer)
}

func (d *drillScreen[Q]) view(body string) string {
	if d.drill.IsComplete() {
		content := renderResults(d.record, d.drill.Correct(), d.drill.Incorrect(), d.saveErr, d.drill.Elapsed())
		if d.status != "" {
			content += "\n" + incorrectStyle.Render(d.status)
		}
		return place(d.width, d.height, content, "")
	}
	content := strings.Join([]string{d.header(), "", body, "", d.renderVerdict()}, "\n")
	return place(d.width, d.height, content, d.footerLine())
}

func gameTitle(game model.Game) string {
	switch game {
	case model.GameMatch:
		return "Match"
	case model.GameTyping:
		return "Typing"
	default:
		return "Quiz"
	}
}
