// internal/tui/app.go
//
// The week progress widget. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: the reference date, the sampled progress and the refresh timer
// 2. Update: navigation keys and refresh ticks change that state
// 3. View: the week header, seven day rows and the progress bar
//
// The progress bar re-samples the clock on the configured schedule. Each
// timer carries the generation it was armed in; navigating or quitting bumps
// the generation, which retires the pending timer so only one chain is ever
// live.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robfig/cron/v3"

	"github.com/kingrea/weekprogress/internal/config"
	"github.com/kingrea/weekprogress/internal/logbook"
	"github.com/kingrea/weekprogress/internal/week"
)

// frameOverhead is the border plus horizontal padding around the content.
const frameOverhead = 4

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClock overrides the wall clock used for progress and "today".
func WithClock(clock func() time.Time) AppOption {
	return func(a *App) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithReferenceDate starts the widget on the week containing date instead of
// the current week.
func WithReferenceDate(date time.Time) AppOption {
	return func(a *App) {
		if !date.IsZero() {
			a.reference = week.Midnight(date)
		}
	}
}

// WithLogbook journals session events to lb.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

type refreshTickMsg struct {
	gen int
}

// App is the widget model. bubbletea drives it from a single goroutine, so
// none of its state needs locking.
type App struct {
	config   *config.Config
	logbook  *logbook.Logbook
	clock    func() time.Time
	schedule cron.Schedule

	reference  time.Time
	percent    float64
	refreshGen int
	stopped    bool

	keys   keyMap
	help   help.Model
	bar    progress.Model
	styles styles

	width int
}

// NewApp creates the widget. A nil cfg uses config.Default.
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	theme := cfg.Theme()
	bar := progress.New(
		progress.WithSolidFill(theme.Accent),
		progress.WithoutPercentage(),
		progress.WithWidth(cfg.ProgressWidth()),
	)
	bar.EmptyColor = theme.Highlight

	app := &App{
		config:   cfg,
		clock:    time.Now,
		schedule: cfg.RefreshSchedule(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		bar:      bar,
		styles:   newStyles(theme),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.reference.IsZero() {
		app.reference = week.Midnight(app.clock())
	}
	return app
}

// Reference returns the date whose week is displayed.
func (a *App) Reference() time.Time {
	return a.reference
}

// Percent returns the last sampled week progress in [0, 100].
func (a *App) Percent() float64 {
	return a.percent
}

// Init is called once when the program starts: sample now and arm the timer.
func (a *App) Init() tea.Cmd {
	a.logInfo("Session opened · week %d (%s)", week.Number(a.reference), a.reference.Format(time.DateOnly))
	return a.restartRefresh()
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.fitBar()
		return a, nil

	case refreshTickMsg:
		if a.stopped || msg.gen != a.refreshGen {
			return a, nil
		}
		a.sample()
		return a, a.scheduleRefresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.stop()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Prev):
			return a, a.navigate(-1)
		case key.Matches(msg, a.keys.Next):
			return a, a.navigate(1)
		}
	}

	return a, nil
}

func (a *App) navigate(weeks int) tea.Cmd {
	if a.stopped {
		return nil
	}
	a.reference = week.Shift(a.reference, weeks)
	direction := "next"
	if weeks < 0 {
		direction = "previous"
	}
	a.logInfo("Navigate · %s week → %s (week %d)", direction, a.reference.Format(time.DateOnly), week.Number(a.reference))
	return a.restartRefresh()
}

// restartRefresh retires any pending timer, re-samples immediately and arms
// a fresh timer for the current reference date.
func (a *App) restartRefresh() tea.Cmd {
	a.refreshGen++
	a.sample()
	return a.scheduleRefresh()
}

func (a *App) scheduleRefresh() tea.Cmd {
	if a.stopped || a.schedule == nil {
		return nil
	}
	now := a.clock()
	next := a.schedule.Next(now)
	if next.IsZero() || !next.After(now) {
		a.logWarn("Refresh schedule %q has no upcoming run; progress will not update", a.config.Settings.Refresh)
		return nil
	}
	gen := a.refreshGen
	return tea.Tick(next.Sub(now), func(time.Time) tea.Msg {
		return refreshTickMsg{gen: gen}
	})
}

func (a *App) sample() {
	a.percent = week.Progress(a.reference, a.clock())
}

func (a *App) stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.refreshGen++
	a.logInfo("Session closed · week %d at %s", week.Number(a.reference), formatPercent(a.percent))
}

func (a *App) fitBar() {
	want := a.config.ProgressWidth()
	if a.width > 0 {
		want = min(want, max(10, a.width-frameOverhead))
	}
	a.bar.Width = want
}

// View renders the widget.
func (a *App) View() string {
	inner := a.bar.Width
	sections := []string{
		a.renderHeader(inner),
		"",
		a.renderDays(inner),
		"",
		a.renderProgressLabel(inner),
		a.bar.ViewAs(a.percent / 100),
		"",
		a.help.View(a.keys),
	}
	return a.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a *App) renderHeader(width int) string {
	prev := a.styles.control.Render("‹")
	next := a.styles.control.Render("›")
	title := a.styles.title.Render(fmt.Sprintf("Week %d", week.Number(a.reference)))
	middle := lipgloss.PlaceHorizontal(max(0, width-lipgloss.Width(prev)-lipgloss.Width(next)), lipgloss.Center, title)
	return prev + middle + next
}

func (a *App) renderDays(width int) string {
	days := week.Days(a.reference)
	rows := make([]string, 0, len(days))
	for _, day := range days {
		style := a.styles.day
		if day.Today {
			style = a.styles.today
		}
		rows = append(rows, style.Render(spread(" "+day.Label, fmt.Sprintf("%d ", day.DayOfMonth), width)))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderProgressLabel(width int) string {
	badge := a.styles.badge.Render("WEEK PROGRESS")
	pct := a.styles.percent.Render(formatPercent(a.percent))
	gap := max(1, width-lipgloss.Width(badge)-lipgloss.Width(pct))
	return badge + strings.Repeat(" ", gap) + pct
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

// spread pads between left and right so the pair spans width cells.
func spread(left, right string, width int) string {
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}
