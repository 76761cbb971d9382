package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/weekprogress/internal/config"
	"github.com/kingrea/weekprogress/internal/logbook"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// wednesdayNoon is 3.5 days into the week of 2024-06-09, which has no DST
// transition in any zone.
func wednesdayNoon() time.Time {
	return time.Date(2024, time.June, 12, 12, 0, 0, 0, time.Local)
}

func TestNavigationPreviousTwice(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock, WithReferenceDate(time.Date(2024, time.March, 10, 9, 15, 0, 0, time.Local)))
	app.Init()

	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyLeft})
	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})

	want := time.Date(2024, time.February, 25, 0, 0, 0, 0, time.Local)
	if !app.Reference().Equal(want) {
		t.Fatalf("reference = %s, want %s", app.Reference(), want)
	}
	if app.Percent() != 100 {
		t.Fatalf("past week should be complete, got %.2f", app.Percent())
	}
}

func TestNavigationRoundTrip(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock)
	app.Init()
	start := app.Reference()

	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyRight})
	if app.Percent() != 0 {
		t.Fatalf("future week should not have started, got %.2f", app.Percent())
	}
	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyLeft})
	if !app.Reference().Equal(start) {
		t.Fatalf("round trip landed on %s, want %s", app.Reference(), start)
	}
}

func TestInitSamplesAndArmsRefresh(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock)
	cmd := app.Init()
	if cmd == nil {
		t.Fatalf("expected refresh timer after init")
	}
	if got := formatPercent(app.Percent()); got != "50.0%" {
		t.Fatalf("initial percent = %s, want 50.0%%", got)
	}
	if !app.Reference().Equal(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("reference should default to today's date, got %s", app.Reference())
	}
}

func TestRefreshTickUpdatesAndReschedules(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock)
	app.Init()
	before := app.Percent()

	clock.Advance(time.Hour)
	model, cmd := app.Update(refreshTickMsg{gen: app.refreshGen})
	app = model.(*App)
	if cmd == nil {
		t.Fatalf("live tick should arm the next timer")
	}
	if app.Percent() <= before {
		t.Fatalf("percent did not advance: before %.4f after %.4f", before, app.Percent())
	}
}

func TestStaleRefreshTickIsDropped(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock)
	app.Init()
	staleGen := app.refreshGen

	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if app.refreshGen == staleGen {
		t.Fatalf("navigation must retire the previous timer")
	}
	before := app.Percent()

	clock.Advance(2 * time.Hour)
	model, cmd := app.Update(refreshTickMsg{gen: staleGen})
	app = model.(*App)
	if cmd != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	if app.Percent() != before {
		t.Fatalf("stale tick changed percent from %.4f to %.4f", before, app.Percent())
	}
}

func TestQuitDisarmsRefresh(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock)
	app.Init()
	liveGen := app.refreshGen

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	app = model.(*App)
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	clock.Advance(time.Hour)
	before := app.Percent()
	if _, cmd := app.Update(refreshTickMsg{gen: liveGen}); cmd != nil {
		t.Fatalf("timer armed before quit must not fire")
	}
	if app.Percent() != before {
		t.Fatalf("percent changed after quit")
	}
	if _, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRight}); cmd != nil {
		t.Fatalf("navigation after quit must not arm a timer")
	}
}

func TestViewRendersWeek(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock, WithReferenceDate(time.Date(2024, time.June, 9, 0, 0, 0, 0, time.Local)))
	app.Init()

	view := app.View()
	for _, want := range []string{"Week 23", "Sun", "Sat", "15", "WEEK PROGRESS", "50.0%", "previous week", "next week"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTodayHighlightFollowsReferenceWeekday(t *testing.T) {
	// Real now is a Wednesday, but the highlighted row follows the reference
	// date's weekday, a Sunday.
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock, WithReferenceDate(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local)))

	rows := strings.Split(app.renderDays(app.bar.Width), "\n")
	if len(rows) != 7 {
		t.Fatalf("expected 7 day rows, got %d", len(rows))
	}
	sunday := app.styles.today.Render(spread(" Sun", "10 ", app.bar.Width))
	wednesday := app.styles.day.Render(spread(" Wed", "13 ", app.bar.Width))
	if rows[0] != sunday {
		t.Fatalf("sunday row not highlighted: %q", rows[0])
	}
	if rows[3] != wednesday {
		t.Fatalf("wednesday row should be plain: %q", rows[3])
	}
}

func TestWindowSizeShrinksBar(t *testing.T) {
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 20, Height: 30})
	app = model.(*App)
	if app.bar.Width != 16 {
		t.Fatalf("bar width = %d, want 16", app.bar.Width)
	}
	model, _ = app.Update(tea.WindowSizeMsg{Width: 200, Height: 30})
	app = model.(*App)
	if app.bar.Width != app.config.ProgressWidth() {
		t.Fatalf("bar width = %d, want configured %d", app.bar.Width, app.config.ProgressWidth())
	}
}

func TestSessionIsJournaled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "journal.log")
	lb, err := logbook.New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	clock := &fakeClock{now: wednesdayNoon()}
	app := newTestApp(t, clock, WithLogbook(lb), WithReferenceDate(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.Local)))
	app.Init()
	app = sendKey(t, app, tea.KeyMsg{Type: tea.KeyLeft})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	lines, total := lb.Tail(10)
	if total != 3 {
		t.Fatalf("journal entries = %d, want 3: %v", total, lines)
	}
	for idx, want := range []string{"Session opened · week 10", "previous week → 2024-03-03", "Session closed"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %q", idx, lines[idx], want)
		}
	}
}

func newTestApp(t *testing.T, clock *fakeClock, opts ...AppOption) *App {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	baseOpts := []AppOption{WithClock(clock.Now)}
	baseOpts = append(baseOpts, opts...)
	return NewApp(cfg, baseOpts...)
}

func sendKey(t *testing.T, app *App, msg tea.KeyMsg) *App {
	t.Helper()
	model, cmd := app.Update(msg)
	next, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	if cmd == nil {
		t.Fatalf("navigation %q should arm a refresh timer", msg.String())
	}
	return next
}
