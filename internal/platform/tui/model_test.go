package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/metrics"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type fakeStore struct {
	saved   []storage.GameRecord
	high    int
	saveErr error
}

func (s *fakeStore) SaveGame(rec storage.GameRecord) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, rec)
	return "id", nil
}

func (s *fakeStore) HighScore() (int, error) {
	return s.high, nil
}

func newTestModel(t *testing.T, store ScoreStore, m *metrics.Metrics) Model {
	t.Helper()
	var logs strings.Builder
	return NewModel(ModelOptions{
		Config:  core.RuntimeConfig{ScreenW: 40, ScreenH: 24, TickRate: 30, Seed: 42},
		Store:   store,
		Metrics: m,
		Logger:  log.New(&logs),
		Player:  "tester",
	})
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

var moveKeys = []tea.KeyMsg{
	{Type: tea.KeyLeft},
	{Type: tea.KeyDown},
	{Type: tea.KeyRight},
	{Type: tea.KeyUp},
}

// playToEnd cycles through the directions until the game is over.
func playToEnd(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 100000 && !m.Snapshot().Status.Terminal(); i++ {
		m, _ = press(t, m, moveKeys[i%len(moveKeys)])
	}
	if !m.Snapshot().Status.Terminal() {
		t.Fatal("game did not finish")
	}
	return m
}

func TestModelStartsSeededGame(t *testing.T) {
	m := newTestModel(t, nil, nil)

	want := t2048.NewSeeded(42).Snapshot()
	if got := m.Snapshot(); got != want {
		t.Errorf("initial snapshot differs from a seeded engine:\n%v\nwant\n%v", got.Board, want.Board)
	}
	if m.Seed() != 42 {
		t.Errorf("Seed = %d, want 42", m.Seed())
	}
}

func TestModelMovesMatchEngine(t *testing.T) {
	m := newTestModel(t, nil, nil)
	g := t2048.NewSeeded(42)

	dirs := []t2048.Direction{t2048.DirLeft, t2048.DirDown, t2048.DirRight, t2048.DirUp}
	for i, key := range moveKeys {
		m, _ = press(t, m, key)
		g.Move(dirs[i])
	}

	if got, want := m.Snapshot(), g.Snapshot(); got != want {
		t.Errorf("model diverged from engine:\n%v\nwant\n%v", got.Board, want.Board)
	}
}

func TestModelEscStartsNextGame(t *testing.T) {
	reg := metrics.New()
	m := newTestModel(t, nil, reg)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.Seed() != 43 {
		t.Errorf("Seed = %d, want 43", m.Seed())
	}
	if got, want := m.Snapshot(), t2048.NewSeeded(43).Snapshot(); got != want {
		t.Error("Esc should start a fresh game from the next seed")
	}

	count, err := testutil.GatherAndCount(reg.Registry(), "t2048_games_started_total")
	if err != nil || count != 1 {
		t.Errorf("games_started series = %d, %v", count, err)
	}
}

func TestModelRestartOnlyWhenOver(t *testing.T) {
	m := newTestModel(t, nil, nil)
	before := m.Snapshot()

	m, _ = press(t, m, runeKey('r'))
	if m.Snapshot() != before || m.Seed() != 42 {
		t.Error("r must not restart a game in progress")
	}

	m = playToEnd(t, m)
	m, _ = press(t, m, runeKey('r'))
	if m.Snapshot().Status.Terminal() || m.Snapshot().Moves != 0 {
		t.Error("r should restart a finished game")
	}
}

func TestModelSavesOnceOnGameOver(t *testing.T) {
	store := &fakeStore{}
	m := newTestModel(t, store, nil)

	m = playToEnd(t, m)
	final := m.Snapshot()

	// Further input must not save again.
	for _, k := range moveKeys {
		m, _ = press(t, m, k)
	}
	if m.Snapshot() != final {
		t.Error("finished game changed after more input")
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(store.saved))
	}
	rec := store.saved[0]
	if rec.Score != final.Score || rec.Moves != final.Moves || rec.MaxTile != int(final.MaxTile) {
		t.Errorf("record = %+v, snapshot = %+v", rec, final)
	}
	if rec.Player != "tester" || rec.Seed != 42 {
		t.Errorf("record player/seed = %q/%d", rec.Player, rec.Seed)
	}
	if m.Best() != final.Score {
		t.Errorf("Best = %d, want %d", m.Best(), final.Score)
	}
}

func TestModelSaveFailureKeepsPlaying(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := newTestModel(t, store, nil)

	m = playToEnd(t, m)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Snapshot().Status.Terminal() {
		t.Error("a failed save should not block a new game")
	}
}

func TestModelLoadsBest(t *testing.T) {
	m := newTestModel(t, &fakeStore{high: 9000}, nil)
	if m.Best() != 9000 {
		t.Errorf("Best = %d, want 9000", m.Best())
	}
	if !strings.Contains(m.View(), "Best: 9000") {
		t.Error("view should show stored best")
	}
}

func TestModelMetrics(t *testing.T) {
	reg := metrics.New()
	playToEnd(t, newTestModel(t, nil, reg))

	count, err := testutil.GatherAndCount(reg.Registry(), "t2048_games_finished_total")
	if err != nil || count != 1 {
		t.Errorf("games_finished series = %d, %v", count, err)
	}
	count, err = testutil.GatherAndCount(reg.Registry(), "t2048_moves_total")
	if err != nil || count == 0 {
		t.Errorf("moves series = %d, %v", count, err)
	}
}

func TestModelQuitAndHelp(t *testing.T) {
	m := newTestModel(t, nil, nil)

	short := m.View()
	m, _ = press(t, m, runeKey('?'))
	if full := m.View(); full == short {
		t.Error("? should toggle the full help")
	}

	m, cmd := press(t, m, runeKey('q'))
	if !m.Quitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelTickAndResize(t *testing.T) {
	m := newTestModel(t, nil, nil)
	if m.Init() == nil {
		t.Error("Init should start the tick loop")
	}

	m, cmd := press(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "too small") {
		t.Error("small window should show the resize hint")
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	if !strings.Contains(m.View(), "Score:") {
		t.Error("resized view should show the board")
	}
}
