package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/metrics"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ScoreStore is the part of storage the game screen needs.
type ScoreStore interface {
	SaveGame(rec storage.GameRecord) (string, error)
	HighScore() (int, error)
}

// ModelOptions configures a game model.
type ModelOptions struct {
	Config  core.RuntimeConfig // Seed 0 picks a time-based seed
	Keys    *KeyMapper         // nil uses DefaultKeyMapper
	Theme   Theme
	Store   ScoreStore       // optional
	Metrics *metrics.Metrics // optional
	Logger  *log.Logger      // nil uses log.Default()
	Player  string

	// ScreenshotDir enables ctrl+s screenshots when non-empty.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one 2048 player.
type Model struct {
	game       *t2048.Game
	seed       uint64 // Seed of the current game
	screen     *core.Screen
	view       BoardView
	highlights Highlights
	keys       *KeyMapper
	help       help.Model
	store      ScoreStore
	metrics    *metrics.Metrics
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	width      int
	height     int
	best       int
	shotDir    string
	quitting   bool
	scoreSaved bool // Whether the current game has been recorded
}

// NewModel creates a model and starts the first game.
func NewModel(opts ModelOptions) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	keys := opts.Keys
	if keys == nil {
		keys = DefaultKeyMapper()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	m := Model{
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		view:    BoardView{Theme: opts.Theme},
		keys:    keys,
		help:    help.New(),
		store:   opts.Store,
		metrics: opts.Metrics,
		logger:  logger,
		player:  opts.Player,
		config:  cfg,
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
		shotDir: opts.ScreenshotDir,
	}

	if m.store != nil {
		best, err := m.store.HighScore()
		if err != nil {
			logger.Warn("could not load high score", "error", err)
		}
		m.best = best
	}

	m.startGame(cfg.Seed)
	return m
}

// startGame replaces the engine with a fresh game seeded with seed.
func (m *Model) startGame(seed uint64) {
	m.seed = seed
	m.game = t2048.NewSeeded(seed)
	m.scoreSaved = false
	m.highlights.StartReset(m.game.Board())
	m.metrics.GameStarted()
}

// newGame abandons the current game (if it was in progress) and starts the next.
// Consecutive games use consecutive seeds, so a fixed --seed replays the same session.
func (m *Model) newGame() {
	if !m.game.Status().Terminal() && m.game.Moves() > 0 {
		m.metrics.GameFinished(metrics.OutcomeAbandoned, int(m.game.Board().MaxTile()))
	}
	m.startGame(m.seed + 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.highlights.Step()
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		if !m.game.Status().Terminal() && m.game.Moves() > 0 {
			m.metrics.GameFinished(metrics.OutcomeAbandoned, int(m.game.Board().MaxTile()))
		}
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionBack:
		m.newGame()

	case core.ActionRestart:
		if m.game.Status().Terminal() {
			m.newGame()
		}

	default:
		dir, ok := ActionDirection(action)
		if !ok || m.game.Status().Terminal() {
			return m, nil
		}
		res := m.game.Move(dir)
		m.metrics.Move(dir.String(), res.Moved)
		m.highlights.Start(res)
		if res.State.Status.Terminal() {
			m.onGameOver(res.State)
		}
	}

	return m, nil
}

// onGameOver records a finished game once.
func (m *Model) onGameOver(s t2048.Snapshot) {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	m.metrics.GameFinished(outcomeOf(s.Status), int(s.MaxTile))
	if s.Score > m.best {
		m.best = s.Score
	}

	if m.store == nil || s.Score <= 0 {
		return
	}
	_, err := m.store.SaveGame(storage.GameRecord{
		Player:  m.player,
		Score:   s.Score,
		MaxTile: int(s.MaxTile),
		Moves:   s.Moves,
		Won:     s.Won,
		Lost:    s.Lost,
		Seed:    m.seed,
	})
	if err != nil {
		m.logger.Warn("could not save score", "player", m.player, "score", s.Score, "error", err)
	}
}

func outcomeOf(s t2048.Status) string {
	switch s {
	case t2048.StatusWon:
		return metrics.OutcomeWon
	case t2048.StatusLost:
		return metrics.OutcomeLost
	case t2048.StatusWonAndLost:
		return metrics.OutcomeWonLost
	default:
		return metrics.OutcomeAbandoned
	}
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.shotDir, 0o755)

	m.view.Render(m.screen, m.viewState())
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("t2048_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) viewState() ViewState {
	return ViewState{
		Snapshot:   m.game.Snapshot(),
		Best:       m.best,
		Highlights: &m.highlights,
	}
}

// View renders the board with the help bar underneath.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpView := m.help.View(m.keys.Keys())
	m.screen.Resize(m.width, core.Max(m.height-lipgloss.Height(helpView), 0))
	m.view.Render(m.screen, m.viewState())

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(helpView)
}

// Snapshot returns the state of the current game.
func (m Model) Snapshot() t2048.Snapshot {
	return m.game.Snapshot()
}

// Best returns the best score known to this model.
func (m Model) Best() int {
	return m.best
}

// Seed returns the seed of the current game.
func (m Model) Seed() uint64 {
	return m.seed
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for a local game.
func Run(opts ModelOptions) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
