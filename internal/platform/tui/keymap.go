package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// GameKeyMap holds the key bindings used while playing.
// It implements help.KeyMap.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Reset   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reset, k.Restart},
		{k.Help, k.Quit},
	}
}

func directionBinding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a key mapper with the configured direction keys.
// Esc, r, ? and q/ctrl+c are fixed.
func NewKeyMapper(cfg config.KeysConfig) *KeyMapper {
	return &KeyMapper{keys: GameKeyMap{
		Up:    directionBinding(cfg.Up, "up"),
		Down:  directionBinding(cfg.Down, "down"),
		Left:  directionBinding(cfg.Left, "left"),
		Right: directionBinding(cfg.Right, "right"),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "new game"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart when over"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}}
}

// DefaultKeyMapper uses the default direction keys (arrows, WASD, hjkl).
func DefaultKeyMapper() *KeyMapper {
	return NewKeyMapper(config.Default().Keys)
}

// Keys returns the bindings, for the help view.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action (may be ActionNone).
// Fixed keys win over configured direction keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, km.keys.Help):
		return core.ActionHelp
	case key.Matches(msg, km.keys.Reset):
		return core.ActionBack
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart
	case key.Matches(msg, km.keys.Up):
		return core.ActionUp
	case key.Matches(msg, km.keys.Down):
		return core.ActionDown
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight
	}
	return core.ActionNone
}

var moveDirections = [...]t2048.Direction{
	core.ActionUp - core.ActionUp:    t2048.DirUp,
	core.ActionDown - core.ActionUp:  t2048.DirDown,
	core.ActionLeft - core.ActionUp:  t2048.DirLeft,
	core.ActionRight - core.ActionUp: t2048.DirRight,
}

// ActionDirection converts a move action to an engine direction.
func ActionDirection(a core.Action) (t2048.Direction, bool) {
	if !a.IsMove() {
		return 0, false
	}
	return moveDirections[a-core.ActionUp], true
}
