// Package tui provides the Bubble Tea integration for 2048.
// It handles the terminal UI loop, input mapping, board drawing and the
// SSH server that hosts one game per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Highlights fade over a handful of frames, so anything past this is wasted redraws.
const maxTickRate = 120

// TickMsg advances tile highlight animations.
type TickMsg time.Time

// frameInterval converts a tick rate into the delay between frames.
// Non-positive rates fall back to the default runtime rate.
func frameInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(core.Min(rate, maxTickRate))
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(frameInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
