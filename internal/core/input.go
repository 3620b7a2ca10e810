package core

// Action is what a key press means to the game, independent of the key itself.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionBack    // Abandon the board and deal a new one
	ActionRestart // New game, only once the current one is over
	ActionQuit
	ActionHelp
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionHelp:    "Help",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// IsMove reports whether a slides the board.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}
