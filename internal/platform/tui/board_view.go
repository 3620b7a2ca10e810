package tui

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3

	boardWidth  = t2048.BoardSize*cellWidth + 1  // +1 for right border
	boardHeight = t2048.BoardSize*cellHeight + 1 // +1 for bottom border

	// MinViewWidth and MinViewHeight are the smallest screen the board fits on.
	MinViewWidth  = boardWidth
	MinViewHeight = hudHeight + 1 + boardHeight
)

// highlightFade is the eased progress after which a highlight returns to the theme color.
const highlightFade = 0.5

// ViewState is everything the board view needs for one frame.
type ViewState struct {
	Snapshot   t2048.Snapshot
	Best       int
	Highlights *Highlights
}

// BoardView draws a game snapshot onto a screen.
type BoardView struct {
	Theme Theme
}

// Render draws the game state to the screen.
func (v BoardView) Render(dst *core.Screen, st ViewState) {
	dst.Clear()

	if dst.Width() < MinViewWidth || dst.Height() < MinViewHeight {
		renderTooSmall(dst)
		return
	}

	boardX := (dst.Width() - boardWidth) / 2
	boardY := hudHeight + 1

	v.renderHUD(dst, st, boardX)
	renderGrid(dst, boardX, boardY)
	v.renderTiles(dst, st, boardX, boardY)
	renderOverlay(dst, st.Snapshot, boardX, boardY)
}

// renderTooSmall shows a "window too small" message.
func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score, best and move counter.
func (v BoardView) renderHUD(dst *core.Screen, st ViewState, boardX int) {
	s := st.Snapshot

	title := "2048"
	dst.DrawTextColored(boardX+(boardWidth-len(title))/2, 0, title, core.ColorBrightYellow)

	best := st.Best
	if s.Score > best {
		best = s.Score
	}

	scoreStr := fmt.Sprintf("Score: %d", s.Score)
	dst.DrawText(boardX, 1, scoreStr)

	bestStr := fmt.Sprintf("Best: %d", best)
	dst.DrawText(boardX+boardWidth-len(bestStr), 1, bestStr)

	movesStr := fmt.Sprintf("Moves: %d", s.Moves)
	dst.DrawTextColored(boardX, 2, movesStr, core.ColorGray)

	maxStr := fmt.Sprintf("Max: %d", s.MaxTile)
	dst.DrawTextColored(boardX+boardWidth-len(maxStr), 2, maxStr, core.ColorGray)
}

// renderGrid draws the 4x4 grid borders.
func renderGrid(dst *core.Screen, boardX, boardY int) {
	const n = t2048.BoardSize
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			// Draw corner/intersection
			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetColored(px, py, corner, core.ColorGray)

			if x < n {
				dst.DrawHLine(px+1, py, cellWidth-1, '─', core.ColorGray)
			}
			if y < n {
				dst.DrawVLine(px, py+1, cellHeight-1, '│', core.ColorGray)
			}
		}
	}
}

// renderTiles draws tile values centred in their cells.
func (v BoardView) renderTiles(dst *core.Screen, st ViewState, boardX, boardY int) {
	for y := range t2048.BoardSize {
		for x := range t2048.BoardSize {
			val := st.Snapshot.TileAt(x, y)
			if val.IsEmpty() {
				continue
			}

			cellX := boardX + x*cellWidth + 1
			cellY := boardY + y*cellHeight + 1

			valStr := strconv.FormatUint(uint64(val), 10)
			padLeft := core.Max((cellWidth-1-len(valStr))/2, 0)

			dst.DrawTextColored(cellX+padLeft, cellY, valStr, v.tileColor(st, t2048.Pos{X: x, Y: y}, val))
		}
	}
}

func (v BoardView) tileColor(st ViewState, p t2048.Pos, val t2048.Tile) core.Color {
	if h := st.Highlights; h != nil && h.Progress() < highlightFade {
		switch h.At(p) {
		case HighlightMerge:
			return mergeHighlightColor
		case HighlightSpawn:
			return spawnHighlightColor
		}
	}
	return v.Theme.ColorFor(val)
}

// OverlayLines returns the message shown over the board, or nil while playing.
func OverlayLines(s t2048.Snapshot) []string {
	const again = "Press ESC to play again"
	switch s.Status {
	case t2048.StatusWonAndLost:
		return []string{"You won!", "No moves left", again}
	case t2048.StatusWon:
		return []string{"You won!", fmt.Sprintf("Score: %d", s.Score), again}
	case t2048.StatusLost:
		return []string{"Game over!", fmt.Sprintf("Max tile: %d", s.MaxTile), again}
	default:
		return nil
	}
}

// renderOverlay draws the end-of-game box over the board.
func renderOverlay(dst *core.Screen, s t2048.Snapshot, boardX, boardY int) {
	lines := OverlayLines(s)
	if lines == nil {
		return
	}

	centerX, centerY := core.NewRect(boardX, boardY, boardWidth, boardHeight).Center()

	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	color := core.ColorBrightRed
	if s.Won {
		color = core.ColorBrightGreen
	}

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, line := range lines {
		c := color
		if i > 0 {
			c = core.ColorDefault
		}
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, c)
	}
}
