package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// scriptedRand always picks the same empty-cell index and value roll.
type scriptedRand struct {
	idx int
	f   float64
}

func (r scriptedRand) IntN(n int) int   { return r.idx % n }
func (r scriptedRand) Float64() float64 { return r.f }

func snapshotOf(t *testing.T, rows [t2048.BoardSize]t2048.Line, moves ...t2048.Direction) t2048.Snapshot {
	t.Helper()
	g, err := t2048.NewWithBoard(t2048.BoardFromRows(rows), scriptedRand{})
	if err != nil {
		t.Fatalf("NewWithBoard failed: %v", err)
	}
	for _, d := range moves {
		g.Move(d)
	}
	return g.Snapshot()
}

func defaultView() BoardView {
	return BoardView{Theme: NewTheme(config.Default().ThemeColors())}
}

// Screen 40x20: board starts at x=5, y=4.
const (
	testBoardX = (40 - boardWidth) / 2
	testBoardY = hudHeight + 1
)

func TestBoardViewGridAndTiles(t *testing.T) {
	snap := snapshotOf(t, [t2048.BoardSize]t2048.Line{
		{2, 0, 0, 0},
		{},
		{},
		{0, 0, 0, 2048},
	})

	screen := core.NewScreen(40, 20)
	defaultView().Render(screen, ViewState{Snapshot: snap, Best: 500})

	if got := screen.GetCell(testBoardX, testBoardY).Rune; got != '┌' {
		t.Errorf("top-left corner = %q, want ┌", got)
	}
	if got := screen.GetCell(testBoardX+boardWidth-1, testBoardY+boardHeight-1).Rune; got != '┘' {
		t.Errorf("bottom-right corner = %q, want ┘", got)
	}
	if got := screen.GetCell(testBoardX+cellWidth, testBoardY+cellHeight).Rune; got != '┼' {
		t.Errorf("inner intersection = %q, want ┼", got)
	}

	// "2" centred in the first cell
	twoX, twoY := testBoardX+1+2, testBoardY+1
	if got := screen.GetCell(twoX, twoY).Rune; got != '2' {
		t.Errorf("tile 2 at (%d,%d) = %q", twoX, twoY, got)
	}
	if got := screen.GetCell(twoX, twoY).Color; got != core.ColorWhite {
		t.Errorf("tile 2 color = %v, want white", got)
	}

	// "2048" centred in the last cell
	bigX := testBoardX + 3*cellWidth + 1 + 1
	bigY := testBoardY + 3*cellHeight + 1
	if got := string([]rune(screen.Row(bigY))[bigX : bigX+4]); got != "2048" {
		t.Errorf("last cell = %q, want 2048", got)
	}
}

func TestBoardViewHUD(t *testing.T) {
	snap := snapshotOf(t, [t2048.BoardSize]t2048.Line{{2, 2, 0, 0}}, t2048.DirLeft)

	screen := core.NewScreen(40, 20)
	defaultView().Render(screen, ViewState{Snapshot: snap, Best: 100})

	hud := screen.Row(1) + screen.Row(2)
	for _, want := range []string{"Score: 4", "Best: 100", "Moves: 1", "Max: 4"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD missing %q:\n%s", want, hud)
		}
	}
	if !strings.Contains(screen.Row(0), "2048") {
		t.Error("title missing")
	}

	// Best never shows below the running score.
	defaultView().Render(screen, ViewState{Snapshot: snap, Best: 0})
	if !strings.Contains(screen.Row(1), "Best: 4") {
		t.Errorf("best should follow score: %q", screen.Row(1))
	}
}

func TestBoardViewHighlights(t *testing.T) {
	snap := snapshotOf(t, [t2048.BoardSize]t2048.Line{{2, 2, 0, 0}}, t2048.DirLeft)

	var h Highlights
	h.Start(t2048.MoveResult{Moved: true, Merges: []t2048.Pos{{X: 0, Y: 0}}})

	screen := core.NewScreen(40, 20)
	defaultView().Render(screen, ViewState{Snapshot: snap, Highlights: &h})

	x, y := testBoardX+1+2, testBoardY+1
	if got := screen.GetCell(x, y).Color; got != mergeHighlightColor {
		t.Errorf("merged tile color = %v, want highlight", got)
	}

	for range mergeAnimationDuration - 1 {
		h.Step()
	}
	defaultView().Render(screen, ViewState{Snapshot: snap, Highlights: &h})
	if got := screen.GetCell(x, y).Color; got != core.ColorBrightWhite {
		t.Errorf("faded tile color = %v, want theme color for 4", got)
	}
}

func TestBoardViewOverlays(t *testing.T) {
	lockedRows := [t2048.BoardSize]t2048.Line{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	wonLostRows := [t2048.BoardSize]t2048.Line{
		{1024, 1024, 8, 16},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
	}

	tests := []struct {
		name string
		snap t2048.Snapshot
		want []string
	}{
		{"playing", snapshotOf(t, [t2048.BoardSize]t2048.Line{{2}}), nil},
		{"lost", snapshotOf(t, lockedRows), []string{"Game over!", "Max tile: 4"}},
		{"won", snapshotOf(t, [t2048.BoardSize]t2048.Line{{1024, 1024}}, t2048.DirLeft), []string{"You won!", "Score: 2048"}},
		{"won and lost", snapshotOf(t, wonLostRows, t2048.DirLeft), []string{"You won!", "No moves left"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := core.NewScreen(40, 20)
			defaultView().Render(screen, ViewState{Snapshot: tt.snap})
			text := screen.String()

			if tt.want == nil {
				if OverlayLines(tt.snap) != nil || strings.Contains(text, "Press ESC") {
					t.Error("playing game should have no overlay")
				}
				return
			}
			for _, want := range append(tt.want, "Press ESC to play again") {
				if !strings.Contains(text, want) {
					t.Errorf("overlay missing %q:\n%s", want, text)
				}
			}
		})
	}
}

func TestBoardViewTooSmall(t *testing.T) {
	screen := core.NewScreen(MinViewWidth-1, MinViewHeight)
	defaultView().Render(screen, ViewState{Snapshot: snapshotOf(t, [t2048.BoardSize]t2048.Line{{2}})})

	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected too-small message:\n%s", screen.String())
	}
}
