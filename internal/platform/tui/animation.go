package tui

import (
	"slices"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Animation durations in ticks.
const (
	mergeAnimationDuration = 6 // ~200ms at 30 ticks/s
	popAnimationDuration   = 6
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseMerge
	PhasePop
)

// HighlightKind tells the board view how to draw a cell.
type HighlightKind int

const (
	HighlightNone HighlightKind = iota
	HighlightMerge
	HighlightSpawn
)

// Highlights fades a short highlight over the cells touched by the last move:
// merged cells first, then the freshly spawned tile.
type Highlights struct {
	phase   AnimationPhase
	ticks   int
	merges  []t2048.Pos
	pops    []t2048.Pos
	pending []t2048.Pos // Spawns waiting for the merge phase to finish
}

// Start begins animating the outcome of a move. No-op moves change nothing.
func (h *Highlights) Start(res t2048.MoveResult) {
	if !res.Moved {
		return
	}

	var spawned []t2048.Pos
	if res.Spawned != nil {
		spawned = []t2048.Pos{res.Spawned.Pos}
	}

	if len(res.Merges) == 0 {
		h.startPop(spawned)
		return
	}

	*h = Highlights{
		phase:   PhaseMerge,
		merges:  slices.Clone(res.Merges),
		pending: spawned,
	}
}

// StartReset pops every tile of a freshly reset board.
func (h *Highlights) StartReset(b t2048.Board) {
	var tiles []t2048.Pos
	for y := range t2048.BoardSize {
		for x := range t2048.BoardSize {
			if !b.At(x, y).IsEmpty() {
				tiles = append(tiles, t2048.Pos{X: x, Y: y})
			}
		}
	}
	h.startPop(tiles)
}

func (h *Highlights) startPop(cells []t2048.Pos) {
	if len(cells) == 0 {
		h.Clear()
		return
	}
	*h = Highlights{phase: PhasePop, pops: cells}
}

func (h *Highlights) duration() int {
	switch h.phase {
	case PhaseMerge:
		return mergeAnimationDuration
	case PhasePop:
		return popAnimationDuration
	default:
		return 0
	}
}

// Step advances the animation by one tick.
// Returns true if animation is still in progress.
func (h *Highlights) Step() bool {
	if h.phase == PhaseNone {
		return false
	}

	h.ticks++
	if h.ticks >= h.duration() {
		h.finish()
	}
	return h.phase != PhaseNone
}

// finish completes the current animation phase.
func (h *Highlights) finish() {
	if h.phase == PhaseMerge && len(h.pending) > 0 {
		h.startPop(h.pending)
		return
	}
	h.Clear()
}

// Clear stops any animation.
func (h *Highlights) Clear() {
	*h = Highlights{}
}

// Active reports whether anything is highlighted.
func (h *Highlights) Active() bool {
	return h.phase != PhaseNone
}

// Phase returns the current animation phase.
func (h *Highlights) Phase() AnimationPhase {
	return h.phase
}

// Progress is the eased completion of the current phase in [0, 1].
func (h *Highlights) Progress() float64 {
	d := h.duration()
	if d == 0 {
		return 1
	}
	t := float64(h.ticks) / float64(d)
	if t > 1 {
		t = 1
	}
	return easeOutQuad(t)
}

// At returns the highlight for a cell.
func (h *Highlights) At(p t2048.Pos) HighlightKind {
	switch h.phase {
	case PhaseMerge:
		if slices.Contains(h.merges, p) {
			return HighlightMerge
		}
	case PhasePop:
		if slices.Contains(h.pops, p) {
			return HighlightSpawn
		}
	}
	return HighlightNone
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
