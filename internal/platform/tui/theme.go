package tui

import (
	"sort"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// Highlight colors drawn over the theme while a cell animates.
const (
	mergeHighlightColor = core.ColorBrightCyan
	spawnHighlightColor = core.ColorBrightGreen
)

// Theme maps tile values to palette colors.
type Theme struct {
	values []t2048.Tile // ascending
	colors map[t2048.Tile]core.Color
}

// NewTheme builds a theme from value -> color pairs.
func NewTheme(colors map[int]core.Color) Theme {
	th := Theme{colors: make(map[t2048.Tile]core.Color, len(colors))}
	for v, c := range colors {
		if v <= 0 {
			continue
		}
		th.values = append(th.values, t2048.Tile(v))
		th.colors[t2048.Tile(v)] = c
	}
	sort.Slice(th.values, func(i, j int) bool { return th.values[i] < th.values[j] })
	return th
}

// ColorFor returns the color for a tile: the entry for the largest themed
// value not above it. Tiles below every entry use the default color.
func (th Theme) ColorFor(t t2048.Tile) core.Color {
	i := sort.Search(len(th.values), func(i int) bool { return th.values[i] > t })
	if i == 0 {
		return core.ColorDefault
	}
	return th.colors[th.values[i-1]]
}
