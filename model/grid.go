package model

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for lookups outside the board.
var ErrOutOfRange = errors.New("coordinate out of range")

// Cell is one square of the board. Ore and Hole are replaced every turn;
// Trap sticks once set.
type Cell struct {
	Pos  Coord
	Ore  int // 0 when unknown or empty
	Hole bool
	Trap bool
}

func (c Cell) HasOre() bool { return c.Ore > 0 }

// Grid is a fixed Width x Height board stored row-major: Cells[y*Width + x].
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Cells[y*width+x].Pos = Coord{X: x, Y: y}
		}
	}
	return g
}

func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// At returns the cell at c, or ErrOutOfRange.
func (g *Grid) At(c Coord) (*Cell, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("cell (%d, %d) on %dx%d board: %w", c.X, c.Y, g.Width, g.Height, ErrOutOfRange)
	}
	return &g.Cells[c.Y*g.Width+c.X], nil
}

// Hazard reports whether a trap is known at c. Off-board is never hazardous.
func (g *Grid) Hazard(c Coord) bool {
	cell, err := g.At(c)
	return err == nil && cell.Trap
}

// Dug reports whether c has a hole. Off-board is never dug.
func (g *Grid) Dug(c Coord) bool {
	cell, err := g.At(c)
	return err == nil && cell.Hole
}

// Clamp returns the on-board coordinate nearest to c.
func (g *Grid) Clamp(c Coord) Coord {
	return Coord{X: clampInt(c.X, 0, g.Width-1), Y: clampInt(c.Y, 0, g.Height-1)}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
