package model

import "fmt"

// Coord is a grid position. X is the column, Y the row.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// DeadPos is reported for entities that have been removed from play.
var DeadPos = Coord{X: -1, Y: -1}

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Distance is the Manhattan distance; robots move in four directions.
func (c Coord) Distance(o Coord) int {
	return Manhattan(c, o)
}

func (c Coord) String() string {
	return fmt.Sprintf("%d %d", c.X, c.Y)
}

func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
