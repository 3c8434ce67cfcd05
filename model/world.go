package model

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// RequestWindow is the number of turns during which at most one radar and
// one trap request may be outstanding.
const RequestWindow = 5

// World is the planner's view of the board for the current turn. Everything
// except trap flags and the request throttle is rebuilt by Ingest.
type World struct {
	Width  int
	Height int
	Grid   *Grid

	Mine     Team
	Opponent Team
	Entities map[int]*Entity

	OreCells       []Cell // cells with Ore > 0, row-major order
	Holes          mapset.Set[Coord]
	RadarPositions []Coord // snapshot order; the last one is the most recent radar
	TrapPositions  []Coord

	RadarCooldown int
	TrapCooldown  int

	// Set by the planner when a request is issued; cleared every RequestWindow turns.
	RadarRequested bool
	TrapRequested  bool
	windowTurn     int

	Turn int
}

func NewWorld(width, height int) *World {
	return &World{
		Width:    width,
		Height:   height,
		Grid:     NewGrid(width, height),
		Entities: make(map[int]*Entity),
		Holes:    mapset.New[Coord](),
	}
}

// Ingest replaces the per-turn state with the contents of s.
func (w *World) Ingest(s Snapshot) error {
	if len(s.Cells) != w.Width*w.Height {
		return fmt.Errorf("snapshot has %d cells, board is %dx%d", len(s.Cells), w.Width, w.Height)
	}

	if w.windowTurn >= RequestWindow {
		w.windowTurn = 0
		w.RadarRequested = false
		w.TrapRequested = false
	}

	w.Mine = Team{Score: s.MyScore}
	w.Opponent = Team{Score: s.OpponentScore}

	w.OreCells = nil
	w.Holes = mapset.New[Coord]()
	for i, r := range s.Cells {
		cell := &w.Grid.Cells[i]
		cell.Ore = r.Ore
		cell.Hole = r.Hole
		if cell.HasOre() {
			w.OreCells = append(w.OreCells, *cell)
		}
		if cell.Hole {
			w.Holes.Put(cell.Pos)
		}
	}

	w.RadarCooldown = s.RadarCooldown
	w.TrapCooldown = s.TrapCooldown

	w.Entities = make(map[int]*Entity, len(s.Entities))
	w.RadarPositions = nil
	w.TrapPositions = nil
	for _, r := range s.Entities {
		e := &Entity{ID: r.ID, Type: r.Type, Pos: r.Pos, Item: r.Item}
		w.Entities[e.ID] = e
		switch e.Type {
		case MyRobot:
			w.Mine.Robots = append(w.Mine.Robots, e)
		case EnemyRobot:
			w.Opponent.Robots = append(w.Opponent.Robots, e)
		case Radar:
			w.RadarPositions = append(w.RadarPositions, e.Pos)
		case Trap:
			w.TrapPositions = append(w.TrapPositions, e.Pos)
			w.MarkHazard(e.Pos)
		}
	}

	w.windowTurn++
	w.Turn++
	return nil
}

// MarkHazard flags c as trapped. It is used both for confirmed traps and for
// traps the planner has just ordered, before the referee reports them.
func (w *World) MarkHazard(c Coord) {
	if cell, err := w.Grid.At(c); err == nil {
		cell.Trap = true
	}
}

// LastRadar returns the most recently reported radar position.
func (w *World) LastRadar() (Coord, bool) {
	if len(w.RadarPositions) == 0 {
		return Coord{}, false
	}
	return w.RadarPositions[len(w.RadarPositions)-1], true
}

// LivingRobots returns our robots that are still in play, in snapshot order.
func (w *World) LivingRobots() []*Entity {
	out := make([]*Entity, 0, len(w.Mine.Robots))
	for _, r := range w.Mine.Robots {
		if r.Alive() {
			out = append(out, r)
		}
	}
	return out
}
