package rules

import "github.com/nstehr/vimy-dig/model"

// Assignment remembers a multi-turn destination. Start is where the robot
// stood when the destination was last confirmed; Start == Dest means the
// robot reached it and needs a new one.
type Assignment struct {
	Start model.Coord
	Dest  model.Coord
}

// Memory gives robots persistent destinations across turns. Without it, a
// robot walking to a random radar spot would pick a new spot every turn.
type Memory struct {
	assignments map[int]*Assignment
}

func NewMemory() *Memory {
	return &Memory{assignments: make(map[int]*Assignment)}
}

// Assignment returns the robot's assignment, creating an empty one.
func (m *Memory) Assignment(robotID int) *Assignment {
	a, ok := m.assignments[robotID]
	if !ok {
		a = &Assignment{}
		m.assignments[robotID] = a
	}
	return a
}

func (m *Memory) Len() int { return len(m.assignments) }

// Prune drops assignments of robots that died, vanished or no longer carry
// a radar.
func (m *Memory) Prune(w *model.World) {
	for id := range m.assignments {
		e, ok := w.Entities[id]
		if !ok || e.Type != model.MyRobot || !e.Alive() || e.Item != model.ItemRadar {
			delete(m.assignments, id)
		}
	}
}
