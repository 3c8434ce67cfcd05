package rules

import (
	"slices"
	"strings"

	"github.com/nstehr/vimy-dig/model"
)

// RobotEnv is what a rule sees while planning one robot. Exported methods are
// callable from expr conditions; actions mutate World through the pointer.
type RobotEnv struct {
	World *model.World
	Robot *model.Entity
	State RobotState
	Idle  bool

	targets *Targeter
	memory  *Memory
}

// InState reports whether the robot is in any of the named states.
func (e RobotEnv) InState(states ...string) bool {
	return slices.Contains(states, string(e.State))
}

// CanRequest reports whether a RADAR or TRAP request is allowed this turn:
// the cooldown has expired and nothing is outstanding in the request window.
func (e RobotEnv) CanRequest(item string) bool {
	switch strings.ToUpper(item) {
	case model.ItemRadar.String():
		return e.World.RadarCooldown == 0 && !e.World.RadarRequested
	case model.ItemTrap.String():
		return e.World.TrapCooldown == 0 && !e.World.TrapRequested
	}
	return false
}

func (e RobotEnv) AtHome() bool { return e.Robot.AtHome() }

// Carrying reports whether the robot holds item (NONE, RADAR, TRAP or ORE).
func (e RobotEnv) Carrying(item string) bool {
	return strings.EqualFold(e.Robot.Item.String(), item)
}
