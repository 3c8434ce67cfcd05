package rules

import "github.com/nstehr/vimy-dig/model"

// RobotState is the dispatch key for the rule chain. Every living robot is in
// exactly one state, derived from what it carries and whether it stands on
// the home column.
type RobotState string

const (
	StateHomeEmpty   RobotState = "home-empty"
	StateHomeRadar   RobotState = "home-radar"
	StateHomeTrap    RobotState = "home-trap"
	StateFieldEmpty  RobotState = "field-empty"
	StateFieldRadar  RobotState = "field-radar"
	StateFieldTrap   RobotState = "field-trap"
	StateCarryingOre RobotState = "carrying-ore"
)

// Classify maps a robot to its state. Ore carriers are one state wherever
// they stand: the only thing to do with ore is bring it home.
func Classify(item model.Item, atHome bool) RobotState {
	switch item {
	case model.ItemOre:
		return StateCarryingOre
	case model.ItemRadar:
		if atHome {
			return StateHomeRadar
		}
		return StateFieldRadar
	case model.ItemTrap:
		if atHome {
			return StateHomeTrap
		}
		return StateFieldTrap
	}
	if atHome {
		return StateHomeEmpty
	}
	return StateFieldEmpty
}
