package rules

import (
	"log/slog"

	"github.com/nstehr/vimy-dig/ipc"
	"github.com/nstehr/vimy-dig/model"
)

// DigRange is how far from its own cell a robot can dig.
const DigRange = 1

// ActionRequestItem asks for a radar, or a trap when radars are throttled.
// Only one robot per request window gets each item.
func ActionRequestItem(env RobotEnv, plan Plan) Plan {
	switch {
	case env.CanRequest(model.ItemRadar.String()):
		env.World.RadarRequested = true
		plan.Command = ipc.Request(model.ItemRadar)
	case env.CanRequest(model.ItemTrap.String()):
		env.World.TrapRequested = true
		plan.Command = ipc.Request(model.ItemTrap)
	default:
		return plan
	}
	slog.Debug("requesting item", "robot", env.Robot.ID, "item", plan.Command.Item)
	plan.Idle = false
	return plan
}

// ActionPlaceRadar follows the radar script, then heads for known ore, then
// scatters radars past the last one.
func ActionPlaceRadar(env RobotEnv, plan Plan) Plan {
	if wp, ok := env.targets.RadarWaypoint(env.World); ok {
		return safeDig(env, plan, wp)
	}
	if ore, ok := NearestOre(env.World, env.Robot.Pos); ok {
		return safeDig(env, plan, ore)
	}
	return digIfNotBusy(env, plan)
}

// ActionMineOrTrap digs the nearest ore. Without known ore it digs where it
// stands, or moves on to a fresh spot if that cell is already dug. A robot
// carrying a trap buries it wherever it digs.
func ActionMineOrTrap(env RobotEnv, plan Plan) Plan {
	pos := env.Robot.Pos
	var target model.Coord
	if ore, ok := NearestOre(env.World, pos); ok {
		target = ore
	} else if !env.World.Grid.Dug(pos) {
		target = pos
	} else {
		target = env.targets.ExploreTarget(env.World, pos)
	}

	plan = safeDig(env, plan, target)

	// Flag the trap once the robot is close enough to bury it this turn, so
	// teammates stop targeting the cell before the referee reports it.
	if env.Robot.Item == model.ItemTrap && plan.Command.Type == ipc.TypeDig &&
		env.Robot.Pos.Distance(plan.Command.Target) <= DigRange {
		env.World.MarkHazard(plan.Command.Target)
	}
	return plan
}

// ActionDeliverOre walks straight to the home column on the current row.
func ActionDeliverOre(env RobotEnv, plan Plan) Plan {
	plan.Command = ipc.Move(model.Coord{X: 0, Y: env.Robot.Pos.Y})
	plan.Idle = false
	return plan
}

// ActionExplore sends an unclaimed robot to dig somewhere new.
func ActionExplore(env RobotEnv, plan Plan) Plan {
	return safeDig(env, plan, env.targets.ExploreTarget(env.World, env.Robot.Pos))
}

// digIfNotBusy keeps a robot on its remembered destination until it gets
// there, then draws a new radar spot.
func digIfNotBusy(env RobotEnv, plan Plan) Plan {
	a := env.memory.Assignment(env.Robot.ID)
	if a.Start == a.Dest {
		a.Dest = env.targets.RadarCandidate(env.World, env.Robot.Pos)
		slog.Debug("new radar destination", "robot", env.Robot.ID, "dest", a.Dest)
	}
	a.Start = env.Robot.Pos
	return safeDig(env, plan, a.Dest)
}

// safeDig digs at dest or the first trap-free cell diagonally past it. If
// there is none the robot waits out the turn.
func safeDig(env RobotEnv, plan Plan, dest model.Coord) Plan {
	plan.Idle = false
	target, ok := env.targets.SafeTarget(env.World, dest)
	if !ok {
		slog.Debug("no trap-free dig target", "robot", env.Robot.ID, "dest", dest)
		plan.Command = ipc.Wait()
		return plan
	}
	plan.Command = ipc.Dig(target)
	return plan
}
