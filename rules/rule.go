package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vimy-dig/ipc"
)

// Plan is a robot's decision in progress. Idle stays true until some rule
// claims the robot.
type Plan struct {
	Command ipc.Command
	Idle    bool
}

// ActionFunc decides a robot's plan when a rule's condition is true. It
// receives the plan built so far and returns the updated plan.
type ActionFunc func(env RobotEnv, plan Plan) Plan

// Rule is the atomic unit of robot behavior: a condition → action pair.
// The engine evaluates rules by priority; an exclusive rule that fires stops
// lower-priority rules in the same category for that robot.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
