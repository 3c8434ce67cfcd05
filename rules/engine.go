package rules

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/vimy-dig/ipc"
	"github.com/nstehr/vimy-dig/model"
)

// Order is the decision for one living robot.
type Order struct {
	RobotID int
	State   RobotState
	Rule    string // last rule that fired, empty if none
	Command ipc.Command
}

// Engine runs compiled rules against each of our robots every turn.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category for that robot.
type Engine struct {
	rules    []*Rule
	targets  *Targeter
	strategy Strategy
	Memory   *Memory
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by
// priority. rng drives every random choice the targets make.
func NewEngine(rules []*Rule, s Strategy, rng *rand.Rand) (*Engine, error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	s.Validate()
	return &Engine{
		rules:    compiled,
		targets:  NewTargeter(rng, s),
		strategy: s,
		Memory:   NewMemory(),
	}, nil
}

// Evaluate plans every living robot, in snapshot order. Robot order matters
// only for requests: the first eligible robot takes the window's slot.
func (e *Engine) Evaluate(w *model.World) []Order {
	e.Memory.Prune(w)

	orders := make([]Order, 0, len(w.Mine.Robots))
	for _, robot := range w.Mine.Robots {
		if !robot.Alive() {
			continue
		}
		orders = append(orders, e.plan(w, robot))
	}
	return orders
}

func (e *Engine) plan(w *model.World, robot *model.Entity) Order {
	env := RobotEnv{
		World:   w,
		Robot:   robot,
		State:   Classify(robot.Item, robot.AtHome()),
		targets: e.targets,
		memory:  e.Memory,
	}
	plan := Plan{Command: ipc.Wait(), Idle: true}
	fired := make(map[string]bool) // category → exclusive rule already fired
	last := ""

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		env.Idle = plan.Idle
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "robot", robot.ID, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "robot", robot.ID, "state", env.State)
		plan = r.Action(env, plan)
		last = r.Name

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	if e.strategy.Annotate && last != "" {
		plan.Command = plan.Command.WithMessage(last)
	}
	return Order{RobotID: robot.ID, State: env.State, Rule: last, Command: plan.Command}
}

// Commands extracts the protocol commands from orders, keeping their order.
func Commands(orders []Order) []ipc.Command {
	cmds := make([]ipc.Command, len(orders))
	for i, o := range orders {
		cmds[i] = o.Command
	}
	return cmds
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RobotEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
