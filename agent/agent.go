package agent

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nstehr/vimy-dig/ipc"
	"github.com/nstehr/vimy-dig/model"
	"github.com/nstehr/vimy-dig/render"
	"github.com/nstehr/vimy-dig/rules"
)

// Agent owns the decision-making for a single game session.
type Agent struct {
	World    *model.World
	Engine   *rules.Engine
	Renderer *render.BoardRenderer // nil disables the board dump

	prev   *stateSnapshot
	events []Event
}

func New(engine *rules.Engine) *Agent {
	return &Agent{Engine: engine}
}

// HandleInit sizes the world once the referee announces the board.
func (a *Agent) HandleInit(init ipc.Init) error {
	a.World = model.NewWorld(init.Width, init.Height)
	a.prev = nil
	a.events = nil
	return nil
}

// HandleTurn ingests one snapshot and returns one command per living robot.
func (a *Agent) HandleTurn(s model.Snapshot) ([]ipc.Command, error) {
	if a.World == nil {
		return nil, errors.New("turn received before init")
	}
	if err := a.World.Ingest(s); err != nil {
		return nil, fmt.Errorf("ingest turn %d: %w", a.World.Turn+1, err)
	}

	events := detectEvents(a.World, a.prev)
	for _, e := range events {
		slog.Info("event", "turn", e.Turn, "kind", e.Kind, "detail", e.Detail)
	}
	a.events = append(a.events, events...)
	snap := takeSnapshot(a.World)
	a.prev = &snap

	orders := a.Engine.Evaluate(a.World)

	slog.Info("turn planned",
		"turn", a.World.Turn,
		"score", fmt.Sprintf("%d-%d", a.World.Mine.Score, a.World.Opponent.Score),
		"robots", len(orders),
		"ore", len(a.World.OreCells),
		"radars", len(a.World.RadarPositions),
		"traps", len(a.World.TrapPositions),
	)
	for _, o := range orders {
		slog.Debug("order", "robot", o.RobotID, "state", o.State, "rule", o.Rule, "command", o.Command.String())
	}

	if a.Renderer != nil {
		if err := a.Renderer.Render(a.World); err != nil {
			slog.Warn("render board", "error", err)
		}
	}

	return rules.Commands(orders), nil
}

// Events returns every event detected since init.
func (a *Agent) Events() []Event {
	return a.events
}

// Summary renders the session's events for the end-of-game log.
func (a *Agent) Summary() string {
	return formatEvents(a.events)
}
