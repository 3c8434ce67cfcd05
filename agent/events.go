package agent

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/nstehr/vimy-dig/model"
)

// EventKind identifies a notable change between two consecutive turns.
type EventKind string

const (
	EventRobotLost      EventKind = "robot_lost"
	EventRadarDeployed  EventKind = "radar_deployed"
	EventTrapDeployed   EventKind = "trap_deployed"
	EventOreDelivered   EventKind = "ore_delivered"
	EventOreDiscovered  EventKind = "ore_discovered"
	EventOpponentScored EventKind = "opponent_scored"
)

// Event is a change detected by diffing consecutive turns. Events only feed
// the log; they never steer the planner.
type Event struct {
	Kind   EventKind
	Turn   int
	Detail string
}

// stateSnapshot captures the diffable parts of one turn.
type stateSnapshot struct {
	alive    mapset.Set[int] // own robot ids still on the board
	radars   int
	traps    int
	myScore  int
	oppScore int
	oreKnown bool
}

func takeSnapshot(w *model.World) stateSnapshot {
	snap := stateSnapshot{
		alive:    mapset.New[int](),
		radars:   len(w.RadarPositions),
		traps:    len(w.TrapPositions),
		myScore:  w.Mine.Score,
		oppScore: w.Opponent.Score,
		oreKnown: len(w.OreCells) > 0,
	}
	for _, r := range w.Mine.Robots {
		if r.Alive() {
			snap.alive.Put(r.ID)
		}
	}
	return snap
}

// detectEvents compares the current world against the previous snapshot.
// Returns nil on the first turn.
func detectEvents(w *model.World, prev *stateSnapshot) []Event {
	if prev == nil {
		return nil
	}

	var events []Event
	cur := takeSnapshot(w)

	var lost []int
	prev.alive.Each(func(id int) {
		if !cur.alive.Has(id) {
			lost = append(lost, id)
		}
	})
	if len(lost) > 0 {
		slices.Sort(lost)
		events = append(events, Event{
			Kind:   EventRobotLost,
			Turn:   w.Turn,
			Detail: fmt.Sprintf("Lost robots: %v", lost),
		})
	}

	if cur.radars > prev.radars {
		events = append(events, Event{
			Kind:   EventRadarDeployed,
			Turn:   w.Turn,
			Detail: fmt.Sprintf("Radars on board: %d→%d", prev.radars, cur.radars),
		})
	}

	if cur.traps > prev.traps {
		events = append(events, Event{
			Kind:   EventTrapDeployed,
			Turn:   w.Turn,
			Detail: fmt.Sprintf("Traps on board: %d→%d", prev.traps, cur.traps),
		})
	}

	if cur.myScore > prev.myScore {
		events = append(events, Event{
			Kind:   EventOreDelivered,
			Turn:   w.Turn,
			Detail: fmt.Sprintf("Delivered %d ore (score %d)", cur.myScore-prev.myScore, cur.myScore),
		})
	}

	if cur.oppScore > prev.oppScore {
		events = append(events, Event{
			Kind:   EventOpponentScored,
			Turn:   w.Turn,
			Detail: fmt.Sprintf("Opponent delivered %d ore (score %d)", cur.oppScore-prev.oppScore, cur.oppScore),
		})
	}

	if !prev.oreKnown && cur.oreKnown {
		events = append(events, Event{
			Kind:   EventOreDiscovered,
			Turn:   w.Turn,
			Detail: fmt.Sprintf("First ore sighted: %d cells", len(w.OreCells)),
		})
	}

	return events
}

// formatEvents renders events one per line for debug output.
func formatEvents(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range events {
		fmt.Fprintf(&b, "[turn %d] %s: %s\n", e.Turn, e.Kind, e.Detail)
	}
	return b.String()
}
