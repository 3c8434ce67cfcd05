package rules

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nstehr/vimy-dig/ipc"
	"github.com/nstehr/vimy-dig/model"
)

// board describes one turn of referee input for tests.
type board struct {
	w, h     int
	ore      map[model.Coord]int
	holes    []model.Coord
	entities []model.EntityReport
	radarCD  int
	trapCD   int
}

func (b board) snapshot() model.Snapshot {
	s := model.Snapshot{
		Cells:         make([]model.CellReport, b.w*b.h),
		RadarCooldown: b.radarCD,
		TrapCooldown:  b.trapCD,
		Entities:      b.entities,
	}
	for c, n := range b.ore {
		s.Cells[c.Y*b.w+c.X].Ore = n
	}
	for _, c := range b.holes {
		s.Cells[c.Y*b.w+c.X].Hole = true
	}
	return s
}

func (b board) world(t *testing.T) *model.World {
	t.Helper()
	w := model.NewWorld(b.w, b.h)
	require.NoError(t, w.Ingest(b.snapshot()))
	return w
}

func robot(id, x, y int, item model.Item) model.EntityReport {
	return model.EntityReport{ID: id, Type: model.MyRobot, Pos: model.Coord{X: x, Y: y}, Item: item}
}

func newTestEngine(t *testing.T, s Strategy) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultRules(), s, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return e
}

func TestDefaultRulesCompile(t *testing.T) {
	engine, err := NewEngine(DefaultRules(), DefaultStrategy(), rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("NewEngine(DefaultRules()) failed: %v", err)
	}
	if len(engine.rules) != 5 {
		t.Errorf("expected 5 rules, got %d", len(engine.rules))
	}
	// Verify priority ordering (descending).
	for i := 1; i < len(engine.rules); i++ {
		if engine.rules[i].Priority > engine.rules[i-1].Priority {
			t.Errorf("rules not sorted by priority: %s (%d) > %s (%d)",
				engine.rules[i].Name, engine.rules[i].Priority,
				engine.rules[i-1].Name, engine.rules[i-1].Priority)
		}
	}
}

func TestBadConditionFailsCompile(t *testing.T) {
	_, err := NewEngine([]*Rule{{Name: "broken", ConditionSrc: `NoSuchHelper()`, Action: ActionExplore}},
		DefaultStrategy(), rand.New(rand.NewPCG(1, 1)))
	assert.Error(t, err)
}

func TestRequestRadarAtHome(t *testing.T) {
	w := board{w: 5, h: 5, entities: []model.EntityReport{robot(0, 0, 2, model.ItemNone)}}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 1)
	assert.Equal(t, "REQUEST RADAR", orders[0].Command.String())
	assert.Equal(t, "request-item", orders[0].Rule)
	assert.True(t, w.RadarRequested)
	assert.False(t, w.TrapRequested)
}

func TestRequestTrapWhenRadarOnCooldown(t *testing.T) {
	w := board{w: 5, h: 5, radarCD: 3, entities: []model.EntityReport{robot(0, 0, 2, model.ItemNone)}}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 1)
	assert.Equal(t, "REQUEST TRAP", orders[0].Command.String())
	assert.True(t, w.TrapRequested)
}

func TestFirstEligibleRobotWinsRequests(t *testing.T) {
	b := board{w: 5, h: 5, entities: []model.EntityReport{
		robot(0, 0, 0, model.ItemNone),
		robot(1, 0, 1, model.ItemNone),
		robot(2, 0, 2, model.ItemNone),
	}}
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(b.world(t))

	require.Len(t, orders, 3)
	assert.Equal(t, "REQUEST RADAR", orders[0].Command.String())
	assert.Equal(t, "REQUEST TRAP", orders[1].Command.String())
	assert.Equal(t, ipc.TypeDig, orders[2].Command.Type)
	assert.Equal(t, "explore-if-idle", orders[2].Rule)
}

func TestRequestsThrottledPerWindow(t *testing.T) {
	b := board{w: 5, h: 5, entities: []model.EntityReport{robot(0, 0, 2, model.ItemNone)}}
	w := model.NewWorld(5, 5)
	e := newTestEngine(t, DefaultStrategy())

	radarTurns := []int{}
	for turn := 1; turn <= 10; turn++ {
		require.NoError(t, w.Ingest(b.snapshot()))
		orders := e.Evaluate(w)
		require.Len(t, orders, 1)
		if orders[0].Command.Type == ipc.TypeRequest && orders[0].Command.Item == model.ItemRadar {
			radarTurns = append(radarTurns, turn)
		}
	}
	assert.Equal(t, []int{1, 6}, radarTurns)
}

func TestDeliverOreKeepsRow(t *testing.T) {
	w := board{w: 5, h: 5, entities: []model.EntityReport{robot(0, 2, 2, model.ItemOre)}}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 1)
	assert.Equal(t, "MOVE 0 2", orders[0].Command.String())
	assert.Equal(t, StateCarryingOre, orders[0].State)
}

func TestMinePrefersUndugOre(t *testing.T) {
	w := board{
		w: 10, h: 10,
		ore:      map[model.Coord]int{{X: 4, Y: 1}: 1, {X: 5, Y: 1}: 2},
		holes:    []model.Coord{{X: 4, Y: 1}},
		entities: []model.EntityReport{robot(0, 1, 1, model.ItemNone)},
	}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 1)
	assert.Equal(t, "DIG 5 1", orders[0].Command.String())
}

func TestMineDigsInPlaceWithoutOre(t *testing.T) {
	w := board{w: 10, h: 10, entities: []model.EntityReport{robot(0, 3, 4, model.ItemNone)}}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)
	assert.Equal(t, "DIG 3 4", orders[0].Command.String())
}

func TestMineExploresFromDugCell(t *testing.T) {
	w := board{
		w: 30, h: 15,
		holes:    []model.Coord{{X: 3, Y: 4}},
		entities: []model.EntityReport{robot(0, 3, 4, model.ItemNone)},
	}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	cmd := orders[0].Command
	require.Equal(t, ipc.TypeDig, cmd.Type)
	// Window past the hole at (3,4): x in [7,26), y in [8,11).
	assert.GreaterOrEqual(t, cmd.Target.X, 7)
	assert.Less(t, cmd.Target.X, 26)
	assert.GreaterOrEqual(t, cmd.Target.Y, 8)
	assert.Less(t, cmd.Target.Y, 11)
}

func TestTrapCarrierFlagsTargetForTeammates(t *testing.T) {
	w := board{
		w: 10, h: 10,
		ore: map[model.Coord]int{{X: 5, Y: 5}: 3},
		entities: []model.EntityReport{
			robot(1, 4, 5, model.ItemTrap),
			robot(2, 3, 5, model.ItemNone),
		},
	}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 2)
	assert.Equal(t, "DIG 5 5", orders[0].Command.String())
	assert.True(t, w.Grid.Hazard(model.Coord{X: 5, Y: 5}))
	assert.Equal(t, "DIG 6 6", orders[1].Command.String())
}

func TestTrapCarrierKeepsTargetWhileWalking(t *testing.T) {
	b := board{
		w: 30, h: 15,
		ore: map[model.Coord]int{{X: 10, Y: 5}: 2},
	}
	w := model.NewWorld(b.w, b.h)
	e := newTestEngine(t, DefaultStrategy())

	for _, x := range []int{2, 6} {
		b.entities = []model.EntityReport{robot(0, x, 5, model.ItemTrap)}
		require.NoError(t, w.Ingest(b.snapshot()))
		orders := e.Evaluate(w)
		require.Len(t, orders, 1)
		assert.Equal(t, "DIG 10 5", orders[0].Command.String(), "robot at x=%d", x)
	}
	for x := range b.w {
		for y := range b.h {
			assert.False(t, w.Grid.Hazard(model.Coord{X: x, Y: y}), "cell %d %d flagged before the robot reached it", x, y)
		}
	}

	b.entities = []model.EntityReport{robot(0, 9, 5, model.ItemTrap)}
	require.NoError(t, w.Ingest(b.snapshot()))
	orders := e.Evaluate(w)
	require.Len(t, orders, 1)
	assert.Equal(t, "DIG 10 5", orders[0].Command.String())
	assert.True(t, w.Grid.Hazard(model.Coord{X: 10, Y: 5}), "flagged on the burying turn")
	assert.False(t, w.Grid.Hazard(model.Coord{X: 11, Y: 6}))
}

func TestWaitWhenNoSafeTarget(t *testing.T) {
	b := board{
		w: 5, h: 5,
		ore:      map[model.Coord]int{{X: 3, Y: 3}: 1},
		entities: []model.EntityReport{robot(0, 1, 1, model.ItemNone)},
	}
	w := model.NewWorld(5, 5)
	w.MarkHazard(model.Coord{X: 3, Y: 3})
	w.MarkHazard(model.Coord{X: 4, Y: 4})
	require.NoError(t, w.Ingest(b.snapshot()))

	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)
	require.Len(t, orders, 1)
	assert.Equal(t, "WAIT", orders[0].Command.String())
	assert.Equal(t, "mine-or-trap", orders[0].Rule, "a WAIT from a failed search must not fall through to exploration")
}

func TestRadarFollowsScript(t *testing.T) {
	tests := []struct {
		placed []model.Coord
		want   string
	}{
		{nil, "DIG 6 9"},
		{[]model.Coord{{X: 6, Y: 9}}, "DIG 8 4"},
		{[]model.Coord{{X: 6, Y: 9}, {X: 8, Y: 4}}, "DIG 12 10"},
	}
	for _, tc := range tests {
		entities := []model.EntityReport{robot(0, 3, 3, model.ItemRadar)}
		for i, p := range tc.placed {
			entities = append(entities, model.EntityReport{ID: 100 + i, Type: model.Radar, Pos: p})
		}
		w := board{w: 30, h: 15, entities: entities}.world(t)
		orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)
		require.Len(t, orders, 1)
		assert.Equal(t, tc.want, orders[0].Command.String(), "with %d radars placed", len(tc.placed))
	}
}

func TestRadarWaypointAvoidsTrap(t *testing.T) {
	b := board{w: 30, h: 15, entities: []model.EntityReport{
		robot(0, 3, 3, model.ItemRadar),
		{ID: 50, Type: model.Trap, Pos: model.Coord{X: 6, Y: 9}},
	}}
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(b.world(t))
	assert.Equal(t, "DIG 7 10", orders[0].Command.String())
}

func TestRadarHeadsForOreAfterScript(t *testing.T) {
	s := DefaultStrategy()
	s.RadarWaypoints = nil
	w := board{
		w: 30, h: 15,
		ore:      map[model.Coord]int{{X: 20, Y: 2}: 1, {X: 9, Y: 3}: 2},
		entities: []model.EntityReport{robot(0, 5, 5, model.ItemRadar)},
	}.world(t)
	orders := newTestEngine(t, s).Evaluate(w)
	assert.Equal(t, "DIG 9 3", orders[0].Command.String())
}

func TestRadarKeepsPendingDestination(t *testing.T) {
	s := DefaultStrategy()
	s.RadarWaypoints = []model.Coord{{X: 26, Y: 10}}
	e := newTestEngine(t, s)
	w := model.NewWorld(30, 15)

	turn := func(x, y int) ipc.Command {
		b := board{w: 30, h: 15, entities: []model.EntityReport{
			robot(0, x, y, model.ItemRadar),
			{ID: 100, Type: model.Radar, Pos: model.Coord{X: 26, Y: 10}},
		}}
		require.NoError(t, w.Ingest(b.snapshot()))
		orders := e.Evaluate(w)
		require.Len(t, orders, 1)
		return orders[0].Command
	}

	first := turn(1, 1)
	require.Equal(t, ipc.TypeDig, first.Type)
	// Window past the radar at (26,10) wraps: x in [4,26), y in [3,11).
	assert.GreaterOrEqual(t, first.Target.X, 4)
	assert.Less(t, first.Target.X, 26)
	assert.GreaterOrEqual(t, first.Target.Y, 3)
	assert.Less(t, first.Target.Y, 11)

	second := turn(2, 1)
	assert.Equal(t, first.Target, second.Target, "destination must persist while the robot is en route")
	assert.Equal(t, 1, e.Memory.Len())

	// Once the radar is gone from the robot the assignment is dropped.
	b := board{w: 30, h: 15, entities: []model.EntityReport{robot(0, first.Target.X, first.Target.Y, model.ItemNone)}}
	require.NoError(t, w.Ingest(b.snapshot()))
	e.Evaluate(w)
	assert.Equal(t, 0, e.Memory.Len())
}

func TestIdleFallbackExplores(t *testing.T) {
	// A trap carrier standing at home matches no dispatch rule.
	w := board{w: 30, h: 15, entities: []model.EntityReport{robot(0, 0, 7, model.ItemTrap)}}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 1)
	assert.Equal(t, StateHomeTrap, orders[0].State)
	assert.Equal(t, "explore-if-idle", orders[0].Rule)
	assert.Equal(t, ipc.TypeDig, orders[0].Command.Type)
	assert.True(t, w.Grid.InBounds(orders[0].Command.Target))
}

func TestDeadRobotsGetNoOrder(t *testing.T) {
	w := board{w: 5, h: 5, entities: []model.EntityReport{
		robot(0, 2, 2, model.ItemOre),
		{ID: 1, Type: model.MyRobot, Pos: model.DeadPos, Item: model.ItemNone},
		robot(2, 3, 1, model.ItemOre),
	}}.world(t)
	orders := newTestEngine(t, DefaultStrategy()).Evaluate(w)

	require.Len(t, orders, 2)
	assert.Equal(t, 0, orders[0].RobotID)
	assert.Equal(t, 2, orders[1].RobotID)
	assert.Equal(t, []string{"MOVE 0 2", "MOVE 0 1"}, []string{
		Commands(orders)[0].String(), Commands(orders)[1].String(),
	})
}

func TestAnnotateAttachesRuleName(t *testing.T) {
	s := DefaultStrategy()
	s.Annotate = true
	w := board{w: 5, h: 5, entities: []model.EntityReport{robot(0, 2, 2, model.ItemOre)}}.world(t)
	orders := newTestEngine(t, s).Evaluate(w)
	assert.Equal(t, "MOVE 0 2 deliver-ore", orders[0].Command.String())
}

func TestSameSeedSameOrders(t *testing.T) {
	b := board{w: 30, h: 15, entities: []model.EntityReport{
		robot(0, 0, 1, model.ItemTrap),
		robot(1, 0, 5, model.ItemRadar),
		robot(2, 0, 9, model.ItemTrap),
	}}
	a := newTestEngine(t, DefaultStrategy()).Evaluate(b.world(t))
	c := newTestEngine(t, DefaultStrategy()).Evaluate(b.world(t))
	assert.Equal(t, a, c)
}
