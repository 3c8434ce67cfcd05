package rules

import (
	"log/slog"
	"math/rand/v2"

	"github.com/nstehr/vimy-dig/model"
)

// Targeter picks dig destinations. All randomness comes from its generator,
// so a fixed seed replays the same match decisions.
type Targeter struct {
	rng      *rand.Rand
	strategy Strategy
}

func NewTargeter(rng *rand.Rand, s Strategy) *Targeter {
	return &Targeter{rng: rng, strategy: s}
}

// NearestOre returns the ore cell closest to from, preferring cells nobody
// has dug yet. Ties go to the first cell in board order.
func NearestOre(w *model.World, from model.Coord) (model.Coord, bool) {
	best, found := nearestOre(w.OreCells, from, true)
	if !found {
		best, found = nearestOre(w.OreCells, from, false)
	}
	return best, found
}

func nearestOre(cells []model.Cell, from model.Coord, undugOnly bool) (model.Coord, bool) {
	var best model.Coord
	bestDist := -1
	for _, c := range cells {
		if undugOnly && c.Hole {
			continue
		}
		if d := c.Pos.Distance(from); bestDist < 0 || d < bestDist {
			best, bestDist = c.Pos, d
		}
	}
	return best, bestDist >= 0
}

// RadarWaypoint returns the scripted spot for the next radar while the script
// lasts. Waypoints off a small board are pulled onto its edge.
func (t *Targeter) RadarWaypoint(w *model.World) (model.Coord, bool) {
	n := len(w.RadarPositions)
	if n >= len(t.strategy.RadarWaypoints) {
		return model.Coord{}, false
	}
	return w.Grid.Clamp(t.strategy.RadarWaypoints[n]), true
}

// RadarCandidate draws a radar spot in the window past the latest radar,
// avoiding holes and traps. With no radar on the board the robot itself is
// the anchor.
func (t *Targeter) RadarCandidate(w *model.World, from model.Coord) model.Coord {
	anchor, ok := w.LastRadar()
	if !ok {
		anchor = from
	}
	c, ok := t.sample(t.window(w, anchor), func(c model.Coord) bool {
		return w.Grid.Dug(c) || w.Grid.Hazard(c)
	})
	if !ok {
		slog.Debug("radar search exhausted, using unfiltered candidate", "anchor", anchor, "candidate", c)
	}
	return c
}

// ExploreTarget picks somewhere new to dig: a trap-free spot in the window
// past the nearest hole, or anywhere on the board before the first hole.
func (t *Targeter) ExploreTarget(w *model.World, from model.Coord) model.Coord {
	anchor, ok := nearestHole(w, from)
	if !ok {
		return model.Coord{X: t.rng.IntN(w.Width), Y: t.rng.IntN(w.Height)}
	}
	c, ok := t.sample(t.window(w, anchor), w.Grid.Hazard)
	if !ok {
		slog.Debug("explore search exhausted, using unfiltered candidate", "anchor", anchor, "candidate", c)
	}
	return c
}

// SafeTarget walks diagonally from dest until it finds a cell without a
// known trap. It gives up when the walk leaves the board or runs out of steps.
func (t *Targeter) SafeTarget(w *model.World, dest model.Coord) (model.Coord, bool) {
	limit := t.strategy.MaxRetargetSteps
	if limit == 0 {
		limit = w.Width + w.Height
	}
	c := dest
	for range limit + 1 {
		if !w.Grid.InBounds(c) {
			return dest, false
		}
		if !w.Grid.Hazard(c) {
			return c, true
		}
		c = c.Add(model.Coord{X: 1, Y: 1})
	}
	return dest, false
}

// nearestHole returns the dug cell closest to from; ties go to the lowest
// row, then the lowest column, so the set's iteration order does not matter.
func nearestHole(w *model.World, from model.Coord) (model.Coord, bool) {
	var best model.Coord
	bestDist := -1
	w.Holes.Each(func(c model.Coord) {
		d := c.Distance(from)
		if bestDist < 0 || d < bestDist || (d == bestDist && (c.Y < best.Y || (c.Y == best.Y && c.X < best.X))) {
			best, bestDist = c, d
		}
	})
	return best, bestDist >= 0
}

// searchWindow is a half-open search rectangle [X0, X1) x [Y0, Y1).
type searchWindow struct {
	X0, X1, Y0, Y1 int
}

func (t *Targeter) window(w *model.World, anchor model.Coord) searchWindow {
	x0, x1 := t.axis(anchor.X, w.Width, t.strategy.WrapX)
	y0, y1 := t.axis(anchor.Y, w.Height, t.strategy.WrapY)
	return searchWindow{X0: x0, X1: x1, Y0: y0, Y1: y1}
}

// axis steps past the anchor, wrapping back to wrap near the far edge. A
// range that comes out empty on a small board widens to the whole axis.
func (t *Targeter) axis(anchor, size, wrap int) (int, int) {
	lo := anchor + t.strategy.WindowStep
	if anchor >= size-t.strategy.EdgeMargin {
		lo = wrap
	}
	hi := size - t.strategy.FarMargin
	lo = max(lo, 0)
	hi = min(hi, size)
	if lo >= hi {
		return 0, size
	}
	return lo, hi
}

// sample draws up to MaxSamples candidates from win and returns the first one
// not rejected. On exhaustion it returns the last draw and false.
func (t *Targeter) sample(win searchWindow, reject func(model.Coord) bool) (model.Coord, bool) {
	var c model.Coord
	for range t.strategy.MaxSamples {
		c = model.Coord{
			X: win.X0 + t.rng.IntN(win.X1-win.X0),
			Y: win.Y0 + t.rng.IntN(win.Y1-win.Y0),
		}
		if !reject(c) {
			return c, true
		}
	}
	return c, false
}
