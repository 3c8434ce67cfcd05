// Package render draws the board as text for debugging on stderr.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/nstehr/vimy-dig/model"
)

// Board symbols.
const (
	IconEmpty    = "."
	IconHole     = "o"
	IconRadar    = "*"
	IconTrap     = "X"
	IconRobot    = "R"
	IconEnemy    = "E"
	IconOreLarge = "+" // ore above 9
)

// BoardRenderer prints one frame per turn. Colors are only used when the
// output is a terminal.
type BoardRenderer struct {
	out     io.Writer
	colored bool

	colorOre   color.Style
	colorHole  color.Style
	colorRadar color.Style
	colorTrap  color.Style
	colorRobot color.Style
	colorEnemy color.Style
	colorEmpty color.Style
}

func NewBoardRenderer(out io.Writer) *BoardRenderer {
	r := &BoardRenderer{
		out:        out,
		colorOre:   color.Style{color.FgYellow, color.OpBold},
		colorHole:  color.Style{color.FgGray},
		colorRadar: color.Style{color.FgCyan},
		colorTrap:  color.Style{color.FgRed, color.OpBold},
		colorRobot: color.Style{color.FgGreen, color.OpBold},
		colorEnemy: color.Style{color.FgMagenta},
		colorEmpty: color.Style{color.FgDarkGray},
	}
	if f, ok := out.(*os.File); ok {
		r.colored = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// Render writes the header line and one row of symbols per board row.
func (r *BoardRenderer) Render(w *model.World) error {
	occupants := make(map[model.Coord]string)
	for _, e := range w.Opponent.Robots {
		if e.Alive() {
			occupants[e.Pos] = IconEnemy
		}
	}
	for _, e := range w.Mine.Robots {
		if e.Alive() {
			occupants[e.Pos] = IconRobot
		}
	}
	radars := make(map[model.Coord]bool, len(w.RadarPositions))
	for _, p := range w.RadarPositions {
		radars[p] = true
	}

	bw := bufio.NewWriter(r.out)
	fmt.Fprintf(bw, "turn %d  score %d-%d  radar cd %d  trap cd %d\n",
		w.Turn, w.Mine.Score, w.Opponent.Score, w.RadarCooldown, w.TrapCooldown)
	for y := range w.Height {
		for x := range w.Width {
			c := model.Coord{X: x, Y: y}
			cell, err := w.Grid.At(c)
			if err != nil {
				return err
			}
			bw.WriteString(r.symbol(cell, occupants[c], radars[c]))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (r *BoardRenderer) symbol(cell *model.Cell, occupant string, radar bool) string {
	switch {
	case occupant == IconRobot:
		return r.paint(r.colorRobot, IconRobot)
	case occupant == IconEnemy:
		return r.paint(r.colorEnemy, IconEnemy)
	case cell.Trap:
		return r.paint(r.colorTrap, IconTrap)
	case radar:
		return r.paint(r.colorRadar, IconRadar)
	case cell.HasOre() && cell.Ore > 9:
		return r.paint(r.colorOre, IconOreLarge)
	case cell.HasOre():
		return r.paint(r.colorOre, fmt.Sprint(cell.Ore))
	case cell.Hole:
		return r.paint(r.colorHole, IconHole)
	default:
		return r.paint(r.colorEmpty, IconEmpty)
	}
}

func (r *BoardRenderer) paint(s color.Style, text string) string {
	if !r.colored {
		return text
	}
	return s.Sprint(text)
}
