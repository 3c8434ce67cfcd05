package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nstehr/vimy-dig/model"
)

// Reader tokenizes the referee's whitespace-separated input. Line breaks carry
// no meaning beyond separating tokens, so the scanner splits on words.
type Reader struct {
	sc *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	return &Reader{sc: sc}
}

// ReadInit reads the board dimensions.
func (r *Reader) ReadInit() (Init, error) {
	w, err := r.readInt("width")
	if err != nil {
		return Init{}, err
	}
	h, err := r.readInt("height")
	if err != nil {
		return Init{}, err
	}
	if w <= 0 || h <= 0 {
		return Init{}, fmt.Errorf("invalid board size %dx%d", w, h)
	}
	return Init{Width: w, Height: h}, nil
}

// ReadTurn reads one turn for a board of the given size. It returns io.EOF
// only when the input ends cleanly before the turn starts.
func (r *Reader) ReadTurn(init Init) (model.Snapshot, error) {
	var s model.Snapshot
	var err error

	if s.MyScore, err = r.readInt("my score"); err != nil {
		return s, err
	}
	if s.OpponentScore, err = r.readInt("opponent score"); err != nil {
		return s, noEOF(err)
	}

	s.Cells = make([]model.CellReport, init.Width*init.Height)
	for i := range s.Cells {
		ore, err := r.readWord("ore")
		if err != nil {
			return s, noEOF(err)
		}
		if ore != unknownOre {
			n, err := strconv.Atoi(ore)
			if err != nil {
				return s, fmt.Errorf("cell %d ore %q: %w", i, ore, err)
			}
			s.Cells[i].Ore = n
		}
		hole, err := r.readInt("hole")
		if err != nil {
			return s, noEOF(err)
		}
		s.Cells[i].Hole = hole != 0
	}

	count, err := r.readInt("entity count")
	if err != nil {
		return s, noEOF(err)
	}
	if count < 0 {
		return s, fmt.Errorf("invalid entity count %d", count)
	}
	if s.RadarCooldown, err = r.readInt("radar cooldown"); err != nil {
		return s, noEOF(err)
	}
	if s.TrapCooldown, err = r.readInt("trap cooldown"); err != nil {
		return s, noEOF(err)
	}

	s.Entities = make([]model.EntityReport, 0, count)
	for range count {
		e, err := r.entity()
		if err != nil {
			return s, noEOF(err)
		}
		s.Entities = append(s.Entities, e)
	}
	return s, nil
}

func (r *Reader) entity() (model.EntityReport, error) {
	var vals [5]int
	for i, name := range []string{"entity id", "entity type", "entity x", "entity y", "entity item"} {
		v, err := r.readInt(name)
		if err != nil {
			return model.EntityReport{}, err
		}
		vals[i] = v
	}
	typ, err := model.ParseEntityType(vals[1])
	if err != nil {
		return model.EntityReport{}, fmt.Errorf("entity %d: %w", vals[0], err)
	}
	item, err := model.ParseItem(vals[4])
	if err != nil {
		return model.EntityReport{}, fmt.Errorf("entity %d: %w", vals[0], err)
	}
	return model.EntityReport{
		ID:   vals[0],
		Type: typ,
		Pos:  model.Coord{X: vals[2], Y: vals[3]},
		Item: item,
	}, nil
}

func (r *Reader) readWord(what string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", what, err)
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *Reader) readInt(what string) (int, error) {
	tok, err := r.readWord(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", what, tok, err)
	}
	return n, nil
}

// noEOF turns an EOF in the middle of a turn into a truncation error.
func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// WriteCommands writes one line per command and flushes.
func WriteCommands(w *bufio.Writer, cmds []Command) error {
	for _, c := range cmds {
		if _, err := w.WriteString(c.String()); err != nil {
			return fmt.Errorf("write command: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write command: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush commands: %w", err)
	}
	return nil
}
