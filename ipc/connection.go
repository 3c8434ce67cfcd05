package ipc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nstehr/vimy-dig/model"
)

// InitHandler receives the board description once, before any turn.
type InitHandler func(init Init) error

// TurnHandler decides the commands for one turn, one per living robot.
type TurnHandler func(s model.Snapshot) ([]Command, error)

// Connection is the referee session: turns come in on one stream and
// commands go out on the other.
type Connection struct {
	src    io.Reader
	in     *Reader
	out    *bufio.Writer
	onInit InitHandler
	onTurn TurnHandler
	Init   Init
}

func NewConnection(r io.Reader, w io.Writer) *Connection {
	return &Connection{
		src: r,
		in:  NewReader(r),
		out: bufio.NewWriter(w),
	}
}

func (c *Connection) RegisterInit(h InitHandler) { c.onInit = h }

func (c *Connection) RegisterTurn(h TurnHandler) { c.onTurn = h }

// ReadLoop blocks until the input ends, a read fails or ctx is cancelled.
// A clean end of input between turns returns nil.
//
// If the input is an io.Closer it is closed when ctx is cancelled, which
// unblocks a pending read. A plain reader is only checked between turns, so
// cancellation waits for the next turn to arrive.
func (c *Connection) ReadLoop(ctx context.Context) error {
	if c.onTurn == nil {
		return errors.New("no turn handler registered")
	}
	if cl, ok := c.src.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { _ = cl.Close() })
		defer stop()
	}

	init, err := c.in.ReadInit()
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	if err != nil {
		return fmt.Errorf("read init: %w", err)
	}
	c.Init = init
	slog.Info("board received", "width", init.Width, "height", init.Height)
	if c.onInit != nil {
		if err := c.onInit(init); err != nil {
			return fmt.Errorf("init handler: %w", err)
		}
	}

	for turn := 1; ; turn++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		snap, err := c.in.ReadTurn(init)
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if errors.Is(err, io.EOF) {
			slog.Info("input closed", "turns", turn-1)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read turn %d: %w", turn, err)
		}

		cmds, err := c.onTurn(snap)
		if err != nil {
			slog.Error("turn handler error", "turn", turn, "error", err)
			continue
		}

		if err := WriteCommands(c.out, cmds); err != nil {
			return fmt.Errorf("turn %d: %w", turn, err)
		}
	}
}
