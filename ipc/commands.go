package ipc

import (
	"fmt"

	"github.com/nstehr/vimy-dig/model"
)

// Command verbs understood by the referee.
const (
	TypeWait    = "WAIT"
	TypeMove    = "MOVE"
	TypeDig     = "DIG"
	TypeRequest = "REQUEST"
)

// Command is one robot's order for a turn. Message is free text the referee
// displays next to the robot; it has no effect on play.
type Command struct {
	Type    string
	Target  model.Coord // MOVE and DIG
	Item    model.Item  // REQUEST
	Message string
}

func Wait() Command { return Command{Type: TypeWait} }

func Move(c model.Coord) Command { return Command{Type: TypeMove, Target: c} }

func Dig(c model.Coord) Command { return Command{Type: TypeDig, Target: c} }

func Request(item model.Item) Command { return Command{Type: TypeRequest, Item: item} }

func (c Command) WithMessage(msg string) Command {
	c.Message = msg
	return c
}

// String renders the command as a protocol line, without the trailing newline.
func (c Command) String() string {
	var line string
	switch c.Type {
	case TypeMove, TypeDig:
		line = fmt.Sprintf("%s %d %d", c.Type, c.Target.X, c.Target.Y)
	case TypeRequest:
		line = fmt.Sprintf("%s %s", c.Type, c.Item)
	default:
		line = TypeWait
	}
	if c.Message != "" {
		line += " " + c.Message
	}
	return line
}
