package model

import "fmt"

// EntityType values match the codes sent by the referee.
type EntityType int

const (
	MyRobot    EntityType = 0
	EnemyRobot EntityType = 1
	Radar      EntityType = 2
	Trap       EntityType = 3
)

func (t EntityType) String() string {
	switch t {
	case MyRobot:
		return "my_robot"
	case EnemyRobot:
		return "enemy_robot"
	case Radar:
		return "radar"
	case Trap:
		return "trap"
	}
	return fmt.Sprintf("entity(%d)", int(t))
}

// ParseEntityType converts a wire code.
func ParseEntityType(code int) (EntityType, error) {
	switch t := EntityType(code); t {
	case MyRobot, EnemyRobot, Radar, Trap:
		return t, nil
	}
	return 0, fmt.Errorf("unknown entity type %d", code)
}

// Item is what a robot is carrying. Codes match the referee.
type Item int

const (
	ItemNone  Item = -1
	ItemRadar Item = 2
	ItemTrap  Item = 3
	ItemOre   Item = 4
)

func (i Item) String() string {
	switch i {
	case ItemNone:
		return "NONE"
	case ItemRadar:
		return "RADAR"
	case ItemTrap:
		return "TRAP"
	case ItemOre:
		return "ORE"
	}
	return fmt.Sprintf("ITEM(%d)", int(i))
}

// ParseItem converts a wire code. Enemy robots report -1 or 4 only.
func ParseItem(code int) (Item, error) {
	switch i := Item(code); i {
	case ItemNone, ItemRadar, ItemTrap, ItemOre:
		return i, nil
	}
	return 0, fmt.Errorf("unknown item %d", code)
}

// Entity is anything the referee reports: robots, radars and traps.
type Entity struct {
	ID   int
	Type EntityType
	Pos  Coord
	Item Item
}

func (e *Entity) Alive() bool { return e.Pos != DeadPos }

// AtHome reports whether the entity stands on the delivery column.
func (e *Entity) AtHome() bool { return e.Pos.X == 0 }

type Team struct {
	Score  int
	Robots []*Entity
}
