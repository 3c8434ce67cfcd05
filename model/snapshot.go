package model

// Snapshot is one turn of referee input after parsing.
type Snapshot struct {
	MyScore       int
	OpponentScore int
	Cells         []CellReport // row-major, Width*Height entries
	RadarCooldown int
	TrapCooldown  int
	Entities      []EntityReport
}

type CellReport struct {
	Ore  int // 0 when unknown
	Hole bool
}

type EntityReport struct {
	ID   int
	Type EntityType
	Pos  Coord
	Item Item
}
