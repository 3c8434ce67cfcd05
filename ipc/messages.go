package ipc

// Init is the one-time board description sent before the first turn.
type Init struct {
	Width  int
	Height int
}

// Ore reports use this token when the cell is outside radar coverage.
const unknownOre = "?"
