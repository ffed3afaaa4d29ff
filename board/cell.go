package board

// CellState is the value stored for every cell of a Grid.
// It is not a boolean: a cell that came alive during the latest generation
// is kept apart from one that was already alive so it can be drawn differently.
type CellState uint8

// This is a way of creating enums in Go.
// It will evaluate to:
//		Dead         = 0
//		Alive        = 1
//		AliveChanged = 2
//		Reserved     = 3
const (
	Dead CellState = iota
	Alive
	AliveChanged
	// Reserved has a letter in the stage alphabet but nothing produces it.
	Reserved
)

// IsAlive reports whether the cell counts as alive for the rules.
// AliveChanged is only a rendering hint and behaves exactly like Alive.
func (s CellState) IsAlive() bool {
	return s == Alive || s == AliveChanged
}

// String methods allow the different cell states to be printed.
func (s CellState) String() string {
	switch s {
	case Dead:
		return "Dead"
	case Alive:
		return "Alive"
	case AliveChanged:
		return "AliveChanged"
	case Reserved:
		return "Reserved"
	default:
		return "Incorrect CellState"
	}
}
