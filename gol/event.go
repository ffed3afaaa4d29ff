package gol

import (
	"fmt"

	"github.com/teemleader/gameoflife/util"
)

// State represents a change in the state of execution.
type State int

const (
	Stopped State = iota
	Executing
	Quitting
)

// String methods allow the different types of Events and States to be printed.
func (state State) String() string {
	switch state {
	case Stopped:
		return "Stopped"
	case Executing:
		return "Executing"
	case Quitting:
		return "Quitting"
	default:
		return "Incorrect State"
	}
}

// Event represents any Game of Life event that a Game reports.
type Event interface {
	fmt.Stringer

	// GetCompletedTurns should return the number of fully completed turns.
	GetCompletedTurns() int
}

// TurnComplete is sent after every generation the game advances.
type TurnComplete struct {
	CompletedTurns int
}

// AliveCellsCount is sent after every generation with the population,
// for charting.
type AliveCellsCount struct {
	CompletedTurns int
	CellsCount     int
}

// StateChange is sent when the game starts, stops or quits.
type StateChange struct {
	CompletedTurns int
	NewState       State
}

// FinalTurnComplete is sent when a generation flips no cell. The board has
// reached a fixed point and the game stops advancing it.
type FinalTurnComplete struct {
	CompletedTurns int
	Alive          []util.Cell
}

func (event TurnComplete) String() string {
	return ""
}

func (event TurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event AliveCellsCount) String() string {
	return fmt.Sprintf("Alive Cells %v", event.CellsCount)
}

func (event AliveCellsCount) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event StateChange) String() string {
	return fmt.Sprintf("%v", event.NewState)
}

func (event StateChange) GetCompletedTurns() int {
	return event.CompletedTurns
}

func (event FinalTurnComplete) String() string {
	return fmt.Sprintf("Fixed point with %v alive cells", len(event.Alive))
}

func (event FinalTurnComplete) GetCompletedTurns() int {
	return event.CompletedTurns
}
