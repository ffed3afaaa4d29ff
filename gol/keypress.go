package gol

import "fmt"

// Command is an instruction a user can give a running Game.
type Command uint8

// This is a way of creating enums in Go.
// It will evaluate to:
//		CommandStart  = 0
//		CommandStop   = 1
//		CommandClear  = 2
//		...
const (
	CommandStart Command = iota
	CommandStop
	CommandClear
	CommandFaster
	CommandSlower
	CommandStep
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "Start"
	case CommandStop:
		return "Stop"
	case CommandClear:
		return "Clear"
	case CommandFaster:
		return "Faster"
	case CommandSlower:
		return "Slower"
	case CommandStep:
		return "Step"
	case CommandQuit:
		return "Quit"
	default:
		return "Incorrect Command"
	}
}

// CommandForKey figures out what a key press means.
func CommandForKey(key rune) (Command, bool) {
	switch key {
	case 's':
		return CommandStart, true
	case 'x':
		return CommandStop, true
	case 'c':
		return CommandClear, true
	case '+':
		return CommandFaster, true
	case '-':
		return CommandSlower, true
	case 'n':
		return CommandStep, true
	case 'q':
		return CommandQuit, true
	}
	return 0, false
}

// Do runs a command against the game.
func (g *Game) Do(cmd Command) error {
	switch cmd {
	case CommandStart:
		return g.Start()
	case CommandStop:
		return g.Stop()
	case CommandClear:
		return g.Clear()
	case CommandFaster:
		return g.Faster()
	case CommandSlower:
		return g.Slower()
	case CommandStep:
		_, err := g.Step()
		return err
	case CommandQuit:
		return g.Close()
	}
	return fmt.Errorf("unknown command %d", cmd)
}
