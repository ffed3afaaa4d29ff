package gol

import (
	"errors"
	"testing"
	"time"

	"github.com/teemleader/gameoflife/store"
)

func TestCommandForKey(t *testing.T) {
	keys := map[rune]Command{
		's': CommandStart,
		'x': CommandStop,
		'c': CommandClear,
		'+': CommandFaster,
		'-': CommandSlower,
		'n': CommandStep,
		'q': CommandQuit,
	}
	for key, want := range keys {
		got, ok := CommandForKey(key)
		if !ok || got != want {
			t.Errorf("CommandForKey(%q) = %v, %v, want %v", key, got, ok, want)
		}
	}
	if _, ok := CommandForKey('z'); ok {
		t.Error("'z' mapped to a command")
	}
}

func TestDo(t *testing.T) {
	st := store.NewMemory()
	game, err := NewGame(Params{Width: 5, Height: 5, Delay: time.Hour}, st, nil)
	if err != nil {
		t.Fatal(err)
	}
	game.Replace(blinker)

	if err := game.Do(CommandStep); err != nil {
		t.Fatal(err)
	}
	if game.Snapshot().Turn != 1 {
		t.Fatal("Step command did not advance")
	}
	if err := game.Do(CommandSlower); err != nil {
		t.Fatal(err)
	}
	if game.Delay() != MaxDelay {
		t.Fatalf("delay = %v after Slower", game.Delay())
	}
	if err := game.Do(CommandStart); err != nil {
		t.Fatal(err)
	}
	if !game.Running() {
		t.Fatal("Start command did not start")
	}
	if err := game.Do(CommandStop); err != nil {
		t.Fatal(err)
	}
	if err := game.Do(CommandClear); err != nil {
		t.Fatal(err)
	}
	if game.Snapshot().Alive != 0 {
		t.Fatal("Clear command left cells alive")
	}
	if err := game.Do(Command(99)); err == nil {
		t.Fatal("unknown command accepted")
	}
	if err := game.Do(CommandQuit); err != nil {
		t.Fatal(err)
	}
	if err := game.Do(CommandFaster); !errors.Is(err, ErrClosed) {
		t.Fatalf("command after Quit error = %v", err)
	}
}
