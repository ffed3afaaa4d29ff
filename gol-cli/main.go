package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/rpc"
	"os"
	"unicode"

	"github.com/cheggaaa/pb/v3"
	"github.com/gernest/wow"
	"github.com/gernest/wow/spin"

	"github.com/teemleader/gameoflife/board"
	"github.com/teemleader/gameoflife/gol"
	"github.com/teemleader/gameoflife/stage"
	"github.com/teemleader/gameoflife/store"
	"github.com/teemleader/gameoflife/stubs"
	"github.com/teemleader/gameoflife/util"
)

type options struct {
	width, height int
	turns, max    int
	storeDir, key string
	pgm           string
	random        float64
	seed          int64
}

func main() {
	var opts options
	flag.IntVar(&opts.width, "w", gol.DefaultWidth, "board width")
	flag.IntVar(&opts.height, "h", gol.DefaultHeight, "board height")
	flag.IntVar(&opts.turns, "turns", 100, "generations to run, 0 runs until the board settles")
	flag.IntVar(&opts.max, "max", 10000, "most generations to run when -turns is 0")
	flag.StringVar(&opts.storeDir, "store", ".gol", "directory the board is kept in")
	flag.StringVar(&opts.key, "key", gol.DefaultStageKey, "store key of the board")
	flag.StringVar(&opts.pgm, "pgm", "", "seed the board from a PGM image")
	flag.Float64Var(&opts.random, "random", 0, "seed the board randomly with this ratio of alive cells")
	flag.Int64Var(&opts.seed, "seed", 1, "random seed used with -random")
	serverPtr := flag.String("server", "", "send key presses to a gol-server at this address instead")
	flag.Parse()

	var err error
	if *serverPtr != "" {
		err = runRemote(*serverPtr, os.Stdin, os.Stdout)
	} else {
		err = runLocal(opts, os.Stdout)
	}
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// seedGrid builds the starting board from a PGM image or random cells.
// It returns nil when the stored board should be used as is.
func seedGrid(opts options) ([]board.CellState, error) {
	if opts.pgm == "" && opts.random <= 0 {
		return nil, nil
	}
	grid, err := board.NewGrid(opts.width, opts.height)
	if err != nil {
		return nil, err
	}
	if opts.pgm != "" {
		cells, err := util.ReadAliveCells(opts.pgm, opts.width, opts.height)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", opts.pgm, err)
		}
		for _, cell := range cells {
			if err := grid.Toggle(cell.X, cell.Y); err != nil {
				return nil, err
			}
		}
	} else {
		grid.Randomise(rand.New(rand.NewSource(opts.seed)), opts.random)
	}
	return grid.Cells(), nil
}

// runLocal loads the board from the store, advances it and saves it back
func runLocal(opts options, out io.Writer) error {
	st, err := store.NewDir(opts.storeDir)
	if err != nil {
		return err
	}
	game, err := gol.NewGame(gol.Params{
		Width:    opts.width,
		Height:   opts.height,
		StageKey: opts.key,
	}, st, nil)
	if err != nil {
		return err
	}
	defer game.Close()

	cells, err := seedGrid(opts)
	if err != nil {
		return err
	}
	if cells != nil {
		if err := game.Replace(cells); err != nil {
			return err
		}
	}

	var turns int
	if opts.turns > 0 {
		turns, err = runTurns(game, opts.turns)
	} else {
		turns, err = runUntilSettled(game, opts.max)
	}
	if err != nil {
		return err
	}

	if err := game.Save(); err != nil {
		return err
	}
	snap := game.Snapshot()
	fmt.Fprintf(out, "Completed %d turns, %d alive cells\n", turns, snap.Alive)
	fmt.Fprintf(out, "Saved %q to %s\n", opts.key, st.Path())
	return nil
}

// runTurns advances the game a fixed number of turns under a progress bar
// It stops early if the board settles
func runTurns(game *gol.Game, turns int) (int, error) {
	bar := pb.New(turns)
	bar.SetWriter(os.Stderr)
	bar.Start()
	defer bar.Finish()

	for turn := 1; turn <= turns; turn++ {
		changed, err := game.Step()
		if err != nil {
			return turn - 1, err
		}
		bar.Increment()
		if !changed {
			return turn, nil
		}
	}
	return turns, nil
}

// runUntilSettled advances the game until a generation changes nothing
// There is no way to know how long this takes, so show a spinner
func runUntilSettled(game *gol.Game, limit int) (int, error) {
	w := wow.New(os.Stderr, spin.Get(spin.Dots), " Running until the board settles")
	w.Start()

	for turn := 1; turn <= limit; turn++ {
		changed, err := game.Step()
		if err != nil {
			w.Stop()
			return turn - 1, err
		}
		if !changed {
			w.PersistWith(spin.Spinner{Frames: []string{"✔"}}, fmt.Sprintf(" Settled after %d turns", turn))
			return turn, nil
		}
	}
	w.PersistWith(spin.Spinner{Frames: []string{"✘"}}, fmt.Sprintf(" Still changing after %d turns", limit))
	return limit, nil
}

// runRemote forwards every key read from in to the server
// 'v' prints a snapshot of the server's board instead
func runRemote(address string, in io.Reader, out io.Writer) error {
	server, err := rpc.Dial("tcp", address)
	if err != nil {
		return err
	}
	defer server.Close()
	fmt.Fprintln(out, "Established connection with the server:", address)

	reader := bufio.NewReader(in)
	for {
		key, _, err := reader.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if unicode.IsSpace(key) {
			continue
		}

		if key == 'v' {
			if err := printSnapshot(server, out); err != nil {
				return err
			}
			continue
		}

		response := new(stubs.ServerResponse)
		err = server.Call(stubs.ServerRegisterKeypress, stubs.KeypressRequest{Key: key}, response)
		if err != nil {
			return fmt.Errorf("sending keypress to server: %w", err)
		}
		if response.Success {
			fmt.Fprintln(out, response.Message)
		} else {
			fmt.Fprintln(out, "Server error:", response.Message)
		}
		if key == 'q' {
			return nil
		}
	}
}

func printSnapshot(server *rpc.Client, out io.Writer) error {
	snap := new(stubs.SnapshotResponse)
	if err := server.Call(stubs.ServerSnapshot, stubs.Empty{}, snap); err != nil {
		return err
	}
	cells, err := stage.Decode(snap.Stage, snap.Width, snap.Height)
	if err != nil {
		return err
	}
	changed := 0
	for _, cell := range cells {
		if cell == board.AliveChanged {
			changed++
		}
	}
	fmt.Fprintf(out, "Turn %d: %d alive (%d marked changed), speed %d, running %v\n",
		snap.Turn, snap.Alive, changed, snap.Speed, snap.Running)
	return nil
}
