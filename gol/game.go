package gol

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/teemleader/gameoflife/board"
	"github.com/teemleader/gameoflife/stage"
	"github.com/teemleader/gameoflife/store"
	"github.com/teemleader/gameoflife/util"
)

var (
	// ErrRunning is returned for edits attempted while generations are being advanced.
	ErrRunning = errors.New("game is running")
	// ErrClosed is returned by every method once the game has been closed.
	ErrClosed = errors.New("game is closed")
)

// Game drives a Grid: it advances generations on a ticker, saves the board
// to the store when a run starts and restores it when the run stops.
// All methods are safe to call from several goroutines.
type Game struct {
	params Params
	store  store.Store

	mu      sync.Mutex
	grid    *board.Grid
	delay   time.Duration
	turn    int
	running bool
	closed  bool
	// stop is closed to end the ticker goroutine, which closes done on exit
	stop chan struct{}
	done chan struct{}
	// wake tells the ticker goroutine the delay changed
	wake chan struct{}

	emitMu       sync.Mutex
	events       chan<- Event
	eventsClosed bool
}

// Snapshot is a copy of the game's state at one instant.
type Snapshot struct {
	Width   int
	Height  int
	Cells   []board.CellState
	Turn    int
	Alive   int
	Running bool
	Delay   time.Duration
	Speed   int
}

// NewGame creates a game and restores the board and delay saved in st, if any.
// Events are sent on events, which may be nil. The caller must keep receiving
// from it until it is closed by Close. Start, Stop, Step and Close send on
// events before returning, so the goroutine receiving events may only call
// them if events has room to spare.
func NewGame(p Params, st store.Store, events chan<- Event) (*Game, error) {
	p = p.withDefaults()
	grid, err := board.NewGrid(p.Width, p.Height)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = store.NewMemory()
	}

	g := &Game{
		params: p,
		store:  st,
		grid:   grid,
		delay:  p.Delay,
		events: events,
	}
	if err := g.loadStage(); err != nil {
		return nil, err
	}
	if err := g.loadDelay(); err != nil {
		return nil, err
	}
	return g, nil
}

// Params returns the parameters the game was created with, defaults filled in.
func (g *Game) Params() Params { return g.params }

// loadStage replaces the board with the one in the store. Must hold g.mu.
func (g *Game) loadStage() error {
	value, ok, err := g.store.Load(g.params.StageKey)
	if err != nil {
		return fmt.Errorf("loading stage: %w", err)
	}
	if !ok {
		return nil
	}
	cells, err := stage.Decode(value, g.params.Width, g.params.Height)
	if err != nil {
		return fmt.Errorf("loading stage %q: %w", g.params.StageKey, err)
	}
	return g.grid.SetCells(cells)
}

// saveStage writes the board to the store. Must hold g.mu.
func (g *Game) saveStage() error {
	if err := g.store.Save(g.params.StageKey, stage.Encode(g.grid.Cells())); err != nil {
		return fmt.Errorf("saving stage: %w", err)
	}
	return nil
}

func (g *Game) loadDelay() error {
	value, ok, err := g.store.Load(g.params.DelayKey)
	if err != nil {
		return fmt.Errorf("loading delay: %w", err)
	}
	if !ok {
		return nil
	}
	ms, err := strconv.Atoi(value)
	if err != nil || ms <= 0 {
		return fmt.Errorf("loading delay %q: invalid value %q", g.params.DelayKey, value)
	}
	g.delay = time.Duration(ms) * time.Millisecond
	return nil
}

// emit sends an event unless the game has no event channel.
// When stop is closed the send is abandoned.
func (g *Game) emit(stop <-chan struct{}, e Event) {
	g.emitMu.Lock()
	defer g.emitMu.Unlock()
	if g.events == nil || g.eventsClosed {
		return
	}
	if stop == nil {
		g.events <- e
		return
	}
	select {
	case g.events <- e:
	case <-stop:
	}
}

// Start saves the board and begins advancing it every delay.
// Starting a running game does nothing.
func (g *Game) Start() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	if g.running {
		g.mu.Unlock()
		return nil
	}
	if err := g.saveStage(); err != nil {
		g.mu.Unlock()
		return err
	}
	g.running = true
	g.turn = 0
	g.stop = make(chan struct{})
	g.done = make(chan struct{})
	g.wake = make(chan struct{}, 1)
	go g.loop(g.delay, g.stop, g.done, g.wake)
	g.mu.Unlock()

	g.emit(nil, StateChange{CompletedTurns: 0, NewState: Executing})
	return nil
}

// loop is the ticker goroutine of a single run, it returns when stop is closed.
// Once a generation changes nothing the ticker is paused until the delay changes.
func (g *Game) loop(delay time.Duration, stop <-chan struct{}, done chan<- struct{}, wake <-chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-wake:
			// Restart the ticker with the new delay
			g.mu.Lock()
			delay = g.delay
			g.mu.Unlock()
			ticker.Reset(delay)
		case <-ticker.C:
			g.mu.Lock()
			// Stop may have run while we waited for the lock
			select {
			case <-stop:
				g.mu.Unlock()
				return
			default:
			}

			changed := g.grid.AdvanceGeneration()
			g.turn++
			turn := g.turn
			alive := g.grid.CountAlive()
			var final []util.Cell
			if !changed {
				final = g.grid.AliveCells()
			}
			g.mu.Unlock()

			g.emit(stop, TurnComplete{CompletedTurns: turn})
			g.emit(stop, AliveCellsCount{CompletedTurns: turn, CellsCount: alive})

			// Nothing flipped, pause until the delay changes
			if !changed {
				ticker.Stop()
				select {
				case <-ticker.C:
				default:
				}
				g.emit(stop, FinalTurnComplete{CompletedTurns: turn, Alive: final})
			}
		}
	}
}

// Stop ends the run and restores the board saved by Start.
// Stopping a game that is not running does nothing.
func (g *Game) Stop() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	if !g.running {
		g.mu.Unlock()
		return nil
	}
	close(g.stop)
	done := g.done
	g.stop, g.done, g.wake = nil, nil, nil
	g.running = false
	turn := g.turn
	err := g.loadStage()
	g.mu.Unlock()

	<-done
	g.emit(nil, StateChange{CompletedTurns: turn, NewState: Stopped})
	return err
}

// Clear kills every cell and saves the empty board.
// This is allowed while running, the run then reaches a fixed point.
func (g *Game) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	g.grid.Clear()
	return g.saveStage()
}

// Toggle flips the cell at (x, y). The board can only be edited while stopped.
func (g *Game) Toggle(x, y int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	if g.running {
		return ErrRunning
	}
	return g.grid.Toggle(x, y)
}

// Replace overwrites the whole board while stopped.
func (g *Game) Replace(cells []board.CellState) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	if g.running {
		return ErrRunning
	}
	return g.grid.SetCells(cells)
}

// Step advances a stopped game by one generation and reports whether
// anything changed.
func (g *Game) Step() (bool, error) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return false, ErrClosed
	}
	if g.running {
		g.mu.Unlock()
		return false, ErrRunning
	}
	changed := g.grid.AdvanceGeneration()
	g.turn++
	turn := g.turn
	alive := g.grid.CountAlive()
	g.mu.Unlock()

	g.emit(nil, TurnComplete{CompletedTurns: turn})
	g.emit(nil, AliveCellsCount{CompletedTurns: turn, CellsCount: alive})
	return changed, nil
}

// Save writes the current board to the store.
func (g *Game) Save() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	return g.saveStage()
}

// Faster shortens the delay between generations and saves it.
func (g *Game) Faster() error {
	return g.setDelay(faster)
}

// Slower lengthens the delay between generations and saves it.
func (g *Game) Slower() error {
	return g.setDelay(slower)
}

func (g *Game) setDelay(next func(time.Duration) time.Duration) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	g.delay = next(g.delay)
	if g.running {
		select {
		case g.wake <- struct{}{}:
		default:
		}
	}
	ms := strconv.FormatInt(g.delay.Milliseconds(), 10)
	if err := g.store.Save(g.params.DelayKey, ms); err != nil {
		return fmt.Errorf("saving delay: %w", err)
	}
	return nil
}

// Delay returns the current time between generations.
func (g *Game) Delay() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.delay
}

// Speed is the delay shown as a speed, 1000 minus the delay in milliseconds.
func (g *Game) Speed() int {
	return speedOf(g.Delay())
}

func speedOf(delay time.Duration) int {
	return 1000 - int(delay.Milliseconds())
}

// Running reports whether Start has been called without a matching Stop.
// A run that reached a fixed point is still running.
func (g *Game) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Snapshot copies the current state of the game.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		Width:   g.grid.Width(),
		Height:  g.grid.Height(),
		Cells:   g.grid.Cells(),
		Turn:    g.turn,
		Alive:   g.grid.CountAlive(),
		Running: g.running,
		Delay:   g.delay,
		Speed:   speedOf(g.delay),
	}
}

// Close ends any run, reports Quitting and closes the events channel.
func (g *Game) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	var done chan struct{}
	if g.running {
		close(g.stop)
		done = g.done
		g.stop, g.done, g.wake = nil, nil, nil
		g.running = false
	}
	turn := g.turn
	g.mu.Unlock()

	if done != nil {
		<-done
	}
	g.emit(nil, StateChange{CompletedTurns: turn, NewState: Quitting})

	g.emitMu.Lock()
	defer g.emitMu.Unlock()
	if g.events != nil && !g.eventsClosed {
		close(g.events)
		g.eventsClosed = true
	}
	return nil
}
