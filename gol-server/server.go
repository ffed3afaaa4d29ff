package main

import (
	"flag"
	"fmt"
	"net"
	"net/rpc"
	"os"
	"sync"
	"time"

	"github.com/teemleader/gameoflife/gol"
	"github.com/teemleader/gameoflife/stage"
	"github.com/teemleader/gameoflife/store"
	"github.com/teemleader/gameoflife/stubs"
)

// Server structure for RPC functions
// Every call is forwarded to the one game this server hosts
type Server struct {
	game *gol.Game
	// quit is closed when a client asks the server to shut down
	quit     chan struct{}
	quitOnce sync.Once
}

func newServer(game *gol.Game) *Server {
	return &Server{game: game, quit: make(chan struct{})}
}

// respond fills in a standard response from the result of a game call
func respond(res *stubs.ServerResponse, err error, okMessage string) error {
	if err != nil {
		// Game errors are reported in the response, not as RPC failures
		res.Success = false
		res.Message = err.Error()
		return nil
	}
	res.Success = true
	res.Message = okMessage
	return nil
}

// Toggle is called by a client to flip a cell while the game is stopped
func (s *Server) Toggle(req stubs.ToggleRequest, res *stubs.ServerResponse) (err error) {
	return respond(res, s.game.Toggle(req.X, req.Y), "Toggled")
}

// Start is called by a client to start advancing generations
func (s *Server) Start(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	println("Received request to start the game")
	return respond(res, s.game.Start(), "Started")
}

// Stop is called by a client to stop the game and restore the saved board
func (s *Server) Stop(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	println("Received request to stop the game")
	return respond(res, s.game.Stop(), "Stopped")
}

// Clear is called by a client to kill every cell
func (s *Server) Clear(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	println("Received request to clear the board")
	return respond(res, s.game.Clear(), "Cleared")
}

// Faster is called by a client to shorten the delay between generations
func (s *Server) Faster(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	return respond(res, s.game.Faster(), fmt.Sprintf("Speed %d", s.game.Speed()))
}

// Slower is called by a client to lengthen the delay between generations
func (s *Server) Slower(req stubs.Empty, res *stubs.ServerResponse) (err error) {
	return respond(res, s.game.Slower(), fmt.Sprintf("Speed %d", s.game.Speed()))
}

// Snapshot sends the whole board back to the client as a stage string
func (s *Server) Snapshot(req stubs.Empty, res *stubs.SnapshotResponse) (err error) {
	snap := s.game.Snapshot()
	res.Width = snap.Width
	res.Height = snap.Height
	res.Stage = stage.Encode(snap.Cells)
	res.Turn = snap.Turn
	res.Alive = snap.Alive
	res.Running = snap.Running
	res.Speed = snap.Speed
	return
}

// RegisterKeypress is called by a client when a key is pressed
func (s *Server) RegisterKeypress(req stubs.KeypressRequest, res *stubs.ServerResponse) (err error) {
	println("Received keypress request:", string(req.Key))
	cmd, ok := gol.CommandForKey(req.Key)
	if !ok {
		res.Success = false
		res.Message = fmt.Sprintf("Unknown key %q", req.Key)
		return
	}
	if cmd == gol.CommandQuit {
		// Quitting closes the game, the main routine then closes the listener
		closeErr := s.game.Close()
		s.quitOnce.Do(func() { close(s.quit) })
		return respond(res, closeErr, "Quitting")
	}
	return respond(res, s.game.Do(cmd), cmd.String())
}

// Ping exists so clients can poll their connection to us
func (s *Server) Ping(req stubs.Empty, res *stubs.Empty) (err error) {
	// No need to do anything here
	return
}

// logEvents prints every event the game sends until the channel is closed
func logEvents(events <-chan gol.Event) {
	for event := range events {
		switch e := event.(type) {
		case gol.TurnComplete:
			// Too frequent to print
		case gol.AliveCellsCount:
			println("Turn:", e.CompletedTurns, ",", e.CellsCount, "alive")
		case gol.StateChange:
			println("Turn:", e.CompletedTurns, "state ->", e.NewState.String())
		case gol.FinalTurnComplete:
			println("Turn:", e.CompletedTurns, e.String())
		}
	}
}

func openStore(dir string) (store.Store, error) {
	if dir == "" {
		return store.NewMemory(), nil
	}
	return store.NewDir(dir)
}

func main() {
	// Read in the network port we should listen on, from the commandline argument.
	// Default to port 8020
	portPtr := flag.String("p", "8020", "port to listen on")
	storePtr := flag.String("store", "", "directory to keep the board in (memory if empty)")
	widthPtr := flag.Int("w", gol.DefaultWidth, "board width")
	heightPtr := flag.Int("h", gol.DefaultHeight, "board height")
	delayPtr := flag.Duration("delay", gol.DefaultDelay, "delay between generations")
	flag.Parse()
	println("Started server")
	println("Our RPC port:", *portPtr)

	st, err := openStore(*storePtr)
	if err != nil {
		fmt.Println("Error opening store:", err)
		os.Exit(1)
	}

	events := make(chan gol.Event, 16)
	game, err := gol.NewGame(gol.Params{
		Width:  *widthPtr,
		Height: *heightPtr,
		Delay:  *delayPtr,
	}, st, events)
	if err != nil {
		fmt.Println("Error creating game:", err)
		os.Exit(1)
	}
	go logEvents(events)

	server := newServer(game)
	// Register our RPC server
	rpc.Register(server)

	// Create a listener to handle rpc requests
	listener, err := net.Listen("tcp", ":"+*portPtr)
	if err != nil {
		fmt.Println("Error starting listener:", err)
		os.Exit(1)
	}

	// Closing the listener ends rpc.Accept below
	go func() {
		<-server.quit
		// Give the quitting client time to read its response
		time.Sleep(100 * time.Millisecond)
		listener.Close()
	}()

	// This will block until the listener is closed
	rpc.Accept(listener)

	if err := game.Close(); err != nil {
		fmt.Println("Error closing game:", err)
	}
	println("Server closed")
}
