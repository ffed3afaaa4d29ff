package stubs

//    RPC STRINGS

// Server RPC strings
var ServerToggle = "Server.Toggle"
var ServerStart = "Server.Start"
var ServerStop = "Server.Stop"
var ServerClear = "Server.Clear"
var ServerFaster = "Server.Faster"
var ServerSlower = "Server.Slower"
var ServerSnapshot = "Server.Snapshot"
var ServerRegisterKeypress = "Server.RegisterKeypress"
var ServerPing = "Server.Ping"

// ServerResponse contains a result from a standard server RPC call
// Success indicates if the call executed its desired function
// Message contains any additional information
type ServerResponse struct {
	Success bool
	Message string
}

// ToggleRequest asks the server to flip a single cell
type ToggleRequest struct {
	X, Y int
}

// KeypressRequest is used to send a keypress from a client to be handled at the server
type KeypressRequest struct {
	Key rune
}

// SnapshotResponse carries the whole board back to a client
// The board is sent as a stage string, which is far smaller than one byte per cell
type SnapshotResponse struct {
	Width  int
	Height int
	Stage  string

	Turn    int
	Alive   int
	Running bool
	Speed   int
}

// Empty is used when there is no information for an RPC function to return
type Empty struct{}
