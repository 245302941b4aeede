package server

// Server is the lifecycle contract for the transports carrying the notes
// API. Today that is the single HTTP server, but the run group does not
// care which transport sits behind the interface.
type Server interface {
	// RunServer blocks serving note requests until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees its resources.
	Shutdown()
}
