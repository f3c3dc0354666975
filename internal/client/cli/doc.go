// Package cli provides the interactive hotelbook command-line client.
//
// It wires configuration, the local session database, an API client (HTTP or
// gRPC) and the session store behind a small REPL:
//
//   - register / login / logout
//   - status: session state and connectivity mode
//   - whoami: asks the server who the stored token belongs to
//   - ping: checks the server and updates the connectivity mode
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
