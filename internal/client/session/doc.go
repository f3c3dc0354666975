// Package session holds the CLI's authentication state.
//
// A Store keeps the current token and user summary in memory and mirrors
// them into the local SQLite file under the "token" and "user" keys so a
// restarted CLI resumes the session. Both copies change together: durable
// writes run in one transaction and memory is updated only after commit.
//
// The Store never checks token expiry. A token rejected by the server stays
// stored until Logout.
package session
