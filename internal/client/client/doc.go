// Package client contains the client-side building blocks for the hotelbook
// auth API.
//
// # Overview
//
//  1. A transport-agnostic contract (Client): Register, Login, Me, Ping.
//  2. Two implementations: HTTPClient over the JSON API and GRPCClient over
//     hotelbook.auth.AuthService. Both report server failures as *APIError
//     with HTTP status semantics.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. A 401 answer matches
// ErrUnauthorized through errors.Is. Message extracts the user-facing text.
package client
