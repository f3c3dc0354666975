// Package config loads runtime configuration for the hotelbook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the HTTP API
//	-g string   address:port of the gRPC API
//	-m string   transport: http or grpc
//	-r int      request timeout (seconds)
//	-f string   session storage file
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://127.0.0.1:3000",
//	  "server_endpoint_addr_grpc": "127.0.0.1:50051",
//	  "transport": "http",
//	  "request_timeout": "10s",
//	  "storage_path": "session.db"
//	}
package config
