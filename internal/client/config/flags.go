package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the HTTP API
//	-g string   address and port of the gRPC API
//	-m string   transport: http or grpc
//	-r int      request timeout in seconds
//	-f string   session storage file
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-m", "-r", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the HTTP API")
	fs.StringVar(&cfg.ServerEndpointAddrGRPC, "g", cfg.ServerEndpointAddrGRPC, "address and port of the gRPC API")
	fs.StringVar(&cfg.Transport, "m", cfg.Transport, "transport (http, grpc)")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoragePath, "f", cfg.StoragePath, "session storage file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
