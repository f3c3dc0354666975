package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-g string   gRPC bind address (e.g., ":50051"), empty disables gRPC
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      token validity, hours
//	-h string   password hash algorithm (bcrypt, argon2id)
//	-k int      password hash cost
//	-o string   comma separated CORS origins
//	-l string   log backend (slog, zap)
//
// os.Args is first narrowed to these flags with flagx.FilterArgs so that
// -c/-config is not rejected here.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-s", "-t", "-h", "-k", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port, empty to disable")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token_validity_duration (in hours)")

	fs.StringVar(&config.PasswordHashAlgorithm, "h", config.PasswordHashAlgorithm, "password hash algorithm")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "password hash cost")

	origins := fs.String("o", strings.Join(config.CORSAllowedOrigins, ","), "CORS allowed origins, comma separated")

	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only flags actually given override, so sub-hour TOKEN_TTL values survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Hour
		case "o":
			config.CORSAllowedOrigins = flagx.SplitList(*origins)
		}
	})
}
