package config

import "time"

// Transport names accepted in Config.Transport.
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Config holds runtime settings for the hotelbook CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the HTTP API.
//   - ServerEndpointAddrGRPC: host:port of the gRPC API.
//   - Transport: "http" or "grpc".
//   - RequestTimeout: upper bound for a single API call.
//   - StoragePath: SQLite file holding the persisted session.
type Config struct {
	ServerEndpointAddr     string
	ServerEndpointAddrGRPC string
	Transport              string
	RequestTimeout         time.Duration
	StoragePath            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:3000"
	c.ServerEndpointAddrGRPC = "127.0.0.1:50051"
	c.Transport = TransportHTTP
	c.RequestTimeout = 10 * time.Second
	c.StoragePath = "session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
