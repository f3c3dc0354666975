package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
	"github.com/dmitrijs2005/hotelbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds. Keys absent from the file
// leave the current values untouched.
type JsonConfig struct {
	ServerEndpointAddr     string          `json:"server_endpoint_addr"`
	ServerEndpointAddrGRPC string          `json:"server_endpoint_addr_grpc"`
	Transport              string          `json:"transport"`
	RequestTimeout         *timex.Duration `json:"request_timeout"`
	StoragePath            string          `json:"storage_path"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing is loaded. Read or unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.ServerEndpointAddrGRPC != "" {
		cfg.ServerEndpointAddrGRPC = jc.ServerEndpointAddrGRPC
	}
	if jc.Transport != "" {
		cfg.Transport = jc.Transport
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StoragePath != "" {
		cfg.StoragePath = jc.StoragePath
	}
}
