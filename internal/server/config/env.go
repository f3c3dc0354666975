package config

import (
	"os"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
)

// parseEnv overlays values from the process environment.
//
//	HTTP_ADDR / PORT   HTTP bind address (PORT is a bare port number)
//	GRPC_ADDR          gRPC bind address
//	DATABASE_DSN       PostgreSQL DSN
//	JWT_SECRET         token signing secret
//	TOKEN_TTL          token lifetime, Go duration syntax
//	PASSWORD_HASH      bcrypt | argon2id
//	BCRYPT_COST        hasher cost
//	CORS_ORIGINS       comma separated origins
//	LOG_BACKEND        slog | zap
func parseEnv(config *Config) {
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		config.EndpointAddrHTTP = ":" + port
	}
	flagx.EnvString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	flagx.EnvString(&config.EndpointAddrGRPC, "GRPC_ADDR")
	flagx.EnvString(&config.DatabaseDSN, "DATABASE_DSN")
	flagx.EnvString(&config.SecretKey, "JWT_SECRET")
	flagx.EnvDuration(&config.TokenValidityDuration, "TOKEN_TTL")
	flagx.EnvString(&config.PasswordHashAlgorithm, "PASSWORD_HASH")
	flagx.EnvInt(&config.PasswordHashCost, "BCRYPT_COST")
	flagx.EnvList(&config.CORSAllowedOrigins, "CORS_ORIGINS")
	flagx.EnvString(&config.LogBackend, "LOG_BACKEND")
}
