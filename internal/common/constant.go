// Package common contains shared constants and sentinel errors used across
// hotelbook components.
package common

const (
	// AuthorizationHeaderName is the HTTP header / gRPC metadata key carrying
	// the bearer token on outbound requests.
	AuthorizationHeaderName = "authorization"

	// BearerScheme prefixes the token inside the authorization value.
	BearerScheme = "Bearer"
)
