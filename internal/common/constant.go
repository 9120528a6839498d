// Package common contains shared constants and sentinel errors used across
// doctrack components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AuthorizationHeaderName is accepted as an alternative carrier in the
// "Bearer <token>" form.
const AuthorizationHeaderName = "authorization"

// BearerPrefix prefixes the token inside the authorization header.
const BearerPrefix = "Bearer "
