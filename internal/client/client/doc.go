// Package client is the gRPC client of the doctrack service used by the
// CLI. GRPCClient keeps the access token of the current session, attaches
// it to every call and maps gRPC status codes to the sentinel errors in
// errors.go.
package client
