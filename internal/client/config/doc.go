// Package config loads runtime configuration for the doctrack CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   address:port of the doctrack gRPC endpoint
//	-t int      per-request timeout (seconds)
//	-o string   directory for downloaded documents
//
// JSON durations accept "10s" style strings or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "download_dir": "downloads"
//	}
package config
