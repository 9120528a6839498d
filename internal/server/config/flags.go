package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/flagx"
)

var serverFlags = []string{
	"-a", "-d", "-s", "-t", "-k", "-w", "-l",
	"-admin-email", "-admin-password",
	"-u", "-p", "-b", "-g", "-e",
}

// parseFlags overlays command-line flags onto config.
//
//	-a string   gRPC bind address (":50051")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-k int      bcrypt cost
//	-w          enforce the forward-only document workflow
//	-l string   log level (debug, info, warn, error)
//	-admin-email, -admin-password   bootstrap admin account
//	-u, -p      S3 credentials
//	-b, -g, -e  S3 bucket, region and endpoint
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("doctrack-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "bcrypt cost")
	fs.BoolVar(&config.StrictTransitions, "w", config.StrictTransitions, "enforce document status workflow")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.AdminEmail, "admin-email", config.AdminEmail, "bootstrap admin email")
	fs.StringVar(&config.AdminPassword, "admin-password", config.AdminPassword, "bootstrap admin password")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.AccessTokenValidityDuration = time.Duration(*ttl) * time.Minute
		}
	})
	return nil
}
