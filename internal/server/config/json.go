package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/doctrack/internal/flagx"
	"github.com/dmitrijs2005/doctrack/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Durations accept
// "15m" style strings or integer nanoseconds. Zero values leave the
// corresponding setting untouched.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	PasswordHashCost            int            `json:"password_hash_cost"`
	StrictTransitions           *bool          `json:"strict_transitions"`
	AdminEmail                  string         `json:"admin_email"`
	AdminPassword               string         `json:"admin_password"`
	LogLevel                    string         `json:"log_level"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays the JSON file given by -c/-config onto config.
// Without the flag it does nothing.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.PasswordHashCost > 0 {
		config.PasswordHashCost = c.PasswordHashCost
	}
	if c.StrictTransitions != nil {
		config.StrictTransitions = *c.StrictTransitions
	}

	return nil
}
