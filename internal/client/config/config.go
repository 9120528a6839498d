package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the doctrack CLI.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	DownloadDir        string
}

// LoadDefaults populates c with defaults suited to a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.DownloadDir = "downloads"
}

func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return errors.New("server address must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.DownloadDir == "" {
		return errors.New("download dir must not be empty")
	}
	return nil
}

// LoadConfig applies defaults, then the JSON file, then flags. args
// excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
