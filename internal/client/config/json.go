package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/doctrack/internal/flagx"
	"github.com/dmitrijs2005/doctrack/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI config. Empty values keep the
// current setting.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	DownloadDir        string         `json:"download_dir"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	return nil
}
