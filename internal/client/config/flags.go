package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/doctrack/internal/flagx"
)

// parseFlags overlays -a, -t and -o onto cfg. Other flags in args are
// ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("doctrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-t", "-o"})); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
