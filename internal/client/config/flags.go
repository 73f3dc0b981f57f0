package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/flagx"
)

// parseFlags overlays -a, -k and -t. Other arguments are filtered out with
// flagx.FilterArgs so -c/-config does not trip the flag set.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the catalog server")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "shared API key for writes")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
