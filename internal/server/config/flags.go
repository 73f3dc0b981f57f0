package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   listen address (e.g. ":4000")
//	-b string   catalog backend: mapped | document
//	-d string   PostgreSQL DSN (mapped backend)
//	-f string   SQLite file path (document backend)
//	-m string   access policy: jwt | apikey
//	-s string   JWT signing secret
//	-k string   shared API key
//	-t int      token validity, minutes
//	-l string   log level
//
// Only these flags are considered; the rest of args is ignored so other flag
// sets (e.g. -c) can share the command line.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-b", "-d", "-f", "-m", "-s", "-k", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.CatalogBackend, "b", config.CatalogBackend, "catalog backend (mapped|document)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "sqlite file path")
	fs.StringVar(&config.AuthMode, "m", config.AuthMode, "access policy (jwt|apikey)")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT signing secret")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "shared API key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	tokenValidity := fs.Int("t", int(config.TokenValidity.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidity = time.Duration(*tokenValidity) * time.Minute
		}
	})
	return nil
}
