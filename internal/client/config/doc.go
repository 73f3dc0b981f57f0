// Package config loads runtime configuration for the dog catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the catalog server
//	-k string   shared API key sent as X-API-Key on writes
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Intervals use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:4000",
//	  "api_key": "",
//	  "request_timeout": "10s"
//	}
package config
