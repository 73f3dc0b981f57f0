package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dogcatalog/internal/flagx"
	"github.com/dmitrijs2005/dogcatalog/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Pointer fields distinguish
// "absent" from zero values so a partial file only overrides what it names.
type JsonConfig struct {
	ListenAddr      string          `json:"listen_addr"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
	LogLevel        string          `json:"log_level"`

	CatalogBackend string          `json:"catalog_backend"`
	DatabaseDSN    string          `json:"database_dsn"`
	SQLitePath     string          `json:"sqlite_path"`
	ConnectTimeout *timex.Duration `json:"connect_timeout"`
	SeedCatalog    *bool           `json:"seed_catalog"`

	AuthMode               string          `json:"auth_mode"`
	SecretKey              string          `json:"secret_key"`
	APIKey                 string          `json:"api_key"`
	TokenValidity          *timex.Duration `json:"token_validity"`
	BcryptCost             *int            `json:"bcrypt_cost"`
	RegisterConflictStatus *int            `json:"register_conflict_status"`

	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays values from the file given by -c/-config. Without the
// flag nothing is loaded.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.CatalogBackend, c.CatalogBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.AuthMode, c.AuthMode)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.APIKey, c.APIKey)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.ConnectTimeout != nil {
		config.ConnectTimeout = c.ConnectTimeout.Duration
	}
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.SeedCatalog != nil {
		config.SeedCatalog = *c.SeedCatalog
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.RegisterConflictStatus != nil {
		config.RegisterConflictStatus = *c.RegisterConflictStatus
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
