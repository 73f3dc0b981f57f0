package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig lists the environment variables understood by the server. It is
// prefilled from the current Config so unset variables keep earlier values.
type envConfig struct {
	Port       string `env:"PORT"`
	ListenAddr string `env:"LISTEN_ADDR"`
	LogLevel   string `env:"LOG_LEVEL"`

	CatalogBackend string        `env:"CATALOG_BACKEND"`
	DatabaseDSN    string        `env:"DATABASE_DSN"`
	SQLitePath     string        `env:"SQLITE_PATH"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT"`
	SeedCatalog    bool          `env:"SEED_CATALOG"`

	AuthMode               string        `env:"AUTH_MODE"`
	SecretKey              string        `env:"JWT_SECRET"`
	APIKey                 string        `env:"API_KEY"`
	TokenValidity          time.Duration `env:"TOKEN_VALIDITY"`
	BcryptCost             int           `env:"BCRYPT_COST"`
	RegisterConflictStatus int           `env:"REGISTER_CONFLICT_STATUS"`

	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION"`
	S3BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
}

// readEnv is a seam for tests.
var readEnv = cleanenv.ReadEnv

// parseEnv overlays environment variables. PORT is shorthand for
// LISTEN_ADDR=":<port>"; LISTEN_ADDR wins when both are set.
func parseEnv(config *Config) error {
	e := envConfig{
		ListenAddr:             config.ListenAddr,
		LogLevel:               config.LogLevel,
		CatalogBackend:         config.CatalogBackend,
		DatabaseDSN:            config.DatabaseDSN,
		SQLitePath:             config.SQLitePath,
		ConnectTimeout:         config.ConnectTimeout,
		SeedCatalog:            config.SeedCatalog,
		AuthMode:               config.AuthMode,
		SecretKey:              config.SecretKey,
		APIKey:                 config.APIKey,
		TokenValidity:          config.TokenValidity,
		BcryptCost:             config.BcryptCost,
		RegisterConflictStatus: config.RegisterConflictStatus,
		S3AccessKey:            config.S3AccessKey,
		S3SecretKey:            config.S3SecretKey,
		S3Bucket:               config.S3Bucket,
		S3Region:               config.S3Region,
		S3BaseEndpoint:         config.S3BaseEndpoint,
	}
	listenAddr := e.ListenAddr

	if err := readEnv(&e); err != nil {
		return err
	}

	if e.Port != "" && e.ListenAddr == listenAddr {
		e.ListenAddr = ":" + e.Port
	}

	config.ListenAddr = e.ListenAddr
	config.LogLevel = e.LogLevel
	config.CatalogBackend = e.CatalogBackend
	config.DatabaseDSN = e.DatabaseDSN
	config.SQLitePath = e.SQLitePath
	config.ConnectTimeout = e.ConnectTimeout
	config.SeedCatalog = e.SeedCatalog
	config.AuthMode = e.AuthMode
	config.SecretKey = e.SecretKey
	config.APIKey = e.APIKey
	config.TokenValidity = e.TokenValidity
	config.BcryptCost = e.BcryptCost
	config.RegisterConflictStatus = e.RegisterConflictStatus
	config.S3AccessKey = e.S3AccessKey
	config.S3SecretKey = e.S3SecretKey
	config.S3Bucket = e.S3Bucket
	config.S3Region = e.S3Region
	config.S3BaseEndpoint = e.S3BaseEndpoint
	return nil
}
