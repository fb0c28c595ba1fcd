package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds runtime configuration for the server. Values come from
// environment variables with the TURF_ prefix, falling back to defaults.
type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// DBDriver selects postgres (production) or sqlite (dev/test).
	DBDriver string `mapstructure:"db_driver"`
	// DBDSN is the postgres connection string, or the sqlite file path.
	DBDSN string `mapstructure:"db_dsn"`

	// Seed loads the demo dataset on startup when true.
	Seed bool `mapstructure:"seed"`
}

// Load reads configuration from the environment (TURF_PORT, TURF_DB_DRIVER,
// TURF_DB_DSN, TURF_LOG_LEVEL, TURF_SEED).
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("turf")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("db_dsn", "turftrack.db")
	v.SetDefault("seed", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown db driver %q (expected %s or %s)", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db dsn must not be empty")
	}
	return nil
}
