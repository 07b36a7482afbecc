package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"chiproom-server/internal/util"
)

// Config provides configuration for the chip room server
type Config struct {
	loaded         bool
	BindAddress    string `yaml:"bindAddress" envconfig:"bind_address"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	AdminKey       string `yaml:"adminKey" envconfig:"admin_key"`
	Ledger         struct {
		// Backend is "file" or "postgres"
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	}
	Poker struct {
		TurnTimeoutSeconds int `yaml:"turnTimeoutSeconds" envconfig:"turn_timeout_seconds"`
	}
	Log struct {
		Level             string `yaml:"level" envconfig:"log_level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// defaults and environment variables still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CHIPROOM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		err = yaml.NewDecoder(file).Decode(&config)
		_ = file.Close()
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("chiproom", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

// DefaultConfig returns the configuration before the file and environment
// are applied
func DefaultConfig() Config {
	var c Config
	c.BindAddress = ":5080"
	c.MigrationsPath = "./sql"
	c.Ledger.Backend = "file"
	c.Ledger.Path = "ledger.json"
	c.Poker.TurnTimeoutSeconds = 120
	return c
}
