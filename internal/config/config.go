// Package config loads the configuration of the game host
package config

import (
	"errors"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"sieteymedio/internal/util"
)

// Config provides configuration for siete y media
type Config struct {
	loaded bool

	// Players are the nicknames at the table. The first one deals the first round
	Players   []string `yaml:"players" envconfig:"players"`
	Deck      string   `yaml:"deck" envconfig:"deck"`
	Seed      int64    `yaml:"seed" envconfig:"seed"`
	MaxRounds int      `yaml:"maxRounds" envconfig:"max_rounds"`

	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`

	Redis struct {
		Addr  string `yaml:"addr"`
		DB    int    `yaml:"db"`
		Queue string `yaml:"queue"`
	} `yaml:"redis"`

	Spectator struct {
		Addr string `yaml:"addr"`
	} `yaml:"spectator"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	cfg := Config{
		Players:        []string{},
		Deck:           "spanish40",
		MigrationsPath: "file://sql",
	}

	cfg.Redis.Queue = "sieteymedio:rounds"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"

	return cfg
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

// Load will load the configuration
// The defaults are overridden by the YAML file in SYM_CONFIG_FILE (config.yaml if unset), then by SYM_* variables.
// A missing config.yaml is not an error.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("SYM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	} else {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("sym", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
