// Package config provides file- and environment-based configuration
package config

import (
	"os"

	"holdemroom-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the hold'em room server
type Config struct {
	loaded bool
	Game   struct {
		StartingChips   int     `yaml:"startingChips" envconfig:"starting_chips"`
		SmallBlind      int     `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind        int     `yaml:"bigBlind" envconfig:"big_blind"`
		BlindInterval   int     `yaml:"blindInterval" envconfig:"blind_interval"`
		BlindMultiplier float64 `yaml:"blindMultiplier" envconfig:"blind_multiplier"`
	}
	// AdvanceDelay is the pause in seconds between the end of a betting
	// round and the next street
	AdvanceDelay int `yaml:"advanceDelay" envconfig:"advance_delay"`
	Log          struct {
		Level             string `yaml:"level"`
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

// Load will load the configuration.
// A missing config file is fine; defaults and environment variables apply.
func Load() error {
	config = Config{}
	config.Game.StartingChips = 1000
	config.Game.SmallBlind = 10
	config.Game.BigBlind = 20
	config.Game.BlindInterval = 10
	config.Game.BlindMultiplier = 1.5
	config.AdvanceDelay = 1

	configFile := util.Getenv("HRS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("hrs", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
