// Package config reads cfind's settings from the environment.
//
// All settings use the CFIND_ prefix, e.g. CFIND_DEBUG=1. There is no
// configuration file.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/otuschhoff/cfind/pkg/output"
	"github.com/spf13/viper"
)

const envPrefix = "CFIND"

// Config holds the environment settings.
type Config struct {
	Debug       bool   // CFIND_DEBUG: write debug lines to stderr
	Stats       bool   // CFIND_STATS: print a run summary to stderr
	StatsFormat string // CFIND_STATS_FORMAT: table, json or csv
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("stats", false)
	v.SetDefault("stats_format", "table")

	cfg := &Config{
		Debug:       v.GetBool("debug"),
		Stats:       v.GetBool("stats"),
		StatsFormat: strings.ToLower(strings.TrimSpace(v.GetString("stats_format"))),
	}

	if !slices.Contains(output.Formats, cfg.StatsFormat) {
		return cfg, fmt.Errorf("invalid %s_STATS_FORMAT %q: must be one of %s",
			envPrefix, cfg.StatsFormat, strings.Join(output.Formats, ", "))
	}
	return cfg, nil
}
