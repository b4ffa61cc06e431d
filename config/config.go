// Package config holds the application configuration and the typed
// per-agent option structure parsed from key=value argument strings.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the application-level configuration for training runs and the
// shell. Values resolve in viper's usual order: explicit flags, FIB2584_*
// environment variables, an optional YAML config file, then defaults.
type Config struct {
	Episodes   int
	Threads    int
	Alpha      float64
	Seed       uint64
	WinTile    int
	Rule       string
	LoadPath   string
	SavePath   string
	MoveLog    string
	EpisodeDB  string
	SeedFile   string
	Debug      bool
	Shell      bool
	ReportYAML string
}

// Load builds a Config. An optionalYAML config file path may be supplied;
// environment variables with the FIB2584 prefix override file values.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("episodes", 1000)
	v.SetDefault("threads", 1)
	v.SetDefault("alpha", 0.003125)
	v.SetDefault("seed", 0)
	v.SetDefault("wintile", 17)
	v.SetDefault("rule", "fibonacci")
	v.SetDefault("load", "")
	v.SetDefault("save", "")
	v.SetDefault("movelog", "")
	v.SetDefault("episodedb", "")
	v.SetDefault("seedfile", "")
	v.SetDefault("debug", false)
	v.SetDefault("shell", false)
	v.SetDefault("report", "")

	v.SetEnvPrefix("fib2584")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Episodes:   v.GetInt("episodes"),
		Threads:    v.GetInt("threads"),
		Alpha:      v.GetFloat64("alpha"),
		Seed:       v.GetUint64("seed"),
		WinTile:    v.GetInt("wintile"),
		Rule:       v.GetString("rule"),
		LoadPath:   v.GetString("load"),
		SavePath:   v.GetString("save"),
		MoveLog:    v.GetString("movelog"),
		EpisodeDB:  v.GetString("episodedb"),
		SeedFile:   v.GetString("seedfile"),
		Debug:      v.GetBool("debug"),
		Shell:      v.GetBool("shell"),
		ReportYAML: v.GetString("report"),
	}
	if cfg.Episodes < 0 {
		return nil, fmt.Errorf("episodes must be non-negative, got %d", cfg.Episodes)
	}
	if cfg.Threads < 1 {
		return nil, fmt.Errorf("threads must be positive, got %d", cfg.Threads)
	}
	return cfg, nil
}

// PlayerArgs renders the agent option string for the learning player.
func (c *Config) PlayerArgs() string {
	args := fmt.Sprintf("alpha=%v", c.Alpha)
	if c.Seed != 0 {
		args += fmt.Sprintf(" seed=%d", c.Seed)
	}
	if c.LoadPath != "" {
		args += " load=" + c.LoadPath
	}
	if c.SavePath != "" {
		args += " save=" + c.SavePath
	}
	return args
}

// EnvArgs renders the agent option string for the environment.
func (c *Config) EnvArgs() string {
	if c.Seed != 0 {
		return fmt.Sprintf("seed=%d", c.Seed+1)
	}
	return ""
}
