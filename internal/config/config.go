package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"airport_sim/internal/airport"
)

// Config holds all configuration for the simulation
type Config struct {
	DBPath       string
	BatchSize    int
	BatchTimeout int
	Airport      AirportConfig
	Weather      WeatherConfig
	Sim          SimConfig
	Log          LogConfig
}

// AirportConfig holds the airport settings. Capacity is kept as read so
// that it goes through the airport's own capacity rules.
type AirportConfig struct {
	Capacity any
}

// WeatherConfig holds the random weather settings
type WeatherConfig struct {
	StormyProbability float64
	Seed              uint64 // 0 seeds from the clock
}

// SimConfig holds the traffic generator settings
type SimConfig struct {
	TickIntervalMs    int
	FleetSize         int
	LaunchProbability float64
	DurationS         int // 0 runs until interrupted
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string
	Format     string
	File       string // empty logs to stdout
	MaxSizeMB  int
	MaxBackups int
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", ":memory:")
	v.SetDefault("batch_size", 100)
	v.SetDefault("batch_timeout", 5)
	v.SetDefault("airport.capacity", airport.DefaultCapacity)
	v.SetDefault("weather.stormy_probability", airport.DefaultStormyProbability)
	v.SetDefault("weather.seed", 0)
	v.SetDefault("sim.tick_interval_ms", 1000)
	v.SetDefault("sim.fleet_size", 25)
	v.SetDefault("sim.launch_probability", 0.5)
	v.SetDefault("sim.duration_s", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 32)
	v.SetDefault("log.max_backups", 3)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/airport_sim")
	v.AddConfigPath(".")

	if configPath := os.Getenv("AIRPORT_SIM_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("AIRPORT_SIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		DBPath:       v.GetString("db_path"),
		BatchSize:    v.GetInt("batch_size"),
		BatchTimeout: v.GetInt("batch_timeout"),
		Airport: AirportConfig{
			Capacity: v.Get("airport.capacity"),
		},
		Weather: WeatherConfig{
			StormyProbability: v.GetFloat64("weather.stormy_probability"),
			Seed:              v.GetUint64("weather.seed"),
		},
		Sim: SimConfig{
			TickIntervalMs:    v.GetInt("sim.tick_interval_ms"),
			FleetSize:         v.GetInt("sim.fleet_size"),
			LaunchProbability: v.GetFloat64("sim.launch_probability"),
			DurationS:         v.GetInt("sim.duration_s"),
		},
		Log: LogConfig{
			Level:      v.GetString("log.level"),
			Format:     v.GetString("log.format"),
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size_mb"),
			MaxBackups: v.GetInt("log.max_backups"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be greater than 0")
	}

	if cfg.BatchTimeout <= 0 {
		return fmt.Errorf("batch_timeout must be greater than 0")
	}

	if _, err := airport.ParseCapacity(cfg.Airport.Capacity); err != nil {
		return fmt.Errorf("airport.capacity: %w", err)
	}

	if cfg.Weather.StormyProbability < 0 || cfg.Weather.StormyProbability > 1 {
		return fmt.Errorf("weather.stormy_probability must be between 0 and 1")
	}

	if cfg.Sim.TickIntervalMs <= 0 {
		return fmt.Errorf("sim.tick_interval_ms must be greater than 0")
	}

	if cfg.Sim.FleetSize <= 0 {
		return fmt.Errorf("sim.fleet_size must be greater than 0")
	}

	if cfg.Sim.LaunchProbability < 0 || cfg.Sim.LaunchProbability > 1 {
		return fmt.Errorf("sim.launch_probability must be between 0 and 1")
	}

	if cfg.Sim.DurationS < 0 {
		return fmt.Errorf("sim.duration_s must not be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	if cfg.Log.File != "" && cfg.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be greater than 0")
	}

	return nil
}
