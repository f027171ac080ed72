package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"airport_sim/internal/config"
	"airport_sim/internal/daemon"
)

func initLogger(cfg *config.Config) {
	var logLevel slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var w io.Writer = os.Stdout
	if cfg.Log.File != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB, // MB
			MaxBackups: cfg.Log.MaxBackups,
		}
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Log.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	flag.Parse()

	if *configPath != "" {
		os.Setenv("AIRPORT_SIM_CONFIG_PATH", *configPath)
	}

	cfg, err := config.Load()
	if err != nil {
		// The configured logger needs the config, fall back to stderr
		basicLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		basicLogger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	d, err := daemon.New(daemon.Config{
		DBPath:            cfg.DBPath,
		BatchSize:         cfg.BatchSize,
		BatchTimeout:      time.Duration(cfg.BatchTimeout) * time.Second,
		Capacity:          cfg.Airport.Capacity,
		StormyProbability: cfg.Weather.StormyProbability,
		Seed:              cfg.Weather.Seed,
		TickInterval:      time.Duration(cfg.Sim.TickIntervalMs) * time.Millisecond,
		FleetSize:         cfg.Sim.FleetSize,
		LaunchProbability: cfg.Sim.LaunchProbability,
	})
	if err != nil {
		slog.Error("Failed to create daemon", "error", err)
		os.Exit(1)
	}

	if err := d.Start(); err != nil {
		slog.Error("Failed to start daemon", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// A nil channel never fires, so without a duration only a signal ends the run
	var deadline <-chan time.Time
	if cfg.Sim.DurationS > 0 {
		deadline = time.After(time.Duration(cfg.Sim.DurationS) * time.Second)
	}

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down", "signal", sig)
	case <-deadline:
		slog.Info("Simulation duration elapsed, shutting down", "duration_s", cfg.Sim.DurationS)
	}

	if err := d.Stop(); err != nil {
		slog.Error("Error stopping daemon", "error", err)
		os.Exit(1)
	}
}
