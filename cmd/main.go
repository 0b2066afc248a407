package main

import (
	"context"
	"errors"
	"os"

	"github.com/nightorbs/flixctl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	// every log line from one invocation carries the same correlation id
	logger := shared.WithLogger(shared.NewLogger(nil), "run_id", shared.GenerateID())

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("failed to load config, using defaults: %v", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "flixctl",
		Usage:    "Browse the myFlix movie catalog from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error("not logged in, run 'flixctl auth login' first")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
