package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golangdaddy/cutup/pkg/config"
	"github.com/golangdaddy/cutup/pkg/game"
	"github.com/golangdaddy/cutup/pkg/logging"
	"github.com/golangdaddy/cutup/pkg/store"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

var configDir = flag.String("config", ".", "Directory holding "+config.FileName)

func main() {
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		logger := logging.NewConsole("info")
		logger.Error().Err(err).Msg("Failed to load config")
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	err := run(logger)
	if err != nil {
		logger.Error().Err(err).Msg("Exiting")
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// run opens the store, plays until the window closes and saves the profile
func run(logger zerolog.Logger) error {
	tuning, err := config.Tuning()
	if err != nil {
		return fmt.Errorf("invalid tuning: %w", err)
	}

	st, err := store.Open(config.GetStoreConfig(), logger)
	if err != nil {
		return fmt.Errorf("failed to open save store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close save store")
		}
	}()

	ctx := context.Background()
	save, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	g := game.NewGame(ctx, st, save, tuning, logger)

	window := config.GetWindowConfig()
	ebiten.SetWindowSize(int(tuning.GameWidth)*window.Scale, int(tuning.GameHeight)*window.Scale)
	ebiten.SetWindowTitle(window.Title)

	logger.Info().
		Int("money", save.Money).
		Int("highScore", save.HighScore).
		Str("vehicle", save.SelectedVehicleID).
		Msg("Starting")

	if err := ebiten.RunGame(g); err != nil {
		logger.Error().Err(err).Msg("Game loop stopped")
	}

	if err := g.Save(); err != nil {
		return fmt.Errorf("failed to save profile on exit: %w", err)
	}
	return nil
}

// newLogger logs to the console and, when logFile is set, to that file too
func newLogger() (zerolog.Logger, func()) {
	level := config.GetString("logLevel")
	path := config.GetString("logFile")
	if path == "" {
		return logging.NewConsole(level), func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger := logging.NewConsole(level)
		logger.Warn().Err(err).Str("path", path).Msg("Failed to open log file, logging to console only")
		return logger, func() {}
	}
	return logging.NewFileConsole(level, f), func() { f.Close() }
}
