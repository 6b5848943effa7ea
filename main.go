package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	app "github.com/rocketscienceinc/tictactoe-lobby/internal"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
)

const (
	configPathEnv     = "CONFIG_PATH"
	defaultConfigFile = "config.yml"
)

// main loads the lobby configuration, builds the logger and runs the lobby until a signal arrives.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "lobby crashed: %v\n", err)
			os.Exit(1)
		}
	}()

	path, err := configPath(os.Getenv(configPathEnv))
	if err != nil {
		panic(err)
	}

	conf := config.MustLoad(path)
	logger := newLogger(conf.LogLevel)
	logger.Info("configuration loaded", "path", path)

	if err = app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("lobby stopped with error: %w", err))
	}
}

// configPath resolves an explicit path or falls back to config.yml in the working directory.
func configPath(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return filepath.Join(workDir, defaultConfigFile), nil
}

// newLogger writes JSON to stdout. Unknown levels fall back to info.
func newLogger(levelName string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(levelName)}))
}

func parseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo
	}

	return level
}
