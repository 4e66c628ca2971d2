package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/audio"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// env is everything a command needs, opened from the global flags.
type env struct {
	cfg     config.GameConfig
	logger  *log.Logger
	logFile *os.File
	file    *persist.File
	data    *persist.PersistentData
	store   *storage.Store
	player  audio.Player
}

// logOutput selects where logs go.
type logOutput int

const (
	logToStderr logOutput = iota
	logToFile             // the terminal belongs to the UI
)

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openEnv loads config, save data and history. A config error is fatal;
// a missing history database only disables run history.
func openEnv(out logOutput, withAudio bool) (*env, error) {
	e := &env{}

	switch out {
	case logToFile:
		e.logger = newLogger(io.Discard)
		if path, err := expandHome("~/.snake/snake.log"); err == nil {
			//nolint:errcheck // Best-effort directory creation
			os.MkdirAll(filepath.Dir(path), 0o755)
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
				e.logFile = f
				e.logger = newLogger(f)
			}
		}
	default:
		e.logger = newLogger(os.Stderr)
	}

	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		e.close()
		return nil, err
	}
	e.cfg = cfg
	e.logger.Debug("config loaded", "source", source)

	dataPath, err := expandHome(flagDataPath)
	if err != nil {
		e.close()
		return nil, err
	}
	e.file, err = persist.NewFile(dataPath, cfg.Leaderboard.Limit, e.logger)
	if err != nil {
		e.close()
		return nil, err
	}
	e.data = e.file.Load()

	e.store, err = storage.Open(flagDBPath)
	if err != nil {
		e.logger.Warn("run history disabled", "err", err)
		e.store = nil
	}

	if withAudio {
		e.player = audio.New(e.data.Settings.Muted, e.logger)
	} else {
		e.player = &audio.Silent{}
	}
	return e, nil
}

func (e *env) deps() tui.Deps {
	return tui.Deps{
		Config: e.cfg,
		Data:   e.data,
		File:   e.file,
		Store:  e.store,
		Player: e.player,
		Logger: e.logger,
	}
}

// runtimeConfig sizes the UI to the terminal.
func (e *env) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	fps := flagFPS
	if fps <= 0 {
		fps = e.cfg.Timing.RenderFPS
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: fps,
		Seed:     flagSeed,
	}
}

func (e *env) close() {
	if e.player != nil {
		e.player.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
