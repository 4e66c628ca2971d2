package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagDifficulty string
	flagMapMode    string
	flagObstacles  bool
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run directly",
	Long: `Start a run without going through the menu.

Flags override the saved settings and are remembered for next time.

Examples:
  snake play
  snake play --difficulty hard
  snake play --map wrap --obstacles
  snake play --seed 42 --fps 30`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&flagDifficulty, "difficulty", "d", "", "Difficulty: easy, normal or hard")
	playCmd.Flags().StringVarP(&flagMapMode, "map", "m", "", "Map mode: bounded or wrap")
	playCmd.Flags().BoolVar(&flagObstacles, "obstacles", false, "Place obstacles on the board")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(logToFile, true)
	if err != nil {
		return err
	}
	defer e.close()

	changed, err := applyPlayFlags(cmd, e)
	if err != nil {
		return err
	}
	if changed {
		if err := e.file.Save(e.data); err != nil {
			e.logger.Warn("could not save settings", "err", err)
		}
	}

	_, err = tui.RunGame(e.deps(), e.runtimeConfig())
	return err
}

// applyPlayFlags copies the explicitly set flags into the saved settings.
func applyPlayFlags(cmd *cobra.Command, e *env) (bool, error) {
	s := &e.data.Settings
	changed := false

	if cmd.Flags().Changed("difficulty") {
		d, ok := game.ParseDifficulty(flagDifficulty)
		if !ok {
			return false, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		s.Difficulty = d
		changed = true
	}
	if cmd.Flags().Changed("map") {
		m, ok := game.ParseMapMode(flagMapMode)
		if !ok {
			return false, fmt.Errorf("unknown map mode %q (want bounded or wrap)", flagMapMode)
		}
		s.MapMode = m
		changed = true
	}
	if cmd.Flags().Changed("obstacles") {
		s.ObstaclesEnabled = flagObstacles
		changed = true
	}
	if cmd.Flags().Changed("mute") {
		s.Muted = flagMute
		e.player.SetMuted(flagMute)
		changed = true
	}
	return changed, nil
}
