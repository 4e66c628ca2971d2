package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagSettingsShow  bool
	flagSettingsReset bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Edit gameplay and graphics settings",
	Long: `Edit gameplay and graphics settings.

Examples:
  snake settings          # Interactive editor
  snake settings --show   # Print current values
  snake settings --reset  # Restore defaults`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&flagSettingsShow, "show", false, "Print current settings and exit")
	settingsCmd.Flags().BoolVar(&flagSettingsReset, "reset", false, "Restore default settings")
}

func runSettings(_ *cobra.Command, _ []string) error {
	out := logToFile
	if flagSettingsShow || flagSettingsReset {
		out = logToStderr
	}
	e, err := openEnv(out, false)
	if err != nil {
		return err
	}
	defer e.close()

	switch {
	case flagSettingsReset:
		e.data.Settings = persist.DefaultSettings()
		e.data.Graphics = persist.DefaultGraphics()
		if err := e.file.Save(e.data); err != nil {
			return err
		}
		fmt.Println("Settings restored to defaults")
		printSettings(e.data)
		return nil
	case flagSettingsShow:
		printSettings(e.data)
		return nil
	default:
		_, err := tui.RunSettings(e.data, e.file, e.runtimeConfig())
		return err
	}
}

func printSettings(d *persist.PersistentData) {
	fmt.Println(strings.Repeat("-", 32))
	for r := range tui.SettingRowCount {
		fmt.Printf("%-16s %s\n", r.Label(), tui.SettingValue(d, r))
	}
	fmt.Printf("%-16s %s\n", "Leaderboard", persist.LeaderboardKey(d.Settings))
}
