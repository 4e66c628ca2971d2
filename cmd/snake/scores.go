package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/persist"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
	flagScoresClear bool
	flagScoresList  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [key]",
	Short: "View high scores",
	Long: `View high scores for a settings combination.

A key has the form difficulty|map|obstacles, for example:
  normal|bounded|clear
  hard|wrap|obs

Without a key the current settings are used.

Examples:
  snake scores
  snake scores "hard|wrap|obs" --plain
  snake scores --clear
  snake scores --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print a plain table instead of the interactive view")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the key")
	scoresCmd.Flags().BoolVar(&flagScoresList, "list", false, "List the keys that have run history")
}

func runScores(_ *cobra.Command, args []string) error {
	out := logToFile
	if flagScoresPlain || flagScoresClear || flagScoresList {
		out = logToStderr
	}
	e, err := openEnv(out, false)
	if err != nil {
		return err
	}
	defer e.close()

	if flagScoresList {
		return listKeys(e)
	}

	key := persist.LeaderboardKey(e.data.Settings)
	if len(args) > 0 {
		key = args[0]
		if !slices.Contains(tui.LeaderboardKeys(), key) {
			return fmt.Errorf("unknown leaderboard key %q\nvalid keys: %s", key, strings.Join(tui.LeaderboardKeys(), ", "))
		}
	}

	switch {
	case flagScoresClear:
		return clearScores(e, key)
	case flagScoresPlain:
		return printScores(e, key)
	default:
		cfg := e.runtimeConfig()
		_, err := tui.RunScoreboard(e.store, e.data, cfg.ScreenW, cfg.ScreenH)
		return err
	}
}

// listKeys prints every key with history, marking the current settings.
func listKeys(e *env) error {
	if e.store == nil {
		return fmt.Errorf("run history is not available")
	}
	keys, err := e.store.Keys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	current := persist.LeaderboardKey(e.data.Settings)
	for _, k := range keys {
		mark := " "
		if k == current {
			mark = "*"
		}
		fmt.Printf("%s %s\n", mark, k)
	}
	return nil
}

func clearScores(e *env, key string) error {
	if e.store != nil {
		if err := e.store.ClearRuns(key); err != nil {
			return err
		}
	}
	delete(e.data.Leaderboard, key)
	if err := e.file.Save(e.data); err != nil {
		return err
	}
	fmt.Printf("Cleared scores for %s\n", key)
	return nil
}

func printScores(e *env, key string) error {
	fmt.Printf("High scores: %s\n\n", key)

	if e.store != nil {
		runs, err := e.store.TopRuns(key, flagScoresLimit)
		if err != nil {
			return err
		}
		if len(runs) > 0 {
			fmt.Printf("%-4s %-8s %-6s %-6s %-8s %-12s %s\n", "RANK", "SCORE", "STAGE", "FOOD", "TIME", "DEATH", "DATE")
			fmt.Println(strings.Repeat("-", 64))
			for i, r := range runs {
				fmt.Printf("%-4d %-8d %-6d %-6d %-8s %-12s %s\n",
					i+1, r.Score, r.Stage, r.FoodEaten,
					formatDuration(r.Duration), r.DeathReason,
					r.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		}
	}

	bucket := e.data.Leaderboard[key]
	if len(bucket) == 0 {
		fmt.Println("No scores yet. Play some games!")
		return nil
	}
	fmt.Printf("%-4s %s\n", "RANK", "SCORE")
	fmt.Println(strings.Repeat("-", 16))
	for i, score := range bucket {
		if i >= flagScoresLimit {
			break
		}
		fmt.Printf("%-4d %d\n", i+1, score)
	}
	return nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
