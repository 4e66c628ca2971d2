package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagRecent int
	flagRunID  string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime statistics and achievements",
	Long: `Show lifetime statistics, achievements and per-mode history.

Examples:
  snake stats
  snake stats --recent 20
  snake stats --run 6f1c2a9e-...`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list the N most recent runs")
	statsCmd.Flags().StringVar(&flagRunID, "run", "", "Show the details of one run")
}

func runStats(_ *cobra.Command, _ []string) error {
	e, err := openEnv(logToStderr, false)
	if err != nil {
		return err
	}
	defer e.close()

	if flagRunID != "" {
		return printRun(e.store, flagRunID)
	}

	st := e.data.Stats
	fmt.Println("Lifetime")
	fmt.Println(strings.Repeat("-", 32))
	fmt.Printf("%-14s %d\n", "Runs", st.Runs)
	fmt.Printf("%-14s %d\n", "Total score", st.TotalScore)
	fmt.Printf("%-14s %d\n", "Best score", st.BestScore)
	if st.Runs > 0 {
		fmt.Printf("%-14s %.1f\n", "Average", float64(st.TotalScore)/float64(st.Runs))
	}

	fmt.Println()
	fmt.Printf("Achievements (%d/%d)\n", len(e.data.Achievements), len(session.Achievements))
	fmt.Println(strings.Repeat("-", 32))
	for _, name := range session.Achievements {
		mark := " "
		if e.data.HasAchievement(name) {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, name)
	}

	if e.store == nil {
		return nil
	}

	all, err := e.store.AllKeyStats()
	if err != nil {
		return err
	}
	if len(all) > 0 {
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Println()
		fmt.Printf("%-22s %-6s %-6s %-8s %-6s %-10s %s\n", "MODE", "RUNS", "HIGH", "AVG", "STAGE", "TIME", "LAST PLAYED")
		fmt.Println(strings.Repeat("-", 84))
		for _, k := range keys {
			ks := all[k]
			fmt.Printf("%-22s %-6d %-6d %-8.1f %-6d %-10s %s\n",
				k, ks.RunsCount, ks.HighScore, ks.AvgScore, ks.BestStage,
				formatDuration(ks.TotalDuration),
				ks.LastPlayed.Format("2006-01-02 15:04"))
		}
	}

	if flagRecent > 0 {
		runs, err := e.store.RecentRuns(flagRecent)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Recent runs\n")
		fmt.Printf("%-16s %-22s %-6s %-6s %-8s %s\n", "DATE", "MODE", "SCORE", "STAGE", "TIME", "RUN")
		fmt.Println(strings.Repeat("-", 84))
		for _, r := range runs {
			fmt.Printf("%-16s %-22s %-6d %-6d %-8s %s\n",
				r.CreatedAt.Format("2006-01-02 15:04"), r.LeaderboardKey,
				r.Score, r.Stage, formatDuration(r.Duration), r.RunID)
		}
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	if store == nil {
		return fmt.Errorf("run history is not available")
	}
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with id %s", runID)
	}

	obstacles := "off"
	if r.Obstacles {
		obstacles = "on"
	}
	fmt.Printf("%-12s %s\n", "Run", r.RunID)
	fmt.Printf("%-12s %s\n", "Played", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("%-12s %s\n", "Difficulty", r.Difficulty)
	fmt.Printf("%-12s %s\n", "Map", r.MapMode)
	fmt.Printf("%-12s %s\n", "Obstacles", obstacles)
	fmt.Printf("%-12s %d\n", "Score", r.Score)
	fmt.Printf("%-12s %d\n", "Stage", r.Stage)
	fmt.Printf("%-12s %d\n", "Food", r.FoodEaten)
	fmt.Printf("%-12s %s\n", "Time", formatDuration(r.Duration))
	fmt.Printf("%-12s %s\n", "Death", r.DeathReason)
	return nil
}

// formatDuration prints m:ss, or h:mm:ss past an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
