package persist

import (
	"fmt"
	"sort"
)

// LeaderboardKey builds the bucket key, e.g. "normal|wrap|obs".
func LeaderboardKey(s UserSettings) string {
	tag := "clear"
	if s.ObstaclesEnabled {
		tag = "obs"
	}
	return fmt.Sprintf("%s|%s|%s", s.Difficulty, s.MapMode, tag)
}

// RecordScore inserts score (floored at 0) into the bucket for key, keeps
// it sorted descending and at most limit long. Returns the new bucket.
func RecordScore(d *PersistentData, key string, score, limit int) []int {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if d.Leaderboard == nil {
		d.Leaderboard = make(map[string][]int)
	}

	bucket := append([]int(nil), d.Leaderboard[key]...)
	bucket = append(bucket, max(score, 0))
	sort.Sort(sort.Reverse(sort.IntSlice(bucket)))
	if len(bucket) > limit {
		bucket = bucket[:limit]
	}
	d.Leaderboard[key] = bucket
	return append([]int(nil), bucket...)
}

// IsNewHighScore reports whether candidate beats every existing score.
// Zero never counts.
func IsNewHighScore(existing []int, candidate int) bool {
	if candidate <= 0 {
		return false
	}
	for _, s := range existing {
		if candidate <= s {
			return false
		}
	}
	return true
}

// BestScore returns the top score in the bucket for key, or 0.
func BestScore(d *PersistentData, key string) int {
	best := 0
	for _, s := range d.Leaderboard[key] {
		best = max(best, s)
	}
	return best
}

// UpdateRunStats folds a finished run into the lifetime counters.
func UpdateRunStats(d *PersistentData, score int) {
	score = max(score, 0)
	d.Stats.Runs++
	d.Stats.TotalScore += score
	d.Stats.BestScore = max(d.Stats.BestScore, score)
}
