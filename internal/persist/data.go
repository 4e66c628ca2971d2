// Package persist holds the versioned save record (settings, graphics,
// leaderboard, stats, achievements) and the JSON file it lives in.
package persist

import (
	"sort"

	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/theme"
)

// CurrentSchemaVersion is stamped on every saved record.
const CurrentSchemaVersion = 3

// DefaultLeaderboardLimit bounds each bucket when no limit is configured.
const DefaultLeaderboardLimit = 10

// UserSettings are the gameplay choices that partition the leaderboard.
type UserSettings struct {
	Difficulty       game.Difficulty
	MapMode          game.MapMode
	ObstaclesEnabled bool
	Muted            bool
}

// DefaultSettings returns normal difficulty, bounded map, no obstacles.
func DefaultSettings() UserSettings {
	return UserSettings{
		Difficulty: game.DifficultyNormal,
		MapMode:    game.MapBounded,
	}
}

// GraphicsSettings are presentation preferences.
type GraphicsSettings struct {
	ThemeID        string
	ColorblindMode string
	UIScale        float64
	Particles      bool
	ScreenShake    bool
	ReducedMotion  bool
}

// DefaultGraphics returns the neon theme at scale 1 with effects on.
func DefaultGraphics() GraphicsSettings {
	return GraphicsSettings{
		ThemeID:        string(theme.Neon),
		ColorblindMode: string(theme.ModeOff),
		UIScale:        1.0,
		Particles:      true,
		ScreenShake:    true,
	}
}

// PlayerStats are lifetime counters. They never decrease.
type PlayerStats struct {
	Runs       int
	TotalScore int
	BestScore  int
}

// PersistentData is the complete save record.
type PersistentData struct {
	SchemaVersion  int
	Settings       UserSettings
	Graphics       GraphicsSettings
	Leaderboard    map[string][]int // key -> scores, descending
	Stats          PlayerStats
	Achievements   []string // sorted, unique
	OnboardingSeen bool
}

// Default returns an empty record at the current schema version.
func Default() *PersistentData {
	return &PersistentData{
		SchemaVersion: CurrentSchemaVersion,
		Settings:      DefaultSettings(),
		Graphics:      DefaultGraphics(),
		Leaderboard:   make(map[string][]int),
		Achievements:  []string{},
	}
}

// HasAchievement reports whether name is unlocked.
func (d *PersistentData) HasAchievement(name string) bool {
	i := sort.SearchStrings(d.Achievements, name)
	return i < len(d.Achievements) && d.Achievements[i] == name
}

// UnlockAchievement adds name to the set. Reports whether it was new.
func UnlockAchievement(d *PersistentData, name string) bool {
	if name == "" || d.HasAchievement(name) {
		return false
	}
	i := sort.SearchStrings(d.Achievements, name)
	d.Achievements = append(d.Achievements, "")
	copy(d.Achievements[i+1:], d.Achievements[i:])
	d.Achievements[i] = name
	return true
}
