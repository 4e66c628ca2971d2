package persist

import (
	"sort"

	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/theme"
)

type settingsJSON struct {
	Difficulty       string `json:"difficulty"`
	MapMode          string `json:"map_mode"`
	ObstaclesEnabled bool   `json:"obstacles_enabled"`
	Muted            bool   `json:"muted"`
}

type graphicsJSON struct {
	ThemeID        string  `json:"theme_id"`
	ColorblindMode string  `json:"colorblind_mode"`
	UIScale        float64 `json:"ui_scale"`
	Particles      bool    `json:"particles_enabled"`
	ScreenShake    bool    `json:"screen_shake_enabled"`
	ReducedMotion  bool    `json:"reduced_motion"`
}

type statsJSON struct {
	Runs       int `json:"runs"`
	TotalScore int `json:"total_score"`
	BestScore  int `json:"best_score"`
}

type dataJSON struct {
	SchemaVersion  int              `json:"schema_version"`
	Settings       settingsJSON     `json:"settings"`
	Graphics       graphicsJSON     `json:"graphics"`
	Leaderboard    map[string][]int `json:"leaderboard"`
	Stats          statsJSON        `json:"stats"`
	Achievements   []string         `json:"achievements"`
	OnboardingSeen bool             `json:"onboarding_seen"`
}

func encode(d *PersistentData) dataJSON {
	lb := make(map[string][]int, len(d.Leaderboard))
	for key, scores := range d.Leaderboard {
		if scores == nil {
			scores = []int{}
		}
		lb[key] = scores
	}
	ach := d.Achievements
	if ach == nil {
		ach = []string{}
	}
	return dataJSON{
		SchemaVersion: CurrentSchemaVersion,
		Settings: settingsJSON{
			Difficulty:       d.Settings.Difficulty.String(),
			MapMode:          d.Settings.MapMode.String(),
			ObstaclesEnabled: d.Settings.ObstaclesEnabled,
			Muted:            d.Settings.Muted,
		},
		Graphics: graphicsJSON{
			ThemeID:        d.Graphics.ThemeID,
			ColorblindMode: d.Graphics.ColorblindMode,
			UIScale:        d.Graphics.UIScale,
			Particles:      d.Graphics.Particles,
			ScreenShake:    d.Graphics.ScreenShake,
			ReducedMotion:  d.Graphics.ReducedMotion,
		},
		Leaderboard:    lb,
		Stats:          statsJSON(d.Stats),
		Achievements:   ach,
		OnboardingSeen: d.OnboardingSeen,
	}
}

// decode builds a record from a migrated document. Invalid values are
// coerced to defaults instead of failing the load.
func decode(doc map[string]any, limit int) *PersistentData {
	d := Default()
	d.Settings = decodeSettings(doc["settings"])
	d.Graphics = decodeGraphics(doc["graphics"])
	d.Leaderboard = decodeLeaderboard(doc["leaderboard"], limit)
	d.Stats = decodeStats(doc["stats"])
	d.Achievements = decodeAchievements(doc["achievements"])
	d.OnboardingSeen = boolean(doc["onboarding_seen"], false)
	return d
}

func decodeSettings(v any) UserSettings {
	s := DefaultSettings()
	m, ok := v.(map[string]any)
	if !ok {
		return s
	}
	if diff, ok := game.ParseDifficulty(str(m["difficulty"])); ok {
		s.Difficulty = diff
	}
	if mode, ok := game.ParseMapMode(str(m["map_mode"])); ok {
		s.MapMode = mode
	}
	s.ObstaclesEnabled = boolean(m["obstacles_enabled"], false)
	s.Muted = boolean(m["muted"], false)
	return s
}

func decodeGraphics(v any) GraphicsSettings {
	g := DefaultGraphics()
	m, ok := v.(map[string]any)
	if !ok {
		return g
	}
	if id := str(m["theme_id"]); theme.Known(id) {
		g.ThemeID = id
	}
	if mode := str(m["colorblind_mode"]); theme.KnownMode(mode) {
		g.ColorblindMode = mode
	}
	if scale, ok := number(m["ui_scale"]); ok && scale > 0 {
		g.UIScale = scale
	}
	g.Particles = boolean(m["particles_enabled"], g.Particles)
	g.ScreenShake = boolean(m["screen_shake_enabled"], g.ScreenShake)
	g.ReducedMotion = boolean(m["reduced_motion"], g.ReducedMotion)
	return g
}

func decodeLeaderboard(v any, limit int) map[string][]int {
	out := make(map[string][]int)
	m, ok := v.(map[string]any)
	if !ok {
		return out
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	for key, raw := range m {
		if raw == nil {
			out[key] = []int{}
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		scores := make([]int, 0, len(list))
		for _, item := range list {
			if n, ok := number(item); ok {
				scores = append(scores, max(int(n), 0))
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(scores)))
		if len(scores) > limit {
			scores = scores[:limit]
		}
		out[key] = scores
	}
	return out
}

func decodeStats(v any) PlayerStats {
	var s PlayerStats
	m, ok := v.(map[string]any)
	if !ok {
		return s
	}
	if n, ok := number(m["runs"]); ok {
		s.Runs = max(int(n), 0)
	}
	if n, ok := number(m["total_score"]); ok {
		s.TotalScore = max(int(n), 0)
	}
	if n, ok := number(m["best_score"]); ok {
		s.BestScore = max(int(n), 0)
	}
	return s
}

func decodeAchievements(v any) []string {
	out := []string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		name, ok := item.(string)
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func boolean(v any, def bool) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	default:
		return def
	}
}
