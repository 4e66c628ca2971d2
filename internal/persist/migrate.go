package persist

// A migration upgrades a raw save document to its version. Steps only
// fill in fields that are absent and never touch values already present,
// so running the ladder twice is harmless.
type migration struct {
	version int
	apply   func(doc map[string]any)
}

var migrations = []migration{
	{version: 2, apply: func(doc map[string]any) {
		setDefault(doc, "stats", map[string]any{
			"runs":        0,
			"total_score": 0,
			"best_score":  0,
		})
		setDefault(doc, "achievements", []any{})
		setDefault(doc, "onboarding_seen", false)
	}},
	{version: 3, apply: func(doc map[string]any) {
		g := DefaultGraphics()
		setDefault(doc, "graphics", map[string]any{
			"theme_id":             g.ThemeID,
			"colorblind_mode":      g.ColorblindMode,
			"ui_scale":             g.UIScale,
			"particles_enabled":    g.Particles,
			"screen_shake_enabled": g.ScreenShake,
			"reduced_motion":       g.ReducedMotion,
		})
	}},
}

// Migrate upgrades doc in place to CurrentSchemaVersion. Documents without
// a version are treated as version 1.
func Migrate(doc map[string]any) map[string]any {
	v := schemaVersion(doc)
	for _, m := range migrations {
		if v < m.version {
			m.apply(doc)
		}
	}
	doc["schema_version"] = CurrentSchemaVersion
	return doc
}

func schemaVersion(doc map[string]any) int {
	if n, ok := number(doc["schema_version"]); ok && n >= 1 {
		return int(n)
	}
	return 1
}

func setDefault(doc map[string]any, key string, value any) {
	if _, ok := doc[key]; !ok {
		doc[key] = value
	}
}
